package schedule

// SimulationResult holds the simulated timeline and the total simulated time
// consumed from the start of the day.
type SimulationResult struct {
	Timeline         []TimelineEntry
	TotalTimeMinutes int
}

// SimulateDay walks the activities in order and builds the minute-resolved
// timeline. Each activity starts at its own scheduled time when one parses,
// otherwise at the running clock. The clock then advances to the activity's
// effective start plus its duration plus the travel estimated before it; an
// explicitly scheduled gap therefore moves the clock rather than being
// flagged here. Detecting conflicts is the synthesizer's job.
func SimulateDay(activities []Activity, dayStartMinutes, dayEndMinutes int) SimulationResult {
	timeline := make([]TimelineEntry, 0, len(activities))
	clock := dayStartMinutes

	for i, activity := range activities {
		travel := 0
		if i > 0 {
			travel = EstimateTravelTime(activities[i-1], activity)
		}

		duration := ParseDurationToMinutes(activity.DurationText)

		start := clock
		if scheduled, ok := ParseTimeToMinutes(activity.ScheduledTime); ok {
			start = scheduled
		}
		end := start + duration

		timeline = append(timeline, TimelineEntry{
			ActivityIndex:   i,
			Name:            activity.PlaceName,
			StartMinute:     start,
			DurationMinutes: duration,
			TravelBefore:    travel,
			EndMinute:       end,
		})

		clock = start + duration + travel
	}

	return SimulationResult{
		Timeline:         timeline,
		TotalTimeMinutes: clock - dayStartMinutes,
	}
}
