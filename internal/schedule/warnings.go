package schedule

import (
	"fmt"
	"math"
)

// Thresholds used by the warning synthesizer.
const (
	// MaxSingleActivityMinutes is the longest duration considered
	// realistic for one activity.
	MaxSingleActivityMinutes = 240

	// MaxActivitiesPerDay is the activity count above which a day is
	// flagged as over-packed.
	MaxActivitiesPerDay = 8

	// scheduleCriticalOverage and scheduleTightOverage bound the whole-day
	// overrun bands, in minutes past the available time.
	scheduleCriticalOverage = 60
	scheduleTightOverage    = 30

	// minutesPerRemovedActivity sizes the "remove N activities" suggestion
	// for an overrun day: one activity plus its travel is ~2 hours.
	minutesPerRemovedActivity = 120
)

// synthesizeWarnings inspects the simulated timeline and emits every warning
// that applies. Unlike the travel estimator this is not a fallback chain:
// all checks run and one activity can collect several warnings. Per-activity
// warnings come out in activity order with whole-day warnings appended.
func synthesizeWarnings(activities []Activity, sim SimulationResult, dayStartMinutes, dayEndMinutes int) []Warning {
	warnings := make([]Warning, 0)

	for i, entry := range sim.Timeline {
		if i > 0 {
			if w, ok := timingWarning(activities, sim.Timeline, i); ok {
				warnings = append(warnings, w)
			}
		}

		if entry.EndMinute > dayEndMinutes {
			warnings = append(warnings, Warning{
				Type:          WarningOvertime,
				Severity:      SeverityHigh,
				ActivityIndex: i,
				Message: fmt.Sprintf("%q runs until %s, past the end of the day at %s",
					entry.Name, FormatMinutesToTime(entry.EndMinute), FormatMinutesToTime(dayEndMinutes)),
				Suggestion: "Shorten this activity or move it earlier in the day",
				Context: map[string]int{
					"endMinute":      entry.EndMinute,
					"dayEndMinute":   dayEndMinutes,
					"overrunMinutes": entry.EndMinute - dayEndMinutes,
				},
			})
		}

		if entry.DurationMinutes > MaxSingleActivityMinutes {
			warnings = append(warnings, Warning{
				Type:          WarningDuration,
				Severity:      SeverityMedium,
				ActivityIndex: i,
				Message: fmt.Sprintf("%q is planned for %d minutes, which is unusually long for a single activity",
					entry.Name, entry.DurationMinutes),
				Suggestion: "Consider splitting this into shorter blocks with breaks",
				Context: map[string]int{
					"durationMinutes": entry.DurationMinutes,
					"maxMinutes":      MaxSingleActivityMinutes,
				},
			})
		}

		if i > 0 {
			if w, ok := overlapWarning(activities[i], sim.Timeline, i); ok {
				warnings = append(warnings, w)
			}
		}
	}

	if w, ok := scheduleWarning(sim.TotalTimeMinutes, dayEndMinutes-dayStartMinutes); ok {
		warnings = append(warnings, w)
	}

	if len(activities) > MaxActivitiesPerDay {
		warnings = append(warnings, Warning{
			Type:          WarningDensity,
			Severity:      SeverityMedium,
			ActivityIndex: WholeDayIndex,
			Message: fmt.Sprintf("%d activities in one day is a lot; days this packed rarely go to plan",
				len(activities)),
			Suggestion: "Consider moving some activities to another day",
			Context: map[string]int{
				"activityCount":  len(activities),
				"maxRecommended": MaxActivitiesPerDay,
			},
		})
	}

	return warnings
}

// timingWarning fires when an activity starts before the previous one can end
// and the traveler can get there. Logistics stops and same-location pairs are
// annotated as such so the UI does not present them as ordinary travel
// conflicts.
func timingWarning(activities []Activity, timeline []TimelineEntry, i int) (Warning, bool) {
	entry := timeline[i]
	prevEnd := timeline[i-1].EndMinute
	minStart := prevEnd + entry.TravelBefore
	if entry.StartMinute >= minStart {
		return Warning{}, false
	}

	shortfall := minStart - entry.StartMinute
	logistics := IsLogisticsActivity(activities[i].PlaceName)
	sameLocation := IsSameLocation(activities[i-1].PlaceName, activities[i].PlaceName)

	severity := SeverityMedium
	if entry.TravelBefore > 0 {
		severity = SeverityHigh
	}

	var message string
	switch {
	case logistics:
		message = fmt.Sprintf("%q starts %d minutes before the previous activity wraps up; since this is a transfer it may just need a later slot, no earlier than %s",
			entry.Name, shortfall, FormatMinutesToTime(minStart))
	case sameLocation:
		message = fmt.Sprintf("%q starts %d minutes before the previous activity at the same place ends; the earliest workable start is %s",
			entry.Name, shortfall, FormatMinutesToTime(minStart))
	default:
		message = fmt.Sprintf("%q starts %d minutes too early to allow %d minutes of travel from the previous stop; the earliest workable start is %s",
			entry.Name, shortfall, entry.TravelBefore, FormatMinutesToTime(minStart))
	}

	context := map[string]int{
		"requiredTravelMinutes": entry.TravelBefore,
		"shortfallMinutes":      shortfall,
		"suggestedStartMinute":  minStart,
	}
	context["isLogisticsActivity"] = boolToInt(logistics)
	context["isSameLocation"] = boolToInt(sameLocation)

	return Warning{
		Type:          WarningTiming,
		Severity:      severity,
		ActivityIndex: i,
		Message:       message,
		Suggestion:    fmt.Sprintf("Move this activity to %s or later", FormatMinutesToTime(minStart)),
		Context:       context,
	}, true
}

// overlapWarning fires when an activity's own scheduled start falls before
// the previous timeline entry's end. This compares the raw scheduled time
// against the actual previous end; the timing check above compares against
// the travel-adjusted minimum instead.
func overlapWarning(activity Activity, timeline []TimelineEntry, i int) (Warning, bool) {
	scheduled, ok := ParseTimeToMinutes(activity.ScheduledTime)
	if !ok {
		return Warning{}, false
	}

	prev := timeline[i-1]
	if scheduled >= prev.EndMinute {
		return Warning{}, false
	}

	overlap := prev.EndMinute - scheduled
	return Warning{
		Type:          WarningOverlap,
		Severity:      SeverityCritical,
		ActivityIndex: i,
		Message: fmt.Sprintf("%q is scheduled for %s but %q does not end until %s",
			timeline[i].Name, FormatMinutesToTime(scheduled), prev.Name, FormatMinutesToTime(prev.EndMinute)),
		Suggestion: fmt.Sprintf("Reschedule this activity to %s or later", FormatMinutesToTime(prev.EndMinute)),
		Context: map[string]int{
			"scheduledStartMinute": scheduled,
			"previousEndMinute":    prev.EndMinute,
			"overlapMinutes":       overlap,
		},
	}, true
}

// scheduleWarning compares the total simulated time against the time the day
// actually has. Over an hour of overrun is critical; a 30-60 minute overrun
// is merely tight.
func scheduleWarning(totalMinutes, availableMinutes int) (Warning, bool) {
	overage := totalMinutes - availableMinutes

	var severity Severity
	switch {
	case overage > scheduleCriticalOverage:
		severity = SeverityCritical
	case overage > scheduleTightOverage:
		severity = SeverityMedium
	default:
		return Warning{}, false
	}

	removeCount := int(math.Ceil(float64(overage) / minutesPerRemovedActivity))
	return Warning{
		Type:          WarningSchedule,
		Severity:      severity,
		ActivityIndex: WholeDayIndex,
		Message: fmt.Sprintf("The plan needs about %.1f hours but the day has %.1f hours available",
			float64(totalMinutes)/60, float64(availableMinutes)/60),
		Suggestion: fmt.Sprintf("Remove about %d activities to make the day feasible", removeCount),
		Context: map[string]int{
			"totalTimeMinutes":     totalMinutes,
			"availableTimeMinutes": availableMinutes,
			"overageMinutes":       overage,
			"suggestedRemovals":    removeCount,
		},
	}, true
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
