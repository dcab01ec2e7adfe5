package schedule

import "math"

// Default day bounds applied when the caller passes empty or unparsable
// clock strings.
const (
	DefaultDayStart = "08:00 AM"
	DefaultDayEnd   = "10:00 PM"
)

// ValidateDaySchedule simulates one day's activities and returns a
// feasibility report. dayStart and dayEnd are 12-hour clock strings; empty or
// unparsable values fall back to 08:00 AM and 10:00 PM. The call is pure and
// never fails: malformed activity fields degrade to defaults, and an empty
// activity list yields a trivially valid report.
func ValidateDaySchedule(activities []Activity, dayStart, dayEnd string) *Report {
	startMinutes, ok := ParseTimeToMinutes(dayStart)
	if !ok {
		startMinutes, _ = ParseTimeToMinutes(DefaultDayStart)
	}
	endMinutes, ok := ParseTimeToMinutes(dayEnd)
	if !ok {
		endMinutes, _ = ParseTimeToMinutes(DefaultDayEnd)
	}

	available := endMinutes - startMinutes

	if len(activities) == 0 {
		return &Report{
			IsValid:              true,
			Warnings:             []Warning{},
			AvailableTimeMinutes: available,
			Timeline:             []TimelineEntry{},
		}
	}

	sim := SimulateDay(activities, startMinutes, endMinutes)
	warnings := synthesizeWarnings(activities, sim, startMinutes, endMinutes)

	isValid := true
	for _, w := range warnings {
		if w.Severity == SeverityCritical {
			isValid = false
			break
		}
	}

	utilization := 0
	if available > 0 {
		utilization = int(math.Round(float64(sim.TotalTimeMinutes) / float64(available) * 100))
	}

	return &Report{
		IsValid:              isValid,
		Warnings:             warnings,
		TotalTimeMinutes:     sim.TotalTimeMinutes,
		AvailableTimeMinutes: available,
		UtilizationPercent:   utilization,
		Timeline:             sim.Timeline,
	}
}
