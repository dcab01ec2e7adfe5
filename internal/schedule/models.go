// Package schedule provides the day-schedule feasibility validator. Given an
// ordered list of planned activities it estimates the travel time between
// consecutive stops, simulates the day's timeline, and reports overlaps,
// overtime, and over-packed days as structured warnings.
//
// The validator is pure: it never fetches, persists, or renders anything, and
// malformed per-field input degrades to defaults instead of failing the call.
package schedule

// Activity is one planned stop within a day's itinerary. All fields are
// free-text as supplied by the itinerary source; the validator parses what it
// can and falls back to defaults for the rest.
type Activity struct {
	// PlaceName labels the destination. It may embed travel logistics
	// language ("Taxi to airport") or numeric travel hints ("30 min drive
	// to Old Town").
	PlaceName string `json:"placeName"`

	// ScheduledTime is an optional 12-hour clock string ("09:00 AM").
	// Absent or unparsable means the activity inherits the running clock.
	ScheduledTime string `json:"scheduledTime,omitempty"`

	// DurationText is an optional free-text duration ("2 hours",
	// "30 mins", "1-2 hours"). Absent defaults to 60 minutes.
	DurationText string `json:"duration,omitempty"`

	// Category is an optional coarse tag ("attraction", "restaurant").
	Category string `json:"category,omitempty"`

	// TravelFromPrevious is an optional upstream-supplied travel duration
	// that overrides heuristic estimation when present.
	TravelFromPrevious string `json:"travelFromPrevious,omitempty"`

	// PlaceDetails is an optional description, scanned for embedded
	// travel-time mentions as a fallback estimation source.
	PlaceDetails string `json:"placeDetails,omitempty"`
}

// TimelineEntry is the simulated, minute-resolved schedule slot for one
// activity. EndMinute is always StartMinute + DurationMinutes; whether
// StartMinute respects the previous entry's end is what the synthesizer
// checks, not something the simulator corrects.
type TimelineEntry struct {
	ActivityIndex   int    `json:"activityIndex"`
	Name            string `json:"name"`
	StartMinute     int    `json:"startMinute"`
	DurationMinutes int    `json:"durationMinutes"`
	TravelBefore    int    `json:"travelBeforeMinutes"`
	EndMinute       int    `json:"endMinute"`
}

// WarningType classifies a feasibility finding.
type WarningType string

// Warning types.
const (
	WarningTiming   WarningType = "timing"
	WarningOvertime WarningType = "overtime"
	WarningDuration WarningType = "duration"
	WarningOverlap  WarningType = "overlap"
	WarningSchedule WarningType = "schedule"
	WarningDensity  WarningType = "density"
)

// Severity ranks a warning. Critical warnings gate report validity.
type Severity string

// Severities, ordered critical > high > medium.
const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
)

// WholeDayIndex is the ActivityIndex used for warnings that apply to the day
// as a whole rather than a single activity.
const WholeDayIndex = -1

// Warning is a structured feasibility finding. Message and Suggestion are
// plain human-readable text; Context carries the numeric diagnostics so a
// display layer can format its own copy instead of parsing the message.
type Warning struct {
	Type          WarningType    `json:"type"`
	Severity      Severity       `json:"severity"`
	ActivityIndex int            `json:"activityIndex"`
	Message       string         `json:"message"`
	Suggestion    string         `json:"suggestion,omitempty"`
	Context       map[string]int `json:"context,omitempty"`
}

// Report is the result of validating one day's schedule.
type Report struct {
	// IsValid is true iff no warning carries critical severity.
	IsValid bool `json:"isValid"`

	// Warnings are ordered by activity, with whole-day warnings appended
	// after the per-activity ones.
	Warnings []Warning `json:"warnings"`

	TotalTimeMinutes     int `json:"totalTimeMinutes"`
	AvailableTimeMinutes int `json:"availableTimeMinutes"`
	UtilizationPercent   int `json:"utilizationPercent"`

	Timeline []TimelineEntry `json:"timeline"`
}
