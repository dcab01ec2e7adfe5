package models

// ScheduleValidateRequest is the request body for an ad-hoc schedule
// feasibility check.
type ScheduleValidateRequest struct {
	Activities []Activity `json:"activities" validate:"required"`
	DayStart   *string    `json:"dayStart,omitempty"`
	DayEnd     *string    `json:"dayEnd,omitempty"`
}

// ScheduleWarning represents one feasibility finding.
type ScheduleWarning struct {
	Type          string         `json:"type"`
	Severity      string         `json:"severity"`
	ActivityIndex int            `json:"activityIndex"`
	Message       string         `json:"message"`
	Suggestion    string         `json:"suggestion,omitempty"`
	Context       map[string]int `json:"context,omitempty"`
}

// TimelineEntry represents one simulated schedule slot.
type TimelineEntry struct {
	ActivityIndex   int    `json:"activityIndex"`
	Name            string `json:"name"`
	StartMinute     int    `json:"startMinute"`
	DurationMinutes int    `json:"durationMinutes"`
	TravelBefore    int    `json:"travelBeforeMinutes"`
	EndMinute       int    `json:"endMinute"`
}

// ScheduleReport is the result of validating one day's schedule.
type ScheduleReport struct {
	IsValid              bool              `json:"isValid"`
	Warnings             []ScheduleWarning `json:"warnings"`
	TotalTimeMinutes     int               `json:"totalTimeMinutes"`
	AvailableTimeMinutes int               `json:"availableTimeMinutes"`
	UtilizationPercent   int               `json:"utilizationPercent"`
	Timeline             []TimelineEntry   `json:"timeline"`
}

// DayValidationResponse is the validation report for a stored trip day.
type DayValidationResponse struct {
	TripID    string         `json:"tripId"`
	DayNumber int            `json:"dayNumber"`
	Report    ScheduleReport `json:"report"`
}
