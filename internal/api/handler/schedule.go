package handler

import (
	"encoding/json"
	"net/http"

	"github.com/roamplan/roamplan/internal/api/models"
	"github.com/roamplan/roamplan/internal/api/response"
	"github.com/roamplan/roamplan/internal/schedule"
)

// maxAdHocActivities bounds the ad-hoc validation payload.
const maxAdHocActivities = 50

// ScheduleHandler handles ad-hoc schedule validation.
type ScheduleHandler struct{}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler() *ScheduleHandler {
	return &ScheduleHandler{}
}

// Validate handles POST /v1/schedule:validate - feasibility check for an
// activity list that is not stored as a trip.
func (h *ScheduleHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var input models.ScheduleValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if len(input.Activities) > maxAdHocActivities {
		response.BadRequest(w, r, "too many activities", []models.FieldError{
			{Field: "activities", Message: "must contain at most 50 activities"},
		})
		return
	}

	dayStart := schedule.DefaultDayStart
	if input.DayStart != nil {
		dayStart = *input.DayStart
	}
	dayEnd := schedule.DefaultDayEnd
	if input.DayEnd != nil {
		dayEnd = *input.DayEnd
	}

	var fieldErrors []models.FieldError
	if _, ok := schedule.ParseTimeToMinutes(dayStart); !ok {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field: "dayStart", Message: "must be a 12-hour clock time such as 08:00 AM",
		})
	}
	if _, ok := schedule.ParseTimeToMinutes(dayEnd); !ok {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field: "dayEnd", Message: "must be a 12-hour clock time such as 10:00 PM",
		})
	}
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "invalid day bounds", fieldErrors)
		return
	}

	activities := make([]schedule.Activity, 0, len(input.Activities))
	for _, a := range input.Activities {
		activities = append(activities, schedule.Activity{
			PlaceName:          a.PlaceName,
			ScheduledTime:      a.ScheduledTime,
			DurationText:       a.Duration,
			Category:           a.Category,
			TravelFromPrevious: a.TravelFromPrevious,
			PlaceDetails:       a.PlaceDetails,
		})
	}

	report := schedule.ValidateDaySchedule(activities, dayStart, dayEnd)
	response.JSON(w, r, http.StatusOK, toAPIReport(report))
}

// toAPIReport converts a validator report to its API representation.
func toAPIReport(r *schedule.Report) models.ScheduleReport {
	warnings := make([]models.ScheduleWarning, 0, len(r.Warnings))
	for _, w := range r.Warnings {
		warnings = append(warnings, models.ScheduleWarning{
			Type:          string(w.Type),
			Severity:      string(w.Severity),
			ActivityIndex: w.ActivityIndex,
			Message:       w.Message,
			Suggestion:    w.Suggestion,
			Context:       w.Context,
		})
	}

	timeline := make([]models.TimelineEntry, 0, len(r.Timeline))
	for _, entry := range r.Timeline {
		timeline = append(timeline, models.TimelineEntry{
			ActivityIndex:   entry.ActivityIndex,
			Name:            entry.Name,
			StartMinute:     entry.StartMinute,
			DurationMinutes: entry.DurationMinutes,
			TravelBefore:    entry.TravelBefore,
			EndMinute:       entry.EndMinute,
		})
	}

	return models.ScheduleReport{
		IsValid:              r.IsValid,
		Warnings:             warnings,
		TotalTimeMinutes:     r.TotalTimeMinutes,
		AvailableTimeMinutes: r.AvailableTimeMinutes,
		UtilizationPercent:   r.UtilizationPercent,
		Timeline:             timeline,
	}
}
