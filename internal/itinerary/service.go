package itinerary

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/roamplan/roamplan/internal/api/models"
	"github.com/roamplan/roamplan/internal/schedule"
)

// Validation constants.
const (
	MaxTitleLength       = 120
	MaxDestinationLength = 120
	MaxTripDays          = 60
	MaxActivitiesPerDay  = 30
)

// Service provides trip itinerary operations.
type Service struct {
	repo Repository
}

// NewService creates a new itinerary service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List retrieves all trips for a user.
func (s *Service) List(ctx context.Context, userID string, limit int) (*models.PagedTrips, error) {
	result, err := s.repo.List(ctx, userID, ListOptions{Limit: limit})
	if err != nil {
		return nil, err
	}

	items := make([]models.Trip, 0, len(result.Items))
	for _, t := range result.Items {
		items = append(items, s.toAPITrip(t))
	}

	var nextCursor *string
	if result.NextCursor != "" {
		nextCursor = &result.NextCursor
	}

	return &models.PagedTrips{
		Items: items,
		Meta: models.PagedResponseMeta{
			Limit:      limit,
			NextCursor: nextCursor,
		},
	}, nil
}

// Get retrieves a trip by ID for a user.
func (s *Service) Get(ctx context.Context, userID, tripID string) (*models.Trip, error) {
	trip, err := s.repo.GetByUserAndID(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	result := s.toAPITrip(trip)
	return &result, nil
}

// Create creates a new trip for a user.
func (s *Service) Create(ctx context.Context, userID string, input *models.TripCreateRequest) (*models.Trip, error) {
	// Validate input
	if fieldErrors := s.validateCreateInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	now := time.Now()
	tripID := "trp_" + uuid.New().String()[:22]

	trip := &Trip{
		ID:          tripID,
		UserID:      userID,
		Title:       input.Title,
		Destination: input.Destination,
		StartDate:   input.StartDate.Time(),
		EndDate:     input.EndDate.Time(),
		DayStart:    schedule.DefaultDayStart,
		DayEnd:      schedule.DefaultDayEnd,
		Days:        toDomainDays(input.Days),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.DayStart != nil {
		trip.DayStart = *input.DayStart
	}
	if input.DayEnd != nil {
		trip.DayEnd = *input.DayEnd
	}

	if err := s.repo.Create(ctx, trip); err != nil {
		return nil, err
	}

	result := s.toAPITrip(trip)
	return &result, nil
}

// Update updates an existing trip's top-level fields for a user. Day plans
// are edited through ReplaceDay.
func (s *Service) Update(ctx context.Context, userID, tripID string, input *models.TripUpdateRequest) (*models.Trip, error) {
	// Get existing trip
	trip, err := s.repo.GetByUserAndID(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	// Validate input
	if fieldErrors := s.validateUpdateInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	// Apply updates
	if input.Title != nil {
		trip.Title = *input.Title
	}
	if input.Destination != nil {
		trip.Destination = *input.Destination
	}
	if input.StartDate != nil {
		trip.StartDate = input.StartDate.Time()
	}
	if input.EndDate != nil {
		trip.EndDate = input.EndDate.Time()
	}
	if input.DayStart != nil {
		trip.DayStart = *input.DayStart
	}
	if input.DayEnd != nil {
		trip.DayEnd = *input.DayEnd
	}
	trip.UpdatedAt = time.Now()

	if fieldErrors := s.validateDayBounds(trip.DayStart, trip.DayEnd); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	if err := s.repo.Update(ctx, trip); err != nil {
		return nil, err
	}

	result := s.toAPITrip(trip)
	return &result, nil
}

// Delete deletes a trip for a user.
func (s *Service) Delete(ctx context.Context, userID, tripID string) error {
	// Verify ownership
	_, err := s.repo.GetByUserAndID(ctx, userID, tripID)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, tripID)
}

// ReplaceDay replaces the activity list for one day of a trip, creating the
// day if it does not exist yet. The returned report is the feasibility check
// of the stored day, so the editor sees warnings in the same response.
func (s *Service) ReplaceDay(ctx context.Context, userID, tripID string, dayNumber int, input *models.DayPlanUpdateRequest) (*models.DayValidationResponse, error) {
	trip, err := s.repo.GetByUserAndID(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	if fieldErrors := s.validateDayInput(dayNumber, input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	plan := DayPlan{
		DayNumber:  dayNumber,
		Date:       input.Date,
		Activities: toDomainActivities(input.Activities),
	}

	if existing, ok := trip.Day(dayNumber); ok {
		*existing = plan
	} else {
		trip.Days = append(trip.Days, plan)
	}
	trip.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, trip); err != nil {
		return nil, err
	}

	report := schedule.ValidateDaySchedule(plan.Activities, trip.DayStart, trip.DayEnd)
	return &models.DayValidationResponse{
		TripID:    tripID,
		DayNumber: dayNumber,
		Report:    toAPIReport(report),
	}, nil
}

// ValidateDay runs the feasibility check on a stored trip day.
func (s *Service) ValidateDay(ctx context.Context, userID, tripID string, dayNumber int) (*models.DayValidationResponse, error) {
	trip, err := s.repo.GetByUserAndID(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	plan, ok := trip.Day(dayNumber)
	if !ok {
		return nil, ErrDayNotFound
	}

	report := schedule.ValidateDaySchedule(plan.Activities, trip.DayStart, trip.DayEnd)
	return &models.DayValidationResponse{
		TripID:    tripID,
		DayNumber: dayNumber,
		Report:    toAPIReport(report),
	}, nil
}

// validateCreateInput validates the create trip input.
func (s *Service) validateCreateInput(input *models.TripCreateRequest) []models.FieldError {
	var errs []models.FieldError

	// Validate title
	if input.Title == "" {
		errs = append(errs, models.FieldError{Field: "title", Message: "is required"})
	} else if len(input.Title) > MaxTitleLength {
		errs = append(errs, models.FieldError{Field: "title", Message: "must be at most 120 characters"})
	}

	// Validate destination
	if input.Destination == "" {
		errs = append(errs, models.FieldError{Field: "destination", Message: "is required"})
	} else if len(input.Destination) > MaxDestinationLength {
		errs = append(errs, models.FieldError{Field: "destination", Message: "must be at most 120 characters"})
	}

	// Validate date range
	if input.EndDate.Time().Before(input.StartDate.Time()) {
		errs = append(errs, models.FieldError{Field: "endDate", Message: "must not be before startDate"})
	} else if input.EndDate.Time().Sub(input.StartDate.Time()) > MaxTripDays*24*time.Hour {
		errs = append(errs, models.FieldError{Field: "endDate", Message: "trip must be at most 60 days"})
	}

	// Validate day bounds (optional)
	dayStart := schedule.DefaultDayStart
	if input.DayStart != nil {
		dayStart = *input.DayStart
	}
	dayEnd := schedule.DefaultDayEnd
	if input.DayEnd != nil {
		dayEnd = *input.DayEnd
	}
	errs = append(errs, s.validateDayBounds(dayStart, dayEnd)...)

	// Validate initial day plans (optional)
	for _, day := range input.Days {
		if day.DayNumber < 1 {
			errs = append(errs, models.FieldError{Field: "days.dayNumber", Message: "must be at least 1"})
			break
		}
		if len(day.Activities) > MaxActivitiesPerDay {
			errs = append(errs, models.FieldError{Field: "days.activities", Message: "must contain at most 30 activities"})
			break
		}
	}

	return errs
}

// validateUpdateInput validates the update trip input.
func (s *Service) validateUpdateInput(input *models.TripUpdateRequest) []models.FieldError {
	var errs []models.FieldError

	// Validate title (optional)
	if input.Title != nil {
		if *input.Title == "" {
			errs = append(errs, models.FieldError{Field: "title", Message: "cannot be empty"})
		} else if len(*input.Title) > MaxTitleLength {
			errs = append(errs, models.FieldError{Field: "title", Message: "must be at most 120 characters"})
		}
	}

	// Validate destination (optional)
	if input.Destination != nil {
		if *input.Destination == "" {
			errs = append(errs, models.FieldError{Field: "destination", Message: "cannot be empty"})
		} else if len(*input.Destination) > MaxDestinationLength {
			errs = append(errs, models.FieldError{Field: "destination", Message: "must be at most 120 characters"})
		}
	}

	// Validate date range when both ends are supplied
	if input.StartDate != nil && input.EndDate != nil &&
		input.EndDate.Time().Before(input.StartDate.Time()) {
		errs = append(errs, models.FieldError{Field: "endDate", Message: "must not be before startDate"})
	}

	return errs
}

// validateDayInput validates a day plan replacement.
func (s *Service) validateDayInput(dayNumber int, input *models.DayPlanUpdateRequest) []models.FieldError {
	var errs []models.FieldError

	if dayNumber < 1 {
		errs = append(errs, models.FieldError{Field: "dayNumber", Message: "must be at least 1"})
	}
	if len(input.Activities) > MaxActivitiesPerDay {
		errs = append(errs, models.FieldError{Field: "activities", Message: "must contain at most 30 activities"})
	}
	for _, activity := range input.Activities {
		if activity.PlaceName == "" {
			errs = append(errs, models.FieldError{Field: "activities.placeName", Message: "is required"})
			break
		}
	}

	return errs
}

// validateDayBounds checks that day start and end parse and are ordered.
func (s *Service) validateDayBounds(dayStart, dayEnd string) []models.FieldError {
	var errs []models.FieldError

	startMin, startOK := schedule.ParseTimeToMinutes(dayStart)
	if !startOK {
		errs = append(errs, models.FieldError{Field: "dayStart", Message: "must be a 12-hour clock time such as 08:00 AM"})
	}
	endMin, endOK := schedule.ParseTimeToMinutes(dayEnd)
	if !endOK {
		errs = append(errs, models.FieldError{Field: "dayEnd", Message: "must be a 12-hour clock time such as 10:00 PM"})
	}
	if startOK && endOK && endMin <= startMin {
		errs = append(errs, models.FieldError{Field: "dayEnd", Message: "must be after dayStart"})
	}

	return errs
}

// toAPITrip converts a domain Trip to an API Trip.
func (s *Service) toAPITrip(t *Trip) models.Trip {
	days := make([]models.DayPlan, 0, len(t.Days))
	for _, day := range t.Days {
		days = append(days, models.DayPlan{
			DayNumber:  day.DayNumber,
			Date:       day.Date,
			Activities: toAPIActivities(day.Activities),
		})
	}

	return models.Trip{
		ID:          t.ID,
		Title:       t.Title,
		Destination: t.Destination,
		StartDate:   models.DateOnly(t.StartDate),
		EndDate:     models.DateOnly(t.EndDate),
		DayStart:    t.DayStart,
		DayEnd:      t.DayEnd,
		Days:        days,
		CreatedAt:   models.Timestamp(t.CreatedAt),
		UpdatedAt:   models.Timestamp(t.UpdatedAt),
	}
}

// toDomainDays converts API day plans to domain day plans.
func toDomainDays(days []models.DayPlan) []DayPlan {
	result := make([]DayPlan, 0, len(days))
	for _, day := range days {
		result = append(result, DayPlan{
			DayNumber:  day.DayNumber,
			Date:       day.Date,
			Activities: toDomainActivities(day.Activities),
		})
	}
	return result
}

// toDomainActivities converts API activities to validator activities.
func toDomainActivities(activities []models.Activity) []schedule.Activity {
	result := make([]schedule.Activity, 0, len(activities))
	for _, a := range activities {
		result = append(result, schedule.Activity{
			PlaceName:          a.PlaceName,
			ScheduledTime:      a.ScheduledTime,
			DurationText:       a.Duration,
			Category:           a.Category,
			TravelFromPrevious: a.TravelFromPrevious,
			PlaceDetails:       a.PlaceDetails,
		})
	}
	return result
}

// toAPIActivities converts validator activities to API activities.
func toAPIActivities(activities []schedule.Activity) []models.Activity {
	result := make([]models.Activity, 0, len(activities))
	for _, a := range activities {
		result = append(result, models.Activity{
			PlaceName:          a.PlaceName,
			ScheduledTime:      a.ScheduledTime,
			Duration:           a.DurationText,
			Category:           a.Category,
			TravelFromPrevious: a.TravelFromPrevious,
			PlaceDetails:       a.PlaceDetails,
		})
	}
	return result
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

// ValidationError represents validation errors.
type ValidationError struct {
	Errors []models.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// AsValidationError unwraps a validation error if present.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
