package models

// Activity represents a single planned activity within a day.
type Activity struct {
	PlaceName          string `json:"placeName" validate:"required"`
	ScheduledTime      string `json:"scheduledTime,omitempty"`
	Duration           string `json:"duration,omitempty"`
	Category           string `json:"category,omitempty"`
	TravelFromPrevious string `json:"travelFromPrevious,omitempty"`
	PlaceDetails       string `json:"placeDetails,omitempty"`
}

// DayPlan represents one day of a trip itinerary.
type DayPlan struct {
	DayNumber  int        `json:"dayNumber"`
	Date       string     `json:"date,omitempty"`
	Activities []Activity `json:"activities"`
}

// Trip represents a saved trip itinerary.
type Trip struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Destination string    `json:"destination"`
	StartDate   DateOnly  `json:"startDate"`
	EndDate     DateOnly  `json:"endDate"`
	DayStart    string    `json:"dayStart"`
	DayEnd      string    `json:"dayEnd"`
	Days        []DayPlan `json:"days"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
}

// TripCreateRequest is the request body for creating a trip.
type TripCreateRequest struct {
	Title       string    `json:"title" validate:"required,min=1,max=120"`
	Destination string    `json:"destination" validate:"required,min=1,max=120"`
	StartDate   DateOnly  `json:"startDate" validate:"required"`
	EndDate     DateOnly  `json:"endDate" validate:"required"`
	DayStart    *string   `json:"dayStart,omitempty"`
	DayEnd      *string   `json:"dayEnd,omitempty"`
	Days        []DayPlan `json:"days,omitempty"`
}

// TripUpdateRequest is the request body for updating a trip.
type TripUpdateRequest struct {
	Title       *string   `json:"title,omitempty" validate:"omitempty,min=1,max=120"`
	Destination *string   `json:"destination,omitempty" validate:"omitempty,min=1,max=120"`
	StartDate   *DateOnly `json:"startDate,omitempty"`
	EndDate     *DateOnly `json:"endDate,omitempty"`
	DayStart    *string   `json:"dayStart,omitempty"`
	DayEnd      *string   `json:"dayEnd,omitempty"`
}

// DayPlanUpdateRequest is the request body for replacing a day's activities.
type DayPlanUpdateRequest struct {
	Date       string     `json:"date,omitempty"`
	Activities []Activity `json:"activities" validate:"required"`
}

// PagedTrips represents a paginated list of trips.
type PagedTrips struct {
	Items []Trip            `json:"items"`
	Meta  PagedResponseMeta `json:"meta"`
}
