// Package itinerary provides trip plan management: storage and editing of
// day-by-day activity plans and feasibility validation of individual days.
package itinerary

import (
	"errors"
	"time"

	"github.com/roamplan/roamplan/internal/schedule"
)

// Repository errors.
var (
	ErrTripNotFound = errors.New("trip not found")
	ErrDayNotFound  = errors.New("day not found in trip")
)

// Trip is a saved travel plan. Days carries the full day-by-day plan as one
// document, mirroring the document shape the planning UI edits in place.
type Trip struct {
	ID          string
	UserID      string
	Title       string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	DayStart    string
	DayEnd      string
	Days        []DayPlan
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DayPlan is the ordered activity list for one day of a trip. Activity order
// defines the intended chronological sequence whether or not every entry
// carries a scheduled time.
type DayPlan struct {
	DayNumber  int                 `json:"dayNumber"`
	Date       string              `json:"date,omitempty"`
	Activities []schedule.Activity `json:"activities"`
}

// Day returns the plan for the given 1-based day number.
func (t *Trip) Day(dayNumber int) (*DayPlan, bool) {
	for i := range t.Days {
		if t.Days[i].DayNumber == dayNumber {
			return &t.Days[i], true
		}
	}
	return nil, false
}
