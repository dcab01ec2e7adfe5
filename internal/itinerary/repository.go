package itinerary

import "context"

// ListOptions contains options for listing trips.
type ListOptions struct {
	Limit int
}

// ListResult contains the results of listing trips.
type ListResult struct {
	Items      []*Trip
	NextCursor string
}

// Repository defines the interface for trip persistence.
type Repository interface {
	// GetByUserAndID retrieves a trip owned by the given user.
	// Returns ErrTripNotFound if it does not exist or belongs to someone else.
	GetByUserAndID(ctx context.Context, userID, tripID string) (*Trip, error)

	// List retrieves the user's trips, newest first.
	List(ctx context.Context, userID string, opts ListOptions) (*ListResult, error)

	// ListUpcoming retrieves trips across all users whose start date falls
	// within the given number of days from now. Used by the forecast
	// refresh worker.
	ListUpcoming(ctx context.Context, withinDays int) ([]*Trip, error)

	// Create stores a new trip.
	Create(ctx context.Context, trip *Trip) error

	// Update replaces an existing trip, including its day plans.
	Update(ctx context.Context, trip *Trip) error

	// Delete removes a trip.
	Delete(ctx context.Context, id string) error
}
