package itinerary

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryRepository is an in-memory implementation of Repository for tests
// and local development.
type InMemoryRepository struct {
	mu    sync.RWMutex
	trips map[string]*Trip
}

// NewInMemoryRepository creates a new in-memory trip repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{trips: make(map[string]*Trip)}
}

// GetByUserAndID retrieves a trip owned by the given user.
func (r *InMemoryRepository) GetByUserAndID(_ context.Context, userID, tripID string) (*Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	trip, ok := r.trips[tripID]
	if !ok || trip.UserID != userID {
		return nil, ErrTripNotFound
	}
	copied := *trip
	return &copied, nil
}

// List retrieves the user's trips, newest first.
func (r *InMemoryRepository) List(_ context.Context, userID string, opts ListOptions) (*ListResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var trips []*Trip
	for _, trip := range r.trips {
		if trip.UserID == userID {
			copied := *trip
			trips = append(trips, &copied)
		}
	}
	sort.Slice(trips, func(i, j int) bool {
		return trips[i].CreatedAt.After(trips[j].CreatedAt)
	})

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	result := &ListResult{Items: trips}
	if len(trips) > limit {
		result.Items = trips[:limit]
		result.NextCursor = trips[limit-1].ID
	}
	return result, nil
}

// ListUpcoming retrieves trips starting within the given number of days.
func (r *InMemoryRepository) ListUpcoming(_ context.Context, withinDays int) ([]*Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	today := time.Now().Truncate(24 * time.Hour)
	horizon := today.AddDate(0, 0, withinDays)

	var trips []*Trip
	for _, trip := range r.trips {
		if trip.StartDate.Before(today) || trip.StartDate.After(horizon) {
			continue
		}
		copied := *trip
		trips = append(trips, &copied)
	}
	sort.Slice(trips, func(i, j int) bool {
		return trips[i].StartDate.Before(trips[j].StartDate)
	})
	return trips, nil
}

// Create stores a new trip.
func (r *InMemoryRepository) Create(_ context.Context, trip *Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *trip
	r.trips[trip.ID] = &copied
	return nil
}

// Update replaces an existing trip.
func (r *InMemoryRepository) Update(_ context.Context, trip *Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.trips[trip.ID]; !ok {
		return ErrTripNotFound
	}
	copied := *trip
	r.trips[trip.ID] = &copied
	return nil
}

// Delete removes a trip.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.trips, id)
	return nil
}

// Ensure InMemoryRepository implements Repository.
var _ Repository = (*InMemoryRepository)(nil)
