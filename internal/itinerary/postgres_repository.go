package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository. Day plans
// are stored as a JSONB document so the inline editor's day structure
// round-trips without a relational mapping.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL trip repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const tripColumns = `
	id, user_id, title, destination,
	start_date, end_date, day_start, day_end,
	days, created_at, updated_at
`

// GetByUserAndID retrieves a trip owned by the given user.
func (r *PostgresRepository) GetByUserAndID(ctx context.Context, userID, tripID string) (*Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1 AND user_id = $2`

	trip, err := scanTrip(r.pool.QueryRow(ctx, query, tripID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return trip, nil
}

// List retrieves the user's trips, newest first.
func (r *PostgresRepository) List(ctx context.Context, userID string, opts ListOptions) (*ListResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	// Fetch one extra row to detect another page.
	fetchLimit := limit + 1

	query := `SELECT ` + tripColumns + ` FROM trips
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, fetchLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*Trip
	for rows.Next() {
		trip, scanErr := scanTrip(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := &ListResult{Items: trips}
	if len(trips) > limit {
		result.Items = trips[:limit]
		result.NextCursor = trips[limit-1].ID
	}
	return result, nil
}

// ListUpcoming retrieves trips starting within the given number of days.
func (r *PostgresRepository) ListUpcoming(ctx context.Context, withinDays int) ([]*Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips
		WHERE start_date >= CURRENT_DATE
		  AND start_date <= CURRENT_DATE + $1 * INTERVAL '1 day'
		ORDER BY start_date ASC`

	rows, err := r.pool.Query(ctx, query, withinDays)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*Trip
	for rows.Next() {
		trip, scanErr := scanTrip(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		trips = append(trips, trip)
	}
	return trips, rows.Err()
}

// Create stores a new trip.
func (r *PostgresRepository) Create(ctx context.Context, trip *Trip) error {
	days, err := json.Marshal(trip.Days)
	if err != nil {
		return fmt.Errorf("encoding day plans: %w", err)
	}

	query := `INSERT INTO trips (` + tripColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = r.pool.Exec(ctx, query,
		trip.ID,
		trip.UserID,
		trip.Title,
		trip.Destination,
		trip.StartDate,
		trip.EndDate,
		trip.DayStart,
		trip.DayEnd,
		days,
		trip.CreatedAt,
		trip.UpdatedAt,
	)
	return err
}

// Update replaces an existing trip, including its day plans.
func (r *PostgresRepository) Update(ctx context.Context, trip *Trip) error {
	days, err := json.Marshal(trip.Days)
	if err != nil {
		return fmt.Errorf("encoding day plans: %w", err)
	}

	query := `UPDATE trips SET
			title = $2,
			destination = $3,
			start_date = $4,
			end_date = $5,
			day_start = $6,
			day_end = $7,
			days = $8,
			updated_at = $9
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query,
		trip.ID,
		trip.Title,
		trip.Destination,
		trip.StartDate,
		trip.EndDate,
		trip.DayStart,
		trip.DayEnd,
		days,
		trip.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrTripNotFound
	}
	return nil
}

// Delete removes a trip.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM trips WHERE id = $1`, id)
	return err
}

// scanTrip scans one trip row, decoding the JSONB day-plan document.
func scanTrip(row pgx.Row) (*Trip, error) {
	var trip Trip
	var days []byte

	err := row.Scan(
		&trip.ID,
		&trip.UserID,
		&trip.Title,
		&trip.Destination,
		&trip.StartDate,
		&trip.EndDate,
		&trip.DayStart,
		&trip.DayEnd,
		&days,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(days) > 0 {
		if err := json.Unmarshal(days, &trip.Days); err != nil {
			return nil, fmt.Errorf("decoding day plans: %w", err)
		}
	}
	return &trip, nil
}

// Ensure PostgresRepository implements Repository.
var _ Repository = (*PostgresRepository)(nil)
