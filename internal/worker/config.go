// Package worker provides background job processing for Roamplan.
package worker

import (
	"strings"
	"time"
)

// RefreshTarget represents a destination whose forecast cache to keep warm.
type RefreshTarget struct {
	// Name is the destination name as travellers write it on their trips.
	Name string

	// Point is the lat/lon to refresh for this destination.
	Point Point

	// Priority determines refresh order (lower = higher priority).
	Priority int
}

// Point represents a geographic coordinate.
type Point struct {
	Lat float64
	Lon float64
}

// RefreshConfig holds configuration for the forecast refresh job.
type RefreshConfig struct {
	// Targets are the destinations to refresh.
	// If empty, uses DefaultRefreshTargets.
	Targets []RefreshTarget

	// Concurrency is the number of concurrent refresh operations.
	// Default: 3
	Concurrency int

	// Timeout is the timeout for each refresh operation.
	// Default: 30 seconds
	Timeout time.Duration

	// LookaheadDays is how far ahead to look for upcoming trips whose
	// destinations should be refreshed. Default: 14
	LookaheadDays int
}

// DefaultRefreshConfig returns the default refresh configuration.
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		Targets:       DefaultRefreshTargets(),
		Concurrency:   3,
		Timeout:       30 * time.Second,
		LookaheadDays: 14,
	}
}

// DefaultRefreshTargets returns the destinations Roamplan trips most often
// name. These double as a gazetteer for resolving trip destinations to
// coordinates.
func DefaultRefreshTargets() []RefreshTarget {
	return []RefreshTarget{
		{Name: "Tokyo", Priority: 1, Point: Point{Lat: 35.6762, Lon: 139.6503}},
		{Name: "Kyoto", Priority: 1, Point: Point{Lat: 35.0116, Lon: 135.7681}},
		{Name: "Paris", Priority: 1, Point: Point{Lat: 48.8566, Lon: 2.3522}},
		{Name: "London", Priority: 1, Point: Point{Lat: 51.5074, Lon: -0.1278}},
		{Name: "New York", Priority: 1, Point: Point{Lat: 40.7128, Lon: -74.0060}},
		{Name: "Rome", Priority: 2, Point: Point{Lat: 41.9028, Lon: 12.4964}},
		{Name: "Barcelona", Priority: 2, Point: Point{Lat: 41.3874, Lon: 2.1686}},
		{Name: "Amsterdam", Priority: 2, Point: Point{Lat: 52.3676, Lon: 4.9041}},
		{Name: "Bangkok", Priority: 2, Point: Point{Lat: 13.7563, Lon: 100.5018}},
		{Name: "Singapore", Priority: 2, Point: Point{Lat: 1.3521, Lon: 103.8198}},
		{Name: "Manila", Priority: 3, Point: Point{Lat: 14.5995, Lon: 120.9842}},
		{Name: "Seoul", Priority: 3, Point: Point{Lat: 37.5665, Lon: 126.9780}},
		{Name: "Lisbon", Priority: 3, Point: Point{Lat: 38.7223, Lon: -9.1393}},
		{Name: "Sydney", Priority: 3, Point: Point{Lat: -33.8688, Lon: 151.2093}},
	}
}

// ResolveDestination looks up the coordinates for a trip destination in the
// gazetteer. Matching is case-insensitive on the destination name.
func ResolveDestination(destination string) (Point, bool) {
	needle := strings.ToLower(strings.TrimSpace(destination))
	for _, target := range DefaultRefreshTargets() {
		if strings.ToLower(target.Name) == needle {
			return target.Point, true
		}
	}
	return Point{}, false
}

// AllPoints returns the points of all targets.
func (c RefreshConfig) AllPoints() []Point {
	points := make([]Point, 0, len(c.Targets))
	for _, target := range c.Targets {
		points = append(points, target.Point)
	}
	return points
}
