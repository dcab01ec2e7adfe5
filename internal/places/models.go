// Package places provides point-of-interest search so planners can pull real
// venues, coordinates, and ratings into an itinerary.
package places

import "errors"

// Place errors.
var (
	ErrProviderUnavailable = errors.New("place provider unavailable")
	ErrEmptyQuery          = errors.New("empty search query")
)

// Place represents a point of interest.
type Place struct {
	ID          string
	Name        string
	Address     string
	Lat         float64
	Lon         float64
	Rating      float64
	RatingCount int
	Categories  []string
	PhotoURL    string

	// OpenNow is nil when the provider has no opening-hours data.
	OpenNow *bool
}
