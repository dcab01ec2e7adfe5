// Package flights provides flight offer search for trip planning, with
// per-route caching in front of the booking provider.
package flights

import (
	"errors"
	"time"
)

// Flight errors.
var (
	ErrProviderUnavailable = errors.New("flight provider unavailable")
	ErrInvalidRoute        = errors.New("invalid route")
)

// Segment represents one leg of an offer.
type Segment struct {
	CarrierCode     string
	FlightNumber    string
	Origin          string
	Destination     string
	DepartureAt     time.Time
	ArrivalAt       time.Time
	DurationMinutes int
}

// Offer represents a priced one-way flight itinerary.
type Offer struct {
	ID              string
	Origin          string
	Destination     string
	DurationMinutes int
	Stops           int

	// Price as returned by the provider. Kept as a string to avoid float
	// rounding on money.
	PriceAmount   string
	PriceCurrency string

	Segments []Segment
}

// SearchQuery identifies a flight search.
type SearchQuery struct {
	// Origin and Destination are IATA location codes.
	Origin      string
	Destination string

	// DepartureDate in YYYY-MM-DD.
	DepartureDate string

	// Adults defaults to 1.
	Adults int
}

// Result is a set of offers for one query.
type Result struct {
	Offers    []Offer
	FetchedAt time.Time
}
