package models

// FlightSegment represents one leg of a flight offer.
type FlightSegment struct {
	CarrierCode   string    `json:"carrierCode"`
	FlightNumber  string    `json:"flightNumber"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	DepartureAt   Timestamp `json:"departureAt"`
	ArrivalAt     Timestamp `json:"arrivalAt"`
	DurationMinutes int     `json:"durationMinutes"`
}

// FlightOffer represents a priced flight itinerary.
type FlightOffer struct {
	ID              string          `json:"id"`
	Origin          string          `json:"origin"`
	Destination     string          `json:"destination"`
	DurationMinutes int             `json:"durationMinutes"`
	Stops           int             `json:"stops"`
	PriceAmount     string          `json:"priceAmount"`
	PriceCurrency   string          `json:"priceCurrency"`
	Segments        []FlightSegment `json:"segments"`
}

// FlightSearchResponse is the response for a flight search.
type FlightSearchResponse struct {
	Offers      []FlightOffer `json:"offers"`
	RetrievedAt Timestamp     `json:"retrievedAt"`
	Stale       bool          `json:"stale,omitempty"`
}
