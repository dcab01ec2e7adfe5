package models

// Place represents a point of interest returned from a place search.
type Place struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address,omitempty"`
	Lat         float64  `json:"lat"`
	Lon         float64  `json:"lon"`
	Rating      float64  `json:"rating,omitempty"`
	RatingCount int      `json:"ratingCount,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	PhotoURL    string   `json:"photoUrl,omitempty"`
	OpenNow     *bool    `json:"openNow,omitempty"`
}

// PlaceSearchResponse is the response for a place text search.
type PlaceSearchResponse struct {
	Items []Place `json:"items"`
}
