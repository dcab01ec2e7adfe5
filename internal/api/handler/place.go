package handler

import (
	"errors"
	"net/http"

	"github.com/roamplan/roamplan/internal/api/models"
	"github.com/roamplan/roamplan/internal/api/response"
	"github.com/roamplan/roamplan/internal/places"
)

// PlaceHandler handles place search endpoints.
type PlaceHandler struct {
	service *places.Service
}

// NewPlaceHandler creates a new PlaceHandler.
func NewPlaceHandler(service *places.Service) *PlaceHandler {
	return &PlaceHandler{service: service}
}

// Search handles GET /v1/places/search?q=..&region=..
func (h *PlaceHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	region := r.URL.Query().Get("region")

	results, err := h.service.Search(r.Context(), query, region)
	if err != nil {
		switch {
		case errors.Is(err, places.ErrEmptyQuery):
			response.BadRequest(w, r, "q query parameter is required", nil)
		case errors.Is(err, places.ErrProviderUnavailable):
			response.ServiceUnavailable(w, r, "place provider unavailable")
		default:
			response.InternalError(w, r, "failed to search places")
		}
		return
	}

	response.JSON(w, r, http.StatusOK, toAPIPlaces(results))
}

func toAPIPlaces(results []places.Place) models.PlaceSearchResponse {
	items := make([]models.Place, 0, len(results))
	for _, p := range results {
		items = append(items, models.Place{
			ID:          p.ID,
			Name:        p.Name,
			Address:     p.Address,
			Lat:         p.Lat,
			Lon:         p.Lon,
			Rating:      p.Rating,
			RatingCount: p.RatingCount,
			Categories:  p.Categories,
			PhotoURL:    p.PhotoURL,
			OpenNow:     p.OpenNow,
		})
	}

	return models.PlaceSearchResponse{Items: items}
}
