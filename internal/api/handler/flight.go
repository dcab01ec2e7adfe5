package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/roamplan/roamplan/internal/api/models"
	"github.com/roamplan/roamplan/internal/api/response"
	"github.com/roamplan/roamplan/internal/flights"
)

// FlightHandler handles flight search endpoints.
type FlightHandler struct {
	service *flights.Service
}

// NewFlightHandler creates a new FlightHandler.
func NewFlightHandler(service *flights.Service) *FlightHandler {
	return &FlightHandler{service: service}
}

// Search handles GET /v1/flights/search?origin=..&destination=..&date=..
func (h *FlightHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := flights.SearchQuery{
		Origin:        r.URL.Query().Get("origin"),
		Destination:   r.URL.Query().Get("destination"),
		DepartureDate: r.URL.Query().Get("date"),
	}

	if raw := r.URL.Query().Get("adults"); raw != "" {
		adults, err := strconv.Atoi(raw)
		if err != nil || adults < 1 || adults > 9 {
			response.BadRequest(w, r, "adults must be an integer between 1 and 9", nil)
			return
		}
		query.Adults = adults
	}

	result, err := h.service.Search(r.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, flights.ErrInvalidRoute):
			response.BadRequest(w, r, "origin and destination must be IATA codes and date must be YYYY-MM-DD", nil)
		case errors.Is(err, flights.ErrProviderUnavailable):
			response.ServiceUnavailable(w, r, "flight provider unavailable")
		default:
			response.InternalError(w, r, "failed to search flights")
		}
		return
	}

	response.JSON(w, r, http.StatusOK, toAPIFlightResult(result))
}

// toAPIFlightResult converts a domain search result to its API representation.
func toAPIFlightResult(result *flights.Result) models.FlightSearchResponse {
	offers := make([]models.FlightOffer, 0, len(result.Offers))
	for _, o := range result.Offers {
		offer := models.FlightOffer{
			ID:              o.ID,
			Origin:          o.Origin,
			Destination:     o.Destination,
			DurationMinutes: o.DurationMinutes,
			Stops:           o.Stops,
			PriceAmount:     o.PriceAmount,
			PriceCurrency:   o.PriceCurrency,
			Segments:        make([]models.FlightSegment, 0, len(o.Segments)),
		}
		for _, s := range o.Segments {
			offer.Segments = append(offer.Segments, models.FlightSegment{
				CarrierCode:     s.CarrierCode,
				FlightNumber:    s.FlightNumber,
				Origin:          s.Origin,
				Destination:     s.Destination,
				DepartureAt:     models.Timestamp(s.DepartureAt),
				ArrivalAt:       models.Timestamp(s.ArrivalAt),
				DurationMinutes: s.DurationMinutes,
			})
		}
		offers = append(offers, offer)
	}

	return models.FlightSearchResponse{
		Offers:      offers,
		RetrievedAt: models.Timestamp(result.FetchedAt),
	}
}
