package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/roamplan/roamplan/internal/api/models"
	"github.com/roamplan/roamplan/internal/api/response"
	"github.com/roamplan/roamplan/internal/itinerary"
)

// defaultListLimit bounds trip list pages when the client sends no limit.
const defaultListLimit = 50

// TripHandler handles trip itinerary endpoints.
type TripHandler struct {
	service *itinerary.Service
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(service *itinerary.Service) *TripHandler {
	return &TripHandler{service: service}
}

// ListTrips handles GET /v1/me/trips - list the user's trips.
func (h *TripHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 200 {
			response.BadRequest(w, r, "limit must be an integer between 1 and 200", nil)
			return
		}
		limit = parsed
	}

	trips, err := h.service.List(r.Context(), userID, limit)
	if err != nil {
		response.InternalError(w, r, "failed to list trips")
		return
	}

	response.JSON(w, r, http.StatusOK, trips)
}

// CreateTrip handles POST /v1/me/trips - create a trip.
func (h *TripHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	var input models.TripCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	trip, err := h.service.Create(r.Context(), userID, &input)
	if err != nil {
		if verr, ok := itinerary.AsValidationError(err); ok {
			response.BadRequest(w, r, "trip validation failed", verr.Errors)
			return
		}
		response.InternalError(w, r, "failed to create trip")
		return
	}

	location := fmt.Sprintf("/v1/me/trips/%s", trip.ID)
	response.Created(w, r, location, trip)
}

// GetTrip handles GET /v1/me/trips/{tripId} - fetch a trip.
func (h *TripHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	tripID := chi.URLParam(r, "tripId")

	trip, err := h.service.Get(r.Context(), userID, tripID)
	if err != nil {
		if errors.Is(err, itinerary.ErrTripNotFound) {
			response.NotFound(w, r, "trip not found")
			return
		}
		response.InternalError(w, r, "failed to fetch trip")
		return
	}

	response.JSON(w, r, http.StatusOK, trip)
}

// UpdateTrip handles PUT /v1/me/trips/{tripId} - update a trip.
func (h *TripHandler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	tripID := chi.URLParam(r, "tripId")

	var input models.TripUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	trip, err := h.service.Update(r.Context(), userID, tripID, &input)
	if err != nil {
		switch {
		case errors.Is(err, itinerary.ErrTripNotFound):
			response.NotFound(w, r, "trip not found")
		default:
			if verr, ok := itinerary.AsValidationError(err); ok {
				response.BadRequest(w, r, "trip validation failed", verr.Errors)
				return
			}
			response.InternalError(w, r, "failed to update trip")
		}
		return
	}

	response.JSON(w, r, http.StatusOK, trip)
}

// DeleteTrip handles DELETE /v1/me/trips/{tripId} - delete a trip.
func (h *TripHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	tripID := chi.URLParam(r, "tripId")

	if err := h.service.Delete(r.Context(), userID, tripID); err != nil {
		if errors.Is(err, itinerary.ErrTripNotFound) {
			response.NotFound(w, r, "trip not found")
			return
		}
		response.InternalError(w, r, "failed to delete trip")
		return
	}

	response.NoContent(w, r)
}

// ReplaceDay handles PUT /v1/me/trips/{tripId}/days/{dayNumber} - replace a
// day's activities. Responds with the stored day's feasibility report.
func (h *TripHandler) ReplaceDay(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	tripID := chi.URLParam(r, "tripId")

	dayNumber, err := strconv.Atoi(chi.URLParam(r, "dayNumber"))
	if err != nil {
		response.BadRequest(w, r, "dayNumber must be an integer", nil)
		return
	}

	var input models.DayPlanUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	result, err := h.service.ReplaceDay(r.Context(), userID, tripID, dayNumber, &input)
	if err != nil {
		switch {
		case errors.Is(err, itinerary.ErrTripNotFound):
			response.NotFound(w, r, "trip not found")
		default:
			if verr, ok := itinerary.AsValidationError(err); ok {
				response.BadRequest(w, r, "day plan validation failed", verr.Errors)
				return
			}
			response.InternalError(w, r, "failed to replace day")
		}
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

// ValidateDay handles GET /v1/me/trips/{tripId}/days/{dayNumber}/validation -
// run the feasibility check on a stored day.
func (h *TripHandler) ValidateDay(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	tripID := chi.URLParam(r, "tripId")

	dayNumber, err := strconv.Atoi(chi.URLParam(r, "dayNumber"))
	if err != nil {
		response.BadRequest(w, r, "dayNumber must be an integer", nil)
		return
	}

	result, err := h.service.ValidateDay(r.Context(), userID, tripID, dayNumber)
	if err != nil {
		switch {
		case errors.Is(err, itinerary.ErrTripNotFound):
			response.NotFound(w, r, "trip not found")
		case errors.Is(err, itinerary.ErrDayNotFound):
			response.NotFound(w, r, "day not found in trip")
		default:
			response.InternalError(w, r, "failed to validate day")
		}
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}
