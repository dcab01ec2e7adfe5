package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/roamplan/roamplan/internal/api/models"
	"github.com/roamplan/roamplan/internal/api/response"
	"github.com/roamplan/roamplan/internal/weather"
)

// WeatherHandler handles destination forecast endpoints.
type WeatherHandler struct {
	service *weather.Service
}

// NewWeatherHandler creates a new WeatherHandler.
func NewWeatherHandler(service *weather.Service) *WeatherHandler {
	return &WeatherHandler{service: service}
}

// GetForecast handles GET /v1/weather/forecast?lat=..&lon=..
func (h *WeatherHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		response.BadRequest(w, r, "lat and lon query parameters are required", nil)
		return
	}

	forecast, err := h.service.GetForecast(r.Context(), lat, lon)
	if err != nil {
		switch {
		case errors.Is(err, weather.ErrInvalidCoordinates):
			response.BadRequest(w, r, "coordinates out of range", nil)
		case errors.Is(err, weather.ErrProviderUnavailable):
			response.ServiceUnavailable(w, r, "weather provider unavailable")
		default:
			response.InternalError(w, r, "failed to fetch forecast")
		}
		return
	}

	response.JSON(w, r, http.StatusOK, toAPIForecast(forecast))
}

// toAPIForecast converts a domain forecast to its API representation.
func toAPIForecast(f *weather.Forecast) models.WeatherForecastResponse {
	days := make([]models.DailyForecast, 0, len(f.Daily))
	for _, d := range f.Daily {
		days = append(days, models.DailyForecast{
			Date:              models.DateOnly(d.Date),
			Condition:         models.WeatherCondition(d.Condition),
			TempMinC:          d.TempMinC,
			TempMaxC:          d.TempMaxC,
			PrecipProbability: int(d.PrecipProb * 100),
			WindSpeedKmh:      d.WindSpeed * 3.6,
			Summary:           d.Description,
		})
	}

	return models.WeatherForecastResponse{
		Lat:         f.Lat,
		Lon:         f.Lon,
		Days:        days,
		RetrievedAt: models.Timestamp(f.FetchedAt),
	}
}
