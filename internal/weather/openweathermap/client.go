// Package openweathermap implements the weather provider interface against
// the OpenWeatherMap OneCall API.
package openweathermap

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/roamplan/roamplan/internal/provider/resilience"
	"github.com/roamplan/roamplan/internal/weather"
)

const (
	// ProviderName identifies this weather provider.
	ProviderName = "openweathermap"

	// DefaultOneCallURL is the OpenWeatherMap OneCall API 3.0 base URL.
	DefaultOneCallURL = "https://api.openweathermap.org/data/3.0/onecall"
)

// ClientConfig holds configuration for the OpenWeatherMap client.
type ClientConfig struct {
	// APIKey is the OpenWeatherMap API key (required).
	APIKey string

	// OneCallURL is the OneCall API URL (optional, defaults to OneCall 3.0).
	OneCallURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an OpenWeatherMap API client.
type Client struct {
	apiKey     string
	oneCallURL string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new OpenWeatherMap client.
func NewClient(cfg ClientConfig) *Client {
	oneCallURL := cfg.OneCallURL
	if oneCallURL == "" {
		oneCallURL = DefaultOneCallURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultConfig("openweathermap"))
	}

	return &Client{
		apiKey:     cfg.APIKey,
		oneCallURL: oneCallURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// GetForecast fetches the daily forecast for a location.
func (c *Client) GetForecast(ctx context.Context, lat, lon float64) (*weather.Forecast, error) {
	url := fmt.Sprintf("%s?lat=%.6f&lon=%.6f&appid=%s&units=metric&exclude=minutely,hourly,current,alerts",
		c.oneCallURL, lat, lon, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var owmResp oneCallResponse
	if err := json.NewDecoder(resp.Body).Decode(&owmResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return c.toForecast(&owmResp), nil
}

// toForecast converts OpenWeatherMap OneCall response to domain model.
func (c *Client) toForecast(resp *oneCallResponse) *weather.Forecast {
	forecast := &weather.Forecast{
		Lat:       resp.Lat,
		Lon:       resp.Lon,
		Daily:     make([]weather.DailyForecast, 0, len(resp.Daily)),
		FetchedAt: time.Now(),
	}

	for _, d := range resp.Daily {
		daily := weather.DailyForecast{
			Date:       time.Unix(d.Dt, 0),
			TempMinC:   d.Temp.Min,
			TempMaxC:   d.Temp.Max,
			PrecipProb: d.Pop,
			WindSpeed:  d.WindSpeed,
		}

		if len(d.Weather) > 0 {
			daily.Condition = mapCondition(d.Weather[0].Main)
			daily.Description = d.Weather[0].Description
		} else {
			daily.Condition = weather.ConditionUnknown
		}

		forecast.Daily = append(forecast.Daily, daily)
	}

	return forecast
}

// mapCondition maps OpenWeatherMap condition to domain condition.
func mapCondition(owmCondition string) weather.Condition {
	switch owmCondition {
	case "Clear":
		return weather.ConditionClear
	case "Clouds", "Mist", "Fog", "Haze":
		return weather.ConditionClouds
	case "Rain", "Drizzle":
		return weather.ConditionRain
	case "Thunderstorm", "Squall", "Tornado":
		return weather.ConditionStorm
	case "Snow":
		return weather.ConditionSnow
	default:
		return weather.ConditionUnknown
	}
}

// OpenWeatherMap API response structures.

type oneCallResponse struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Daily []struct {
		Dt   int64 `json:"dt"`
		Temp struct {
			Min float64 `json:"min"`
			Max float64 `json:"max"`
		} `json:"temp"`
		WindSpeed float64 `json:"wind_speed"`
		Pop       float64 `json:"pop"` // Probability of precipitation
		Weather   []struct {
			ID          int    `json:"id"`
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"daily"`
}
