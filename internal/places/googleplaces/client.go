// Package googleplaces implements the place provider interface against the
// Google Places Text Search API.
package googleplaces

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/roamplan/roamplan/internal/places"
	"github.com/roamplan/roamplan/internal/provider/resilience"
)

const (
	// ProviderName identifies this place provider.
	ProviderName = "googleplaces"

	// DefaultBaseURL is the Google Places API base URL.
	DefaultBaseURL = "https://maps.googleapis.com/maps/api/place"

	// photoMaxWidth is the requested width for place photos.
	photoMaxWidth = 800
)

// ClientConfig holds configuration for the Google Places client.
type ClientConfig struct {
	// APIKey is the Google Maps Platform API key (required).
	APIKey string

	// BaseURL is the API base URL (optional, defaults to the Places API).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a Google Places API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new Google Places client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultConfig("googleplaces"))
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Search runs a free-text place search. The region, when set, is appended to
// the query so results stay near the trip destination.
func (c *Client) Search(ctx context.Context, query, region string) ([]places.Place, error) {
	text := query
	if region != "" {
		text = query + " in " + region
	}

	searchURL := fmt.Sprintf("%s/textsearch/json?query=%s&key=%s",
		c.baseURL, url.QueryEscape(text), c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, http.NoBody)
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

	var searchResp textSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if searchResp.Status != "OK" && searchResp.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places api status: %s", searchResp.Status)
	}

	return c.toPlaces(&searchResp), nil
}

// toPlaces converts a text search response to the domain model.
func (c *Client) toPlaces(resp *textSearchResponse) []places.Place {
	results := make([]places.Place, 0, len(resp.Results))

	for _, r := range resp.Results {
		place := places.Place{
			ID:          r.PlaceID,
			Name:        r.Name,
			Address:     r.FormattedAddress,
			Lat:         r.Geometry.Location.Lat,
			Lon:         r.Geometry.Location.Lng,
			Rating:      r.Rating,
			RatingCount: r.UserRatingsTotal,
			Categories:  r.Types,
		}

		if r.OpeningHours != nil {
			openNow := r.OpeningHours.OpenNow
			place.OpenNow = &openNow
		}

		if len(r.Photos) > 0 {
			place.PhotoURL = fmt.Sprintf("%s/photo?maxwidth=%d&photo_reference=%s&key=%s",
				c.baseURL, photoMaxWidth, url.QueryEscape(r.Photos[0].PhotoReference), c.apiKey)
		}

		results = append(results, place)
	}

	return results
}

// Google Places API response structures.

type textSearchResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID          string `json:"place_id"`
		Name             string `json:"name"`
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		Rating           float64  `json:"rating"`
		UserRatingsTotal int      `json:"user_ratings_total"`
		Types            []string `json:"types"`
		OpeningHours     *struct {
			OpenNow bool `json:"open_now"`
		} `json:"opening_hours"`
		Photos []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
	} `json:"results"`
}
