// Package amadeus implements the flight provider interface against the
// Amadeus Flight Offers Search API.
package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/roamplan/roamplan/internal/flights"
	"github.com/roamplan/roamplan/internal/provider/resilience"
)

const (
	// ProviderName identifies this flight provider.
	ProviderName = "amadeus"

	// DefaultBaseURL is the Amadeus production API base URL.
	DefaultBaseURL = "https://api.amadeus.com"

	// TestBaseURL is the Amadeus free test environment base URL.
	TestBaseURL = "https://test.api.amadeus.com"

	// tokenExpirySlack is subtracted from the token lifetime so a token is
	// refreshed before the provider rejects it.
	tokenExpirySlack = 30 * time.Second

	// maxOffers caps how many offers one search returns.
	maxOffers = 10
)

// ClientConfig holds configuration for the Amadeus client.
type ClientConfig struct {
	// ClientID is the Amadeus API client ID (required).
	ClientID string

	// ClientSecret is the Amadeus API client secret (required).
	ClientSecret string

	// BaseURL is the API base URL (optional, defaults to production).
	BaseURL string

	// Currency for offer prices (optional, defaults to USD).
	Currency string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an Amadeus API client. Tokens are obtained with the OAuth2
// client-credentials grant and refreshed on expiry.
type Client struct {
	clientID     string
	clientSecret string
	baseURL      string
	currency     string
	httpClient   *resilience.Client
	logger       zerolog.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a new Amadeus client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	currency := cfg.Currency
	if currency == "" {
		currency = "USD"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultConfig("amadeus"))
	}

	return &Client{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		baseURL:      baseURL,
		currency:     currency,
		httpClient:   httpClient,
		logger:       cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// SearchOffers fetches flight offers for a query.
func (c *Client) SearchOffers(ctx context.Context, query flights.SearchQuery) (*flights.Result, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, fmt.Errorf("authenticating: %w", err)
	}

	searchURL := fmt.Sprintf(
		"%s/v2/shopping/flight-offers?originLocationCode=%s&destinationLocationCode=%s"+
			"&departureDate=%s&adults=%d&max=%d&currencyCode=%s",
		c.baseURL,
		url.QueryEscape(query.Origin),
		url.QueryEscape(query.Destination),
		url.QueryEscape(query.DepartureDate),
		query.Adults,
		maxOffers,
		c.currency,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var offersResp offersResponse
	if err := json.NewDecoder(resp.Body).Decode(&offersResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return c.toResult(query, &offersResp), nil
}

// token returns a valid access token, refreshing it if expired.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/security/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request failed with status %d", resp.StatusCode)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("decoding token response: %w", err)
	}

	c.accessToken = tokenResp.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn)*time.Second - tokenExpirySlack)

	c.logger.Debug().
		Time("expiry", c.tokenExpiry).
		Msg("refreshed amadeus access token")

	return c.accessToken, nil
}

// toResult converts an Amadeus offers response to the domain model.
func (c *Client) toResult(query flights.SearchQuery, resp *offersResponse) *flights.Result {
	result := &flights.Result{
		Offers:    make([]flights.Offer, 0, len(resp.Data)),
		FetchedAt: time.Now(),
	}

	for _, item := range resp.Data {
		if len(item.Itineraries) == 0 {
			continue
		}
		itinerary := item.Itineraries[0]

		offer := flights.Offer{
			ID:              item.ID,
			Origin:          query.Origin,
			Destination:     query.Destination,
			DurationMinutes: parseISODuration(itinerary.Duration),
			Stops:           maxInt(0, len(itinerary.Segments)-1),
			PriceAmount:     item.Price.GrandTotal,
			PriceCurrency:   item.Price.Currency,
			Segments:        make([]flights.Segment, 0, len(itinerary.Segments)),
		}

		for _, seg := range itinerary.Segments {
			departureAt, _ := time.Parse("2006-01-02T15:04:05", seg.Departure.At)
			arrivalAt, _ := time.Parse("2006-01-02T15:04:05", seg.Arrival.At)

			offer.Segments = append(offer.Segments, flights.Segment{
				CarrierCode:     seg.CarrierCode,
				FlightNumber:    seg.CarrierCode + seg.Number,
				Origin:          seg.Departure.IataCode,
				Destination:     seg.Arrival.IataCode,
				DepartureAt:     departureAt,
				ArrivalAt:       arrivalAt,
				DurationMinutes: parseISODuration(seg.Duration),
			})
		}

		result.Offers = append(result.Offers, offer)
	}

	return result
}

// parseISODuration converts an ISO 8601 duration such as PT5H30M to minutes.
func parseISODuration(iso string) int {
	iso = strings.TrimPrefix(iso, "PT")
	minutes := 0

	if idx := strings.Index(iso, "H"); idx >= 0 {
		if hours, err := strconv.Atoi(iso[:idx]); err == nil {
			minutes += hours * 60
		}
		iso = iso[idx+1:]
	}
	if idx := strings.Index(iso, "M"); idx >= 0 {
		if mins, err := strconv.Atoi(iso[:idx]); err == nil {
			minutes += mins
		}
	}
	return minutes
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Amadeus API response structures.

type offersResponse struct {
	Data []struct {
		ID    string `json:"id"`
		Price struct {
			GrandTotal string `json:"grandTotal"`
			Currency   string `json:"currency"`
		} `json:"price"`
		Itineraries []struct {
			Duration string `json:"duration"`
			Segments []struct {
				Departure struct {
					IataCode string `json:"iataCode"`
					At       string `json:"at"`
				} `json:"departure"`
				Arrival struct {
					IataCode string `json:"iataCode"`
					At       string `json:"at"`
				} `json:"arrival"`
				CarrierCode string `json:"carrierCode"`
				Number      string `json:"number"`
				Duration    string `json:"duration"`
			} `json:"segments"`
		} `json:"itineraries"`
	} `json:"data"`
}
