// Package resilience wraps outbound HTTP calls to travel-data providers with
// a circuit breaker, per-request timeouts, and exponential-backoff retries.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"
)

// ErrCircuitOpen is returned while the provider's circuit is open.
var ErrCircuitOpen = errors.New("provider circuit open")

// Config holds tuning for one provider's client.
type Config struct {
	// Name identifies the provider in breaker state and errors.
	Name string

	// Timeout bounds each individual HTTP attempt. Default: 10s.
	Timeout time.Duration

	// MaxRetries is the number of retry attempts after the first try.
	// Default: 3.
	MaxRetries uint64

	// InitialBackoff is the first retry delay. Default: 100ms.
	InitialBackoff time.Duration

	// MaxBackoff caps the retry delay. Default: 5s.
	MaxBackoff time.Duration

	// BreakerTimeout is how long the circuit stays open before a probe
	// request is allowed. Default: 60s.
	BreakerTimeout time.Duration
}

// DefaultConfig returns the defaults used for provider clients.
func DefaultConfig(name string) Config {
	return Config{
		Name:           name,
		Timeout:        10 * time.Second,
		MaxRetries:     3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     5 * time.Second,
		BreakerTimeout: 60 * time.Second,
	}
}

// Client executes HTTP requests with breaker and retry protection. A 5xx
// response counts as a failure for both retries and the breaker; 4xx
// responses pass through untouched since retrying them cannot help.
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*http.Response]
	config     Config
}

// StatusError reports a server-side failure status from a provider.
type StatusError struct {
	Provider   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned %d %s", e.Provider, e.StatusCode, http.StatusText(e.StatusCode))
}

// NewClient creates a resilient HTTP client for one provider.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.InitialBackoff == 0 {
		cfg.InitialBackoff = 100 * time.Millisecond
	}
	if cfg.MaxBackoff == 0 {
		cfg.MaxBackoff = 5 * time.Second
	}
	if cfg.BreakerTimeout == 0 {
		cfg.BreakerTimeout = 60 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Trip on a 50% failure rate once there is enough signal.
			return counts.Requests >= 5 &&
				float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
	})

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    breaker,
		config:     cfg,
	}
}

// Do executes the request, retrying transient failures with exponential
// backoff. It returns ErrCircuitOpen immediately once the breaker opens.
// The caller owns the response body.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.config.InitialBackoff
	bo.MaxInterval = c.config.MaxBackoff
	bo.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, c.config.MaxRetries), ctx)

	var lastResp *http.Response

	attempt := func() error {
		resp, err := c.breaker.Execute(func() (*http.Response, error) { //nolint:bodyclose // ownership passes to the caller
			r, doErr := c.httpClient.Do(req.Clone(ctx))
			if doErr != nil {
				return nil, doErr
			}
			if r.StatusCode >= http.StatusInternalServerError {
				return r, &StatusError{Provider: c.config.Name, StatusCode: r.StatusCode}
			}
			return r, nil
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(fmt.Errorf("%s: %w", c.config.Name, ErrCircuitOpen))
			}
			if resp != nil {
				lastResp = resp
			}
			return err
		}

		lastResp = resp
		return nil
	}

	if err := backoff.Retry(attempt, policy); err != nil {
		// A 5xx that exhausted retries still hands the response back so
		// callers can inspect the status.
		if lastResp != nil {
			return lastResp, nil
		}
		return nil, err
	}

	return lastResp, nil
}

// Get is a convenience wrapper for context-scoped GET requests.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	return c.Do(req)
}

// BreakerState exposes the current circuit state for ops reporting.
func (c *Client) BreakerState() gobreaker.State {
	return c.breaker.State()
}
