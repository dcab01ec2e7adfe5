package flights

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// iataRegex validates three-letter IATA location codes.
var iataRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// Provider defines the interface for flight offer providers.
type Provider interface {
	// SearchOffers fetches flight offers for a query.
	SearchOffers(ctx context.Context, query SearchQuery) (*Result, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the flight service.
type ServiceConfig struct {
	// Provider is the flight offer provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long to cache offers (default: 15 minutes).
	// Fares shift during the day, so the cache stays short.
	CacheTTL time.Duration

	// StaleIfErrorTTL allows serving stale offers on provider errors
	// (default: 2 hours).
	StaleIfErrorTTL time.Duration
}

// Service provides flight offers with per-route caching.
type Service struct {
	provider        Provider
	logger          zerolog.Logger
	cacheTTL        time.Duration
	staleIfErrorTTL time.Duration

	mu    sync.RWMutex
	cache map[string]*cachedResult
}

type cachedResult struct {
	result    *Result
	fetchedAt time.Time
	expiresAt time.Time
}

// NewService creates a new flight service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 15 * time.Minute
	}

	staleIfErrorTTL := cfg.StaleIfErrorTTL
	if staleIfErrorTTL == 0 {
		staleIfErrorTTL = 2 * time.Hour
	}

	return &Service{
		provider:        cfg.Provider,
		logger:          cfg.Logger,
		cacheTTL:        cacheTTL,
		staleIfErrorTTL: staleIfErrorTTL,
		cache:           make(map[string]*cachedResult),
	}
}

// Search returns flight offers for the query.
// Uses cached data if available and not expired.
func (s *Service) Search(ctx context.Context, query SearchQuery) (*Result, error) {
	query.Origin = strings.ToUpper(strings.TrimSpace(query.Origin))
	query.Destination = strings.ToUpper(strings.TrimSpace(query.Destination))
	if query.Adults <= 0 {
		query.Adults = 1
	}

	if err := validateQuery(query); err != nil {
		return nil, err
	}

	cacheKey := s.cacheKey(query)

	// Check cache
	s.mu.RLock()
	if cached, ok := s.cache[cacheKey]; ok && time.Now().Before(cached.expiresAt) {
		s.mu.RUnlock()
		return cached.result, nil
	}
	s.mu.RUnlock()

	return s.fetch(ctx, query, cacheKey)
}

// fetch fetches offers from the provider and updates the cache.
func (s *Service) fetch(ctx context.Context, query SearchQuery, cacheKey string) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check cache
	if cached, ok := s.cache[cacheKey]; ok && time.Now().Before(cached.expiresAt) {
		return cached.result, nil
	}

	s.logger.Debug().
		Str("origin", query.Origin).
		Str("destination", query.Destination).
		Str("date", query.DepartureDate).
		Str("provider", s.provider.Name()).
		Msg("fetching flight offers from provider")

	result, err := s.provider.SearchOffers(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).
			Str("origin", query.Origin).
			Str("destination", query.Destination).
			Msg("failed to fetch flight offers")

		// Check for stale data
		if cached, ok := s.cache[cacheKey]; ok {
			if time.Now().Before(cached.fetchedAt.Add(s.staleIfErrorTTL)) {
				s.logger.Warn().
					Time("fetched_at", cached.fetchedAt).
					Msg("serving stale flight offers due to provider error")
				return cached.result, nil
			}
		}

		return nil, ErrProviderUnavailable
	}

	now := time.Now()
	s.cache[cacheKey] = &cachedResult{
		result:    result,
		fetchedAt: now,
		expiresAt: now.Add(s.cacheTTL),
	}

	return result, nil
}

// cacheKey generates a cache key for a query.
func (s *Service) cacheKey(query SearchQuery) string {
	return fmt.Sprintf("%s:%s:%s:%d",
		query.Origin, query.Destination, query.DepartureDate, query.Adults)
}

// InvalidateCache clears all cached offers.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*cachedResult)
}

// validateQuery checks the query's route and date.
func validateQuery(query SearchQuery) error {
	if !iataRegex.MatchString(query.Origin) || !iataRegex.MatchString(query.Destination) {
		return ErrInvalidRoute
	}
	if query.Origin == query.Destination {
		return ErrInvalidRoute
	}
	if _, err := time.Parse(time.DateOnly, query.DepartureDate); err != nil {
		return fmt.Errorf("%w: bad departure date", ErrInvalidRoute)
	}
	return nil
}
