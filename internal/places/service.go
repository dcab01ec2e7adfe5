package places

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Provider defines the interface for place search providers.
type Provider interface {
	// Search runs a free-text place search, optionally biased to a region.
	Search(ctx context.Context, query, region string) ([]Place, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the place service.
type ServiceConfig struct {
	// Provider is the place search provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long to cache search results (default: 1 hour).
	// Venue data is nearly static, so a long cache is fine.
	CacheTTL time.Duration
}

// Service provides place search with query caching.
type Service struct {
	provider Provider
	logger   zerolog.Logger
	cacheTTL time.Duration

	mu    sync.RWMutex
	cache map[string]*cachedSearch
}

type cachedSearch struct {
	places    []Place
	expiresAt time.Time
}

// NewService creates a new place service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 1 * time.Hour
	}

	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
		cacheTTL: cacheTTL,
		cache:    make(map[string]*cachedSearch),
	}
}

// Search returns places matching a free-text query.
func (s *Service) Search(ctx context.Context, query, region string) ([]Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	cacheKey := strings.ToLower(query) + "|" + strings.ToLower(region)

	s.mu.RLock()
	if cached, ok := s.cache[cacheKey]; ok && time.Now().Before(cached.expiresAt) {
		s.mu.RUnlock()
		return cached.places, nil
	}
	s.mu.RUnlock()

	s.logger.Debug().
		Str("query", query).
		Str("region", region).
		Str("provider", s.provider.Name()).
		Msg("searching places via provider")

	results, err := s.provider.Search(ctx, query, region)
	if err != nil {
		s.logger.Error().Err(err).
			Str("query", query).
			Msg("place search failed")
		return nil, ErrProviderUnavailable
	}

	s.mu.Lock()
	s.cache[cacheKey] = &cachedSearch{
		places:    results,
		expiresAt: time.Now().Add(s.cacheTTL),
	}
	s.mu.Unlock()

	return results, nil
}

// InvalidateCache clears all cached searches.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*cachedSearch)
}
