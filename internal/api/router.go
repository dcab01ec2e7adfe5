// Package api provides the HTTP API for Roamplan.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/roamplan/roamplan/internal/api/handler"
	"github.com/roamplan/roamplan/internal/api/middleware"
	"github.com/roamplan/roamplan/internal/auth"
	"github.com/roamplan/roamplan/internal/flights"
	"github.com/roamplan/roamplan/internal/itinerary"
	"github.com/roamplan/roamplan/internal/places"
	"github.com/roamplan/roamplan/internal/weather"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version        string
	BuildTime      string
	Logger         zerolog.Logger
	ServiceName    string
	Metrics        *middleware.Metrics
	JWTService     *auth.JWTService
	TripService    *itinerary.Service
	WeatherService *weather.Service
	FlightService  *flights.Service
	PlaceService   *places.Service

	// Pool is used by the readiness check. May be nil when running
	// against the in-memory repository.
	Pool *pgxpool.Pool
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "roamplan-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Pool)
	scheduleHandler := handler.NewScheduleHandler()
	tripHandler := handler.NewTripHandler(cfg.TripService)
	weatherHandler := handler.NewWeatherHandler(cfg.WeatherService)
	flightHandler := handler.NewFlightHandler(cfg.FlightService)
	placeHandler := handler.NewPlaceHandler(cfg.PlaceService)

	// Create auth middleware
	authMiddleware := middleware.Auth(cfg.JWTService)

	// Create rate limit middleware for different endpoint categories
	validateRateLimit := middleware.RateLimitByIP(middleware.ValidateRateLimit) // 60 req/min
	providerRateLimit := middleware.RateLimitByIP(middleware.ProviderRateLimit) // 20 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			// Status endpoint requires authentication
			r.With(authMiddleware).Get("/status", opsHandler.SystemStatus)
		})

		// Ad-hoc schedule validation (public) - higher limit so editors
		// can re-validate on every change
		r.With(validateRateLimit).Post("/schedule:validate", scheduleHandler.Validate)

		// Provider-backed lookups (public) - strict rate limiting since
		// each miss costs an external API call
		r.Route("/weather", func(r chi.Router) {
			r.Use(providerRateLimit)
			r.Get("/forecast", weatherHandler.GetForecast)
		})
		r.Route("/flights", func(r chi.Router) {
			r.Use(providerRateLimit)
			r.Get("/search", flightHandler.Search)
		})
		r.Route("/places", func(r chi.Router) {
			r.Use(providerRateLimit)
			r.Get("/search", placeHandler.Search)
		})

		// Me endpoints (authenticated) - user-based rate limiting
		r.Route("/me", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RateLimitByUser(middleware.StandardRateLimit)) // 100 req/min per user

			r.Route("/trips", func(r chi.Router) {
				r.Get("/", tripHandler.ListTrips)
				r.Post("/", tripHandler.CreateTrip)
				r.Route("/{tripId}", func(r chi.Router) {
					r.Get("/", tripHandler.GetTrip)
					r.Put("/", tripHandler.UpdateTrip)
					r.Delete("/", tripHandler.DeleteTrip)
					r.Route("/days/{dayNumber}", func(r chi.Router) {
						r.Put("/", tripHandler.ReplaceDay)
						r.Get("/validation", tripHandler.ValidateDay)
					})
				})
			})
		})
	})

	return r
}
