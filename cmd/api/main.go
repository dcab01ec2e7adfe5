// Package main provides the entrypoint for the Roamplan API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/roamplan/roamplan/internal/api"
	"github.com/roamplan/roamplan/internal/api/middleware"
	"github.com/roamplan/roamplan/internal/auth"
	"github.com/roamplan/roamplan/internal/database"
	"github.com/roamplan/roamplan/internal/flights"
	"github.com/roamplan/roamplan/internal/flights/amadeus"
	"github.com/roamplan/roamplan/internal/itinerary"
	"github.com/roamplan/roamplan/internal/places"
	"github.com/roamplan/roamplan/internal/places/googleplaces"
	"github.com/roamplan/roamplan/internal/telemetry"
	"github.com/roamplan/roamplan/internal/weather"
	"github.com/roamplan/roamplan/internal/weather/openweathermap"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "roamplan-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting Roamplan API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Connect to database. DB_DISABLED=true runs against the in-memory
	// repository for local development.
	var pool *pgxpool.Pool
	var tripRepo itinerary.Repository

	if os.Getenv("DB_DISABLED") == "true" {
		tripRepo = itinerary.NewInMemoryRepository()
		log.Warn().Msg("database disabled, trips will not survive restarts")
	} else {
		dbConfig := database.ConfigFromEnv()
		pool, err = database.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")

		tripRepo = itinerary.NewPostgresRepository(pool)
	}

	// Initialize JWT service (get signing key from environment)
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		jwtSigningKey = "local-dev-signing-key-change-in-production"
		log.Warn().Msg("using default JWT signing key - not secure for production")
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SigningKey: jwtSigningKey,
		Issuer:     os.Getenv("JWT_ISSUER"),
		Audience:   os.Getenv("JWT_AUDIENCE"),
	})

	// Initialize trip service
	tripService := itinerary.NewService(tripRepo)
	log.Info().Msg("trip service initialized")

	// Initialize weather service
	weatherService := weather.NewService(weather.ServiceConfig{
		Provider: openweathermap.NewClient(openweathermap.ClientConfig{
			APIKey: os.Getenv("OPENWEATHERMAP_API_KEY"),
			Logger: log,
		}),
		Logger: log,
	})
	log.Info().Msg("weather service initialized")

	// Initialize flight service
	flightService := flights.NewService(flights.ServiceConfig{
		Provider: amadeus.NewClient(amadeus.ClientConfig{
			ClientID:     os.Getenv("AMADEUS_CLIENT_ID"),
			ClientSecret: os.Getenv("AMADEUS_CLIENT_SECRET"),
			BaseURL:      os.Getenv("AMADEUS_BASE_URL"),
			Currency:     os.Getenv("AMADEUS_CURRENCY"),
			Logger:       log,
		}),
		Logger: log,
	})
	log.Info().Msg("flight service initialized")

	// Initialize place service
	placeService := places.NewService(places.ServiceConfig{
		Provider: googleplaces.NewClient(googleplaces.ClientConfig{
			APIKey: os.Getenv("GOOGLE_PLACES_API_KEY"),
			Logger: log,
		}),
		Logger: log,
	})
	log.Info().Msg("place service initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:        Version,
		BuildTime:      BuildTime,
		Logger:         log,
		ServiceName:    serviceName,
		Metrics:        metrics,
		JWTService:     jwtService,
		TripService:    tripService,
		WeatherService: weatherService,
		FlightService:  flightService,
		PlaceService:   placeService,
		Pool:           pool,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
