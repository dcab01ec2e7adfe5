package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/roamplan/roamplan/internal/itinerary"
	"github.com/roamplan/roamplan/internal/weather"
)

// RefreshJob warms the weather forecast cache for trip destinations so the
// editor sees fresh forecasts without waiting on the provider.
type RefreshJob struct {
	config RefreshConfig
	logger zerolog.Logger

	weatherService *weather.Service

	// tripRepo is optional. When set, destinations of upcoming trips are
	// refreshed in addition to the static targets.
	tripRepo itinerary.Repository

	metrics *RefreshMetrics
}

// RefreshMetrics tracks refresh job statistics.
type RefreshMetrics struct {
	mu sync.RWMutex

	TotalRuns          int64
	SuccessfulRefresh  int64
	FailedRefreshes    int64
	UpcomingTripPoints int64

	LastRunAt       time.Time
	LastRunDuration time.Duration
	TotalDuration   time.Duration
}

// RefreshJobConfig holds configuration for creating a RefreshJob.
type RefreshJobConfig struct {
	Config         RefreshConfig
	Logger         zerolog.Logger
	WeatherService *weather.Service
	TripRepo       itinerary.Repository
}

// NewRefreshJob creates a new refresh job processor.
func NewRefreshJob(cfg RefreshJobConfig) *RefreshJob {
	config := cfg.Config
	if len(config.Targets) == 0 {
		config.Targets = DefaultRefreshTargets()
	}
	if config.Concurrency <= 0 {
		config.Concurrency = 3
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.LookaheadDays <= 0 {
		config.LookaheadDays = 14
	}

	return &RefreshJob{
		config:         config,
		logger:         cfg.Logger,
		weatherService: cfg.WeatherService,
		tripRepo:       cfg.TripRepo,
		metrics:        &RefreshMetrics{},
	}
}

// RefreshResult contains the result of a refresh operation.
type RefreshResult struct {
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
	TotalPoints int
	Successful  int
	Failed      int
	Errors      []RefreshError
}

// RefreshError represents an error during refresh.
type RefreshError struct {
	Point Point
	Error string
}

// Run executes the refresh job for all configured targets plus the
// destinations of upcoming trips.
func (j *RefreshJob) Run(ctx context.Context) *RefreshResult {
	startTime := time.Now()

	points := j.collectPoints(ctx)
	result := &RefreshResult{
		StartTime:   startTime,
		TotalPoints: len(points),
	}

	j.logger.Info().
		Int("total_points", result.TotalPoints).
		Int("concurrency", j.config.Concurrency).
		Msg("starting forecast refresh job")

	pointsChan := make(chan Point, len(points))
	resultsChan := make(chan pointResult, len(points))

	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.refreshWorker(ctx, pointsChan, resultsChan)
		}()
	}

	for _, p := range points {
		pointsChan <- p
	}
	close(pointsChan)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for pr := range resultsChan {
		if pr.success {
			result.Successful++
		} else {
			result.Failed++
			result.Errors = append(result.Errors, pr.errors...)
		}
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)

	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Msg("forecast refresh job completed")

	return result
}

// collectPoints merges static targets with the destinations of upcoming
// trips. Destinations the gazetteer cannot resolve are skipped; points that
// fall inside an already collected cache cell would be deduplicated by the
// weather service anyway, so only exact duplicates are dropped here.
func (j *RefreshJob) collectPoints(ctx context.Context) []Point {
	points := j.config.AllPoints()
	seen := make(map[Point]struct{}, len(points))
	for _, p := range points {
		seen[p] = struct{}{}
	}

	if j.tripRepo == nil {
		return points
	}

	trips, err := j.tripRepo.ListUpcoming(ctx, j.config.LookaheadDays)
	if err != nil {
		j.logger.Warn().Err(err).Msg("failed to list upcoming trips, refreshing static targets only")
		return points
	}

	var upcoming int64
	for _, trip := range trips {
		point, ok := ResolveDestination(trip.Destination)
		if !ok {
			j.logger.Debug().
				Str("destination", trip.Destination).
				Msg("no coordinates for trip destination")
			continue
		}
		if _, dup := seen[point]; dup {
			continue
		}
		seen[point] = struct{}{}
		points = append(points, point)
		upcoming++
	}

	j.metrics.mu.Lock()
	j.metrics.UpcomingTripPoints += upcoming
	j.metrics.mu.Unlock()

	return points
}

type pointResult struct {
	point   Point
	success bool
	errors  []RefreshError
}

func (j *RefreshJob) refreshWorker(ctx context.Context, points <-chan Point, results chan<- pointResult) {
	for point := range points {
		select {
		case <-ctx.Done():
			return
		default:
			results <- j.refreshPoint(ctx, point)
		}
	}
}

func (j *RefreshJob) refreshPoint(ctx context.Context, point Point) pointResult {
	result := pointResult{point: point, success: true}

	if j.weatherService == nil {
		return result
	}

	pointCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	if err := j.weatherService.WarmForecast(pointCtx, point.Lat, point.Lon); err != nil {
		result.success = false
		result.errors = append(result.errors, RefreshError{
			Point: point,
			Error: err.Error(),
		})
	}

	return result
}

func (j *RefreshJob) updateMetrics(result *RefreshResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRuns++
	j.metrics.SuccessfulRefresh += int64(result.Successful)
	j.metrics.FailedRefreshes += int64(result.Failed)
	j.metrics.LastRunAt = result.EndTime
	j.metrics.LastRunDuration = result.Duration
	j.metrics.TotalDuration += result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *RefreshJob) GetMetrics() RefreshMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return RefreshMetrics{
		TotalRuns:          j.metrics.TotalRuns,
		SuccessfulRefresh:  j.metrics.SuccessfulRefresh,
		FailedRefreshes:    j.metrics.FailedRefreshes,
		UpcomingTripPoints: j.metrics.UpcomingTripPoints,
		LastRunAt:          j.metrics.LastRunAt,
		LastRunDuration:    j.metrics.LastRunDuration,
		TotalDuration:      j.metrics.TotalDuration,
	}
}
