// Package weather provides destination weather forecasts with caching, so
// travelers can sanity-check outdoor day plans against expected conditions.
package weather

import (
	"errors"
	"time"
)

// Weather errors.
var (
	ErrProviderUnavailable = errors.New("weather provider unavailable")
	ErrInvalidCoordinates  = errors.New("invalid coordinates")
)

// Condition represents the general weather condition for a day.
type Condition string

const (
	ConditionClear   Condition = "CLEAR"
	ConditionClouds  Condition = "CLOUDS"
	ConditionRain    Condition = "RAIN"
	ConditionStorm   Condition = "STORM"
	ConditionSnow    Condition = "SNOW"
	ConditionUnknown Condition = "UNKNOWN"
)

// DailyForecast represents forecast weather for a single calendar day.
type DailyForecast struct {
	Date        time.Time
	Condition   Condition
	Description string

	// Temperatures in Celsius.
	TempMinC float64
	TempMaxC float64

	// PrecipProb is the probability of precipitation (0-1).
	PrecipProb float64

	// WindSpeed in m/s.
	WindSpeed float64
}

// Forecast represents the daily forecast for a location.
type Forecast struct {
	Lat   float64
	Lon   float64
	Daily []DailyForecast

	// When the forecast was fetched.
	FetchedAt time.Time
}

// OutdoorRisk flags days whose conditions argue against outdoor-heavy plans.
// Rain probability above the threshold or storm conditions count as risky.
func (f *Forecast) OutdoorRisk(date time.Time, precipThreshold float64) bool {
	for _, d := range f.Daily {
		if !sameDay(d.Date, date) {
			continue
		}
		return d.Condition == ConditionStorm || d.PrecipProb >= precipThreshold
	}
	return false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
