package models

// WeatherCondition represents a coarse daily weather condition.
type WeatherCondition string

const (
	ConditionClear   WeatherCondition = "CLEAR"
	ConditionClouds  WeatherCondition = "CLOUDS"
	ConditionRain    WeatherCondition = "RAIN"
	ConditionStorm   WeatherCondition = "STORM"
	ConditionSnow    WeatherCondition = "SNOW"
	ConditionUnknown WeatherCondition = "UNKNOWN"
)

// DailyForecast represents one day of forecast weather.
type DailyForecast struct {
	Date              DateOnly         `json:"date"`
	Condition         WeatherCondition `json:"condition"`
	TempMinC          float64          `json:"tempMinC"`
	TempMaxC          float64          `json:"tempMaxC"`
	PrecipProbability int              `json:"precipProbability"`
	WindSpeedKmh      float64          `json:"windSpeedKmh"`
	Summary           string           `json:"summary,omitempty"`
}

// WeatherForecastResponse is the response for a forecast lookup.
type WeatherForecastResponse struct {
	Lat         float64         `json:"lat"`
	Lon         float64         `json:"lon"`
	Days        []DailyForecast `json:"days"`
	RetrievedAt Timestamp       `json:"retrievedAt"`
	Stale       bool            `json:"stale,omitempty"`
}
