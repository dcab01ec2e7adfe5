package openweathermap_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamplan/roamplan/internal/provider/resilience"
	"github.com/roamplan/roamplan/internal/weather"
	"github.com/roamplan/roamplan/internal/weather/openweathermap"
)

func TestClient_GetForecast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("lat"), "14.599")
		assert.Contains(t, r.URL.Query().Get("lon"), "120.984")
		assert.Equal(t, "****", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Contains(t, r.URL.Query().Get("exclude"), "hourly")

		response := map[string]interface{}{
			"lat": 14.599,
			"lon": 120.984,
			"daily": []map[string]interface{}{
				{
					"dt": time.Now().Unix(),
					"temp": map[string]float64{
						"min": 24.0,
						"max": 32.5,
					},
					"wind_speed": 3.4,
					"pop":        0.65,
					"weather": []map[string]interface{}{
						{
							"id":          500,
							"main":        "Rain",
							"description": "light rain",
						},
					},
				},
				{
					"dt": time.Now().Add(24 * time.Hour).Unix(),
					"temp": map[string]float64{
						"min": 25.0,
						"max": 33.0,
					},
					"wind_speed": 2.1,
					"pop":        0.1,
					"weather": []map[string]interface{}{
						{
							"id":          800,
							"main":        "Clear",
							"description": "clear sky",
						},
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := openweathermap.NewClient(openweathermap.ClientConfig{
		APIKey:     "****",
		OneCallURL: server.URL,
		HTTPClient: resilience.NewClient(resilience.DefaultConfig("test")),
	})

	forecast, err := client.GetForecast(context.Background(), 14.599, 120.984)
	require.NoError(t, err)
	require.NotNil(t, forecast)

	assert.Equal(t, 14.599, forecast.Lat)
	assert.Equal(t, 120.984, forecast.Lon)
	require.Len(t, forecast.Daily, 2)

	assert.Equal(t, weather.ConditionRain, forecast.Daily[0].Condition)
	assert.Equal(t, "light rain", forecast.Daily[0].Description)
	assert.Equal(t, 24.0, forecast.Daily[0].TempMinC)
	assert.Equal(t, 32.5, forecast.Daily[0].TempMaxC)
	assert.Equal(t, 0.65, forecast.Daily[0].PrecipProb)
	assert.Equal(t, 3.4, forecast.Daily[0].WindSpeed)

	assert.Equal(t, weather.ConditionClear, forecast.Daily[1].Condition)
}

func TestClient_GetForecast_AllConditions(t *testing.T) {
	conditions := []struct {
		owmMain  string
		expected weather.Condition
	}{
		{"Clear", weather.ConditionClear},
		{"Clouds", weather.ConditionClouds},
		{"Mist", weather.ConditionClouds},
		{"Rain", weather.ConditionRain},
		{"Drizzle", weather.ConditionRain},
		{"Thunderstorm", weather.ConditionStorm},
		{"Snow", weather.ConditionSnow},
		{"Alien", weather.ConditionUnknown},
	}

	for _, tc := range conditions {
		t.Run(tc.owmMain, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				response := map[string]interface{}{
					"lat": 1.0,
					"lon": 1.0,
					"daily": []map[string]interface{}{
						{
							"dt":   time.Now().Unix(),
							"temp": map[string]float64{"min": 10, "max": 20},
							"weather": []map[string]interface{}{
								{"main": tc.owmMain},
							},
						},
					},
				}
				json.NewEncoder(w).Encode(response)
			}))
			defer server.Close()

			client := openweathermap.NewClient(openweathermap.ClientConfig{
				APIKey:     "****",
				OneCallURL: server.URL,
				HTTPClient: resilience.NewClient(resilience.DefaultConfig("test")),
			})

			forecast, err := client.GetForecast(context.Background(), 1.0, 1.0)
			require.NoError(t, err)
			require.Len(t, forecast.Daily, 1)
			assert.Equal(t, tc.expected, forecast.Daily[0].Condition)
		})
	}
}

func TestClient_GetForecast_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := openweathermap.NewClient(openweathermap.ClientConfig{
		APIKey:     "bad-key",
		OneCallURL: server.URL,
		HTTPClient: resilience.NewClient(resilience.DefaultConfig("test")),
	})

	_, err := client.GetForecast(context.Background(), 1.0, 1.0)
	require.Error(t, err)
}
