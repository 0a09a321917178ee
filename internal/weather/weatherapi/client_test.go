package weatherapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthguardian/healthguardian/internal/weather"
	"github.com/healthguardian/healthguardian/internal/weather/weatherapi"
)

func TestClient_GetCurrent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/current.json", r.URL.Path)
		assert.Equal(t, "****", r.URL.Query().Get("key"))
		assert.Contains(t, r.URL.Query().Get("q"), "52.37")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"location": {
				"name": "Amsterdam",
				"region": "North Holland",
				"country": "Netherlands",
				"lat": 52.37,
				"lon": 4.89
			},
			"current": {
				"temp_c": 18.5,
				"temp_f": 65.3,
				"condition": {"text": "Partly cloudy"},
				"humidity": 62,
				"uv": 4.0,
				"wind_mph": 9.2,
				"wind_kph": 14.8,
				"wind_dir": "SW",
				"feelslike_c": 17.8,
				"feelslike_f": 64.0
			}
		}`))
	}))
	defer server.Close()

	client := weatherapi.NewClient(weatherapi.ClientConfig{APIKey: "****", BaseURL: server.URL})

	snap, err := client.GetCurrent(context.Background(), 52.37, 4.89)
	require.NoError(t, err)

	assert.Equal(t, "Amsterdam", snap.LocationName)
	assert.Equal(t, "Netherlands", snap.Country)
	assert.Equal(t, 18.5, snap.TempC)
	assert.Equal(t, 65.3, snap.TempF)
	assert.Equal(t, "Partly cloudy", snap.Condition)
	assert.Equal(t, 62.0, snap.Humidity)
	assert.Equal(t, 4.0, snap.UVIndex)
	assert.Equal(t, 9.2, snap.WindMPH)
	assert.Equal(t, "SW", snap.WindDir)
	assert.Equal(t, 17.8, snap.FeelsLikeC)
	assert.False(t, snap.FetchedAt.IsZero())
}

func TestClient_GetCurrent_NoDataForLocation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := weatherapi.NewClient(weatherapi.ClientConfig{APIKey: "****", BaseURL: server.URL})

	_, err := client.GetCurrent(context.Background(), 0, 0)
	assert.ErrorIs(t, err, weather.ErrNoDataForLocation)
}

func TestClient_GetCurrent_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := weatherapi.NewClient(weatherapi.ClientConfig{APIKey: "****", BaseURL: server.URL})

	_, err := client.GetCurrent(context.Background(), 52.37, 4.89)
	assert.Error(t, err)
}
