package openweathermap_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthguardian/healthguardian/internal/weather"
	"github.com/healthguardian/healthguardian/internal/weather/openweathermap"
)

func TestClient_GetCurrent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/3.0/onecall", r.URL.Path)
		assert.Equal(t, "****", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "52.37", r.URL.Query().Get("lat"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"lat": 52.37,
			"lon": 4.89,
			"current": {
				"temp": 20.0,
				"feels_like": 19.2,
				"humidity": 58,
				"uvi": 5.1,
				"wind_speed": 5.0,
				"wind_deg": 90,
				"weather": [{"main": "Clouds", "description": "scattered clouds"}]
			}
		}`))
	}))
	defer server.Close()

	client := openweathermap.NewClient(openweathermap.ClientConfig{APIKey: "****", BaseURL: server.URL})

	snap, err := client.GetCurrent(context.Background(), 52.37, 4.89)
	require.NoError(t, err)

	assert.Equal(t, 52.37, snap.Lat)
	assert.Equal(t, 20.0, snap.TempC)
	assert.Equal(t, 68.0, snap.TempF)
	assert.Equal(t, "scattered clouds", snap.Condition)
	assert.Equal(t, 58.0, snap.Humidity)
	assert.Equal(t, 5.1, snap.UVIndex)
	assert.InDelta(t, 18.0, snap.WindKPH, 0.001)
	assert.InDelta(t, 11.18, snap.WindMPH, 0.01)
	assert.Equal(t, "E", snap.WindDir)
	assert.False(t, snap.FetchedAt.IsZero())
}

func TestClient_GetCurrent_NoWeatherBlock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"lat": 52.37, "lon": 4.89, "current": {"temp": 10.0, "weather": []}}`))
	}))
	defer server.Close()

	client := openweathermap.NewClient(openweathermap.ClientConfig{APIKey: "****", BaseURL: server.URL})

	snap, err := client.GetCurrent(context.Background(), 52.37, 4.89)
	require.NoError(t, err)
	assert.Empty(t, snap.Condition)
}

func TestClient_GetCurrent_NoDataForLocation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := openweathermap.NewClient(openweathermap.ClientConfig{APIKey: "****", BaseURL: server.URL})

	_, err := client.GetCurrent(context.Background(), 0, 0)
	assert.ErrorIs(t, err, weather.ErrNoDataForLocation)
}

func TestClient_GetCurrent_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := openweathermap.NewClient(openweathermap.ClientConfig{APIKey: "****", BaseURL: server.URL})

	_, err := client.GetCurrent(context.Background(), 52.37, 4.89)
	assert.Error(t, err)
}

func TestDegreesToCompass(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"lat": 0, "lon": 0, "current": {"temp": 10, "wind_deg": ` + r.URL.Query().Get("lat") + `}}`))
	}))
	defer server.Close()

	client := openweathermap.NewClient(openweathermap.ClientConfig{APIKey: "****", BaseURL: server.URL})

	// The fake server echoes the lat query parameter back as wind_deg.
	cases := map[float64]string{
		0:   "N",
		45:  "NE",
		90:  "E",
		180: "S",
		270: "W",
		350: "N",
	}
	for deg, want := range cases {
		snap, err := client.GetCurrent(context.Background(), deg, 0)
		require.NoError(t, err)
		assert.Equal(t, want, snap.WindDir, "bearing %.0f", deg)
	}
}
