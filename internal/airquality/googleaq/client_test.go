package googleaq_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthguardian/healthguardian/internal/airquality/googleaq"
)

func TestClient_GetCurrentConditions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/currentConditions:lookup", r.URL.Path)
		assert.Equal(t, "****", r.URL.Query().Get("key"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var req map[string]any
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, true, req["universalAqi"])
		assert.Equal(t, "en", req["languageCode"])
		assert.Contains(t, req["extraComputations"], "LOCAL_AQI")
		assert.Contains(t, req["extraComputations"], "POLLUTANT_CONCENTRATION")

		loc, ok := req["location"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, 52.37, loc["latitude"])
		assert.Equal(t, 4.89, loc["longitude"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"dateTime": "2024-05-01T12:00:00Z",
			"regionCode": "nl",
			"indexes": [
				{
					"code": "uaqi",
					"displayName": "Universal AQI",
					"aqi": 71,
					"aqiDisplay": "71",
					"category": "Good air quality",
					"dominantPollutant": "o3",
					"color": {"red": 0.4627, "green": 0.7647, "blue": 0.2}
				},
				{
					"code": "nld_rivm",
					"displayName": "LKI (NL)",
					"aqi": 3,
					"aqiDisplay": "3",
					"category": "Slightly polluted",
					"dominantPollutant": "o3"
				}
			],
			"pollutants": [
				{
					"code": "pm25",
					"displayName": "PM2.5",
					"fullName": "Fine particulate matter",
					"concentration": {"value": 8.52, "units": "MICROGRAMS_PER_CUBIC_METER"}
				}
			],
			"healthRecommendations": {
				"generalPopulation": "Air quality is acceptable for most individuals."
			}
		}`))
	}))
	defer server.Close()

	client := googleaq.NewClient(googleaq.ClientConfig{APIKey: "****", BaseURL: server.URL})

	doc, err := client.GetCurrentConditions(context.Background(), 52.37, 4.89)
	require.NoError(t, err)

	assert.Equal(t, "nl", doc.RegionCode)
	require.Len(t, doc.Indexes, 2)
	assert.Equal(t, "uaqi", doc.Indexes[0].Code)
	assert.Equal(t, 71.0, doc.Indexes[0].AQI)
	require.NotNil(t, doc.Indexes[0].Color)
	assert.InDelta(t, 0.4627, doc.Indexes[0].Color.Red, 0.0001)
	assert.Equal(t, "nld_rivm", doc.Indexes[1].Code)
	assert.Nil(t, doc.Indexes[1].Color)

	require.Len(t, doc.Pollutants, 1)
	assert.Equal(t, "pm25", doc.Pollutants[0].Code)
	require.NotNil(t, doc.Pollutants[0].Concentration)
	assert.Equal(t, 8.52, *doc.Pollutants[0].Concentration.Value)

	assert.Contains(t, doc.HealthRecommendations, "generalPopulation")
}

func TestClient_GetCurrentConditions_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := googleaq.NewClient(googleaq.ClientConfig{APIKey: "bad", BaseURL: server.URL})

	_, err := client.GetCurrentConditions(context.Background(), 52.37, 4.89)
	assert.Error(t, err)
}
