// Package openweathermap provides the OpenWeatherMap current-conditions
// client, usable as a drop-in alternative weather provider.
package openweathermap

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthguardian/healthguardian/internal/provider/httpx"
	"github.com/healthguardian/healthguardian/internal/weather"
)

const (
	// ProviderName identifies this weather provider.
	ProviderName = "openweathermap"

	// DefaultBaseURL is the OpenWeatherMap API base URL.
	DefaultBaseURL = "https://api.openweathermap.org"
)

// ClientConfig holds configuration for the OpenWeatherMap client.
type ClientConfig struct {
	// APIKey is the OpenWeatherMap API key (required). The key must have
	// One Call 3.0 access for UV index data.
	APIKey string

	// BaseURL is the API base URL (optional).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	HTTPClient *httpx.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an OpenWeatherMap client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *httpx.Client
	logger     zerolog.Logger
}

// NewClient creates a new OpenWeatherMap client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = httpx.NewClient(httpx.ClientConfig{Name: ProviderName})
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// GetCurrent fetches current weather conditions for a coordinate pair
// via the One Call 3.0 endpoint. OpenWeatherMap does not echo place
// names here, so the snapshot carries coordinates only.
func (c *Client) GetCurrent(ctx context.Context, lat, lon float64) (*weather.Snapshot, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")
	params.Set("exclude", "minutely,hourly,daily,alerts")

	endpoint := fmt.Sprintf("%s/data/3.0/onecall?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound {
		return nil, weather.ErrNoDataForLocation
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var oneCall oneCallResponse
	if err := json.NewDecoder(resp.Body).Decode(&oneCall); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return oneCall.toSnapshot(), nil
}

// OpenWeatherMap response structures.

type oneCallResponse struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Current struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
		UVI       float64 `json:"uvi"`
		WindSpeed float64 `json:"wind_speed"` // metres per second
		WindDeg   float64 `json:"wind_deg"`
		Weather   []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"current"`
}

func (r *oneCallResponse) toSnapshot() *weather.Snapshot {
	condition := ""
	if len(r.Current.Weather) > 0 {
		condition = r.Current.Weather[0].Description
	}

	return &weather.Snapshot{
		Lat:        r.Lat,
		Lon:        r.Lon,
		TempC:      r.Current.Temp,
		TempF:      celsiusToFahrenheit(r.Current.Temp),
		FeelsLikeC: r.Current.FeelsLike,
		FeelsLikeF: celsiusToFahrenheit(r.Current.FeelsLike),
		Condition:  condition,
		Humidity:   r.Current.Humidity,
		UVIndex:    r.Current.UVI,
		WindKPH:    r.Current.WindSpeed * 3.6,
		WindMPH:    r.Current.WindSpeed * 2.236936,
		WindDir:    degreesToCompass(r.Current.WindDeg),
		FetchedAt:  time.Now(),
	}
}

func celsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

var compassPoints = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// degreesToCompass converts a wind bearing to a 16-point compass label.
func degreesToCompass(deg float64) string {
	idx := int((deg+11.25)/22.5) % len(compassPoints)
	if idx < 0 {
		idx += len(compassPoints)
	}
	return compassPoints[idx]
}
