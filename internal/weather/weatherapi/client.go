// Package weatherapi provides the WeatherAPI.com current-conditions client.
package weatherapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthguardian/healthguardian/internal/provider/httpx"
	"github.com/healthguardian/healthguardian/internal/weather"
)

const (
	// ProviderName identifies this weather provider.
	ProviderName = "weatherapi"

	// DefaultBaseURL is the WeatherAPI.com base URL.
	DefaultBaseURL = "https://api.weatherapi.com/v1"
)

// ClientConfig holds configuration for the WeatherAPI client.
type ClientConfig struct {
	// APIKey is the WeatherAPI.com API key (required).
	APIKey string

	// BaseURL is the API base URL (optional, defaults to WeatherAPI.com).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	HTTPClient *httpx.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a WeatherAPI.com current-conditions client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *httpx.Client
	logger     zerolog.Logger
}

// NewClient creates a new WeatherAPI client.
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

// GetCurrent fetches current weather conditions for a coordinate pair.
func (c *Client) GetCurrent(ctx context.Context, lat, lon float64) (*weather.Snapshot, error) {
	query := fmt.Sprintf("%f,%f", lat, lon)
	endpoint := fmt.Sprintf("%s/current.json?key=%s&q=%s",
		c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		return nil, weather.ErrNoDataForLocation
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var current currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&current); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return current.toSnapshot(), nil
}

// WeatherAPI.com response structures.

type currentResponse struct {
	Location struct {
		Name    string  `json:"name"`
		Region  string  `json:"region"`
		Country string  `json:"country"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	} `json:"location"`
	Current struct {
		TempC     float64 `json:"temp_c"`
		TempF     float64 `json:"temp_f"`
		Condition struct {
			Text string `json:"text"`
		} `json:"condition"`
		Humidity   float64 `json:"humidity"`
		UV         float64 `json:"uv"`
		WindMPH    float64 `json:"wind_mph"`
		WindKPH    float64 `json:"wind_kph"`
		WindDir    string  `json:"wind_dir"`
		FeelsLikeC float64 `json:"feelslike_c"`
		FeelsLikeF float64 `json:"feelslike_f"`
	} `json:"current"`
}

func (r *currentResponse) toSnapshot() *weather.Snapshot {
	return &weather.Snapshot{
		LocationName: r.Location.Name,
		Region:       r.Location.Region,
		Country:      r.Location.Country,
		Lat:          r.Location.Lat,
		Lon:          r.Location.Lon,
		TempC:        r.Current.TempC,
		TempF:        r.Current.TempF,
		FeelsLikeC:   r.Current.FeelsLikeC,
		FeelsLikeF:   r.Current.FeelsLikeF,
		Condition:    r.Current.Condition.Text,
		Humidity:     r.Current.Humidity,
		UVIndex:      r.Current.UV,
		WindMPH:      r.Current.WindMPH,
		WindKPH:      r.Current.WindKPH,
		WindDir:      r.Current.WindDir,
		FetchedAt:    time.Now(),
	}
}
