// Package weatherapi provides the WeatherAPI.com geocoding and IP lookup
// client used by the location resolver.
package weatherapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/healthguardian/healthguardian/internal/location"
	"github.com/healthguardian/healthguardian/internal/provider/httpx"
)

const (
	// ProviderName identifies this location provider. The weather client
	// talks to the same upstream; distinct names keep their logs and
	// metrics apart.
	ProviderName = "weatherapi-location"

	// DefaultBaseURL is the WeatherAPI.com base URL.
	DefaultBaseURL = "https://api.weatherapi.com/v1"
)

// ClientConfig holds configuration for the WeatherAPI location client.
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

// Client is a WeatherAPI.com client for location resolution.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *httpx.Client
	logger     zerolog.Logger
}

// NewClient creates a new WeatherAPI location client.
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

// Search performs a forward-geocoding lookup for a free-text query.
// Matches are returned in the provider's best-first order.
func (c *Client) Search(ctx context.Context, query string) ([]location.Location, error) {
	endpoint := fmt.Sprintf("%s/search.json?key=%s&q=%s",
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

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var matches []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	locations := make([]location.Location, 0, len(matches))
	for _, m := range matches {
		locations = append(locations, location.Location{
			Name:    m.Name,
			Region:  m.Region,
			Country: m.Country,
			Lat:     m.Lat,
			Lon:     m.Lon,
		})
	}

	return locations, nil
}

// LookupIP resolves an IP address to a location.
func (c *Client) LookupIP(ctx context.Context, ip string) (*location.Location, error) {
	endpoint := fmt.Sprintf("%s/ip.json?key=%s&q=%s",
		c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(ip))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var ipResp ipLookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&ipResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &location.Location{
		Name:    ipResp.City,
		Region:  ipResp.Region,
		Country: ipResp.CountryName,
		Lat:     ipResp.Lat,
		Lon:     ipResp.Lon,
	}, nil
}

// WeatherAPI.com response structures.

type searchResult struct {
	Name    string  `json:"name"`
	Region  string  `json:"region"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

type ipLookupResponse struct {
	IP          string  `json:"ip"`
	City        string  `json:"city"`
	Region      string  `json:"region"`
	CountryName string  `json:"country_name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}
