// Package ambee provides the Ambee pollen client, usable as a drop-in
// alternative pollen provider.
package ambee

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthguardian/healthguardian/internal/pollen"
	"github.com/healthguardian/healthguardian/internal/provider/httpx"
)

const (
	// ProviderName identifies this pollen provider.
	ProviderName = "ambee"

	// DefaultBaseURL is the Ambee API base URL.
	DefaultBaseURL = "https://api.ambeedata.com"
)

// ClientConfig holds configuration for the Ambee client.
type ClientConfig struct {
	// APIKey is the Ambee API key (required), sent as the x-api-key header.
	APIKey string

	// BaseURL is the API base URL (optional).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	HTTPClient *httpx.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an Ambee pollen client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *httpx.Client
	logger     zerolog.Logger
}

// NewClient creates a new Ambee client.
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

// GetForecast fetches the latest pollen reading for a coordinate pair.
// Ambee's latest endpoint is a point-in-time reading, so the resulting
// document holds a single day regardless of the requested horizon.
// Returns ErrNoDataForRegion for locations outside provider coverage.
func (c *Client) GetForecast(ctx context.Context, lat, lon float64, _ int) (*pollen.Document, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lng", strconv.FormatFloat(lon, 'f', -1, 64))

	endpoint := fmt.Sprintf("%s/latest/pollen/by-lat-lng?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, pollen.ErrNoDataForRegion
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var latest latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&latest); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(latest.Data) == 0 {
		return nil, pollen.ErrNoDataForRegion
	}

	return latest.toDocument(), nil
}

// Ambee response structures.

type latestResponse struct {
	Message string       `json:"message"`
	Data    []pollenData `json:"data"`
}

type pollenData struct {
	Count struct {
		GrassPollen int `json:"grass_pollen"`
		TreePollen  int `json:"tree_pollen"`
		WeedPollen  int `json:"weed_pollen"`
	} `json:"Count"`
	Risk struct {
		GrassPollen string `json:"grass_pollen"`
		TreePollen  string `json:"tree_pollen"`
		WeedPollen  string `json:"weed_pollen"`
	} `json:"Risk"`
	UpdatedAt string `json:"updatedAt"`
	Time      int64  `json:"time"`
}

func (r *latestResponse) toDocument() *pollen.Document {
	reading := r.Data[0]

	when := time.Unix(reading.Time, 0).UTC()
	if reading.Time == 0 {
		when = time.Now().UTC()
	}

	day := pollen.DailyInfo{
		Date: pollen.Date{
			Year:  when.Year(),
			Month: int(when.Month()),
			Day:   when.Day(),
		},
		PollenType: []pollen.TypeInfo{
			pollenType("GRASS", "Grass", reading.Count.GrassPollen, reading.Risk.GrassPollen),
			pollenType("TREE", "Tree", reading.Count.TreePollen, reading.Risk.TreePollen),
			pollenType("WEED", "Weed", reading.Count.WeedPollen, reading.Risk.WeedPollen),
		},
	}

	return &pollen.Document{DailyInfo: []pollen.DailyInfo{day}}
}

// pollenType builds a type entry from a raw grain count and risk label.
// Ambee reports counts rather than an index, so the count is bucketed
// onto the 0-5 Universal Pollen Index scale.
func pollenType(code, name string, count int, risk string) pollen.TypeInfo {
	info := pollen.TypeInfo{
		Code:        code,
		DisplayName: name,
		InSeason:    count > 0,
	}
	if risk != "" {
		info.IndexInfo = &pollen.IndexInfo{
			Value:    countToIndex(count),
			Category: risk,
		}
	}
	return info
}

// countToIndex buckets a grains-per-cubic-metre count onto the 0-5
// index scale. Thresholds follow Ambee's published risk bands.
func countToIndex(count int) int {
	switch {
	case count <= 0:
		return 0
	case count < 30:
		return 1
	case count < 90:
		return 2
	case count < 180:
		return 3
	case count < 300:
		return 4
	default:
		return 5
	}
}
