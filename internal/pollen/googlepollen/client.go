// Package googlepollen provides the Google Pollen API client.
package googlepollen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/healthguardian/healthguardian/internal/pollen"
	"github.com/healthguardian/healthguardian/internal/provider/httpx"
)

const (
	// ProviderName identifies this pollen provider.
	ProviderName = "google-pollen"

	// DefaultBaseURL is the Google Pollen API base URL.
	DefaultBaseURL = "https://pollen.googleapis.com"
)

// ClientConfig holds configuration for the Google Pollen client.
type ClientConfig struct {
	// APIKey is the Google Maps Platform API key (required).
	APIKey string

	// BaseURL is the API base URL (optional).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	HTTPClient *httpx.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a Google Pollen API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *httpx.Client
	logger     zerolog.Logger
}

// NewClient creates a new Google Pollen client.
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

// GetForecast fetches the pollen forecast for a coordinate pair.
// Returns ErrNoDataForRegion for locations outside provider coverage.
func (c *Client) GetForecast(ctx context.Context, lat, lon float64, days int) (*pollen.Document, error) {
	days = pollen.ClampDays(days)

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("location.latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("location.longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("days", strconv.Itoa(days))
	params.Set("languageCode", "en")
	params.Set("plantsDescription", "1")

	endpoint := fmt.Sprintf("%s/v1/forecast:lookup?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

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

	var forecast forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return forecast.toDocument(), nil
}

// Google Pollen API response structures.

type forecastResponse struct {
	RegionCode string `json:"regionCode"`
	DailyInfo  []struct {
		Date struct {
			Year  int `json:"year"`
			Month int `json:"month"`
			Day   int `json:"day"`
		} `json:"date"`
		PollenTypeInfo []struct {
			Code        string `json:"code"`
			DisplayName string `json:"displayName"`
			InSeason    bool   `json:"inSeason"`
			IndexInfo   *struct {
				Value    int    `json:"value"`
				Category string `json:"category"`
				Color    *struct {
					Red   float64 `json:"red"`
					Green float64 `json:"green"`
					Blue  float64 `json:"blue"`
				} `json:"color"`
			} `json:"indexInfo"`
			HealthRecommendations []string `json:"healthRecommendations"`
		} `json:"pollenTypeInfo"`
	} `json:"dailyInfo"`
}

func (r *forecastResponse) toDocument() *pollen.Document {
	doc := &pollen.Document{RegionCode: r.RegionCode}

	for _, day := range r.DailyInfo {
		info := pollen.DailyInfo{
			Date: pollen.Date{
				Year:  day.Date.Year,
				Month: day.Date.Month,
				Day:   day.Date.Day,
			},
		}
		for _, t := range day.PollenTypeInfo {
			out := pollen.TypeInfo{
				Code:                  t.Code,
				DisplayName:           t.DisplayName,
				InSeason:              t.InSeason,
				HealthRecommendations: t.HealthRecommendations,
			}
			if t.IndexInfo != nil {
				idx := &pollen.IndexInfo{
					Value:    t.IndexInfo.Value,
					Category: t.IndexInfo.Category,
				}
				if t.IndexInfo.Color != nil {
					idx.Color = &pollen.ColorChannels{
						Red:   t.IndexInfo.Color.Red,
						Green: t.IndexInfo.Color.Green,
						Blue:  t.IndexInfo.Color.Blue,
					}
				}
				out.IndexInfo = idx
			}
			info.PollenType = append(info.PollenType, out)
		}
		doc.DailyInfo = append(doc.DailyInfo, info)
	}

	return doc
}
