// Package googleaq provides the Google Air Quality API client.
package googleaq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/healthguardian/healthguardian/internal/airquality"
	"github.com/healthguardian/healthguardian/internal/provider/httpx"
)

const (
	// ProviderName identifies this air quality provider.
	ProviderName = "google-airquality"

	// DefaultBaseURL is the Google Air Quality API base URL.
	DefaultBaseURL = "https://airquality.googleapis.com"
)

// extraComputations requested on every lookup. LOCAL_AQI adds the
// national index alongside the universal one.
var extraComputations = []string{
	"DOMINANT_POLLUTANT_CONCENTRATION",
	"POLLUTANT_CONCENTRATION",
	"LOCAL_AQI",
	"POLLUTANT_ADDITIONAL_INFO",
}

// ClientConfig holds configuration for the Google Air Quality client.
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

// Client is a Google Air Quality API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *httpx.Client
	logger     zerolog.Logger
}

// NewClient creates a new Google Air Quality client.
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

// GetCurrentConditions fetches the current-conditions document for a
// coordinate pair.
func (c *Client) GetCurrentConditions(ctx context.Context, lat, lon float64) (*airquality.Document, error) {
	endpoint := fmt.Sprintf("%s/v1/currentConditions:lookup?key=%s",
		c.baseURL, url.QueryEscape(c.apiKey))

	body := lookupRequest{
		UniversalAQI: true,
		Location: latLng{
			Latitude:  lat,
			Longitude: lon,
		},
		ExtraComputations: extraComputations,
		LanguageCode:      "en",
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var doc lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return doc.toDocument(), nil
}

// Google Air Quality API request/response structures.

type lookupRequest struct {
	UniversalAQI      bool     `json:"universalAqi"`
	Location          latLng   `json:"location"`
	ExtraComputations []string `json:"extraComputations"`
	LanguageCode      string   `json:"languageCode"`
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type lookupResponse struct {
	DateTime   string `json:"dateTime"`
	RegionCode string `json:"regionCode"`
	Indexes    []struct {
		Code              string  `json:"code"`
		DisplayName       string  `json:"displayName"`
		AQI               float64 `json:"aqi"`
		AQIDisplay        string  `json:"aqiDisplay"`
		Category          string  `json:"category"`
		DominantPollutant string  `json:"dominantPollutant"`
		Color             *struct {
			Red   float64 `json:"red"`
			Green float64 `json:"green"`
			Blue  float64 `json:"blue"`
		} `json:"color"`
	} `json:"indexes"`
	Pollutants []struct {
		Code          string `json:"code"`
		DisplayName   string `json:"displayName"`
		FullName      string `json:"fullName"`
		Concentration *struct {
			Value *float64 `json:"value"`
			Units string   `json:"units"`
		} `json:"concentration"`
	} `json:"pollutants"`
	HealthRecommendations map[string]string `json:"healthRecommendations"`
}

func (r *lookupResponse) toDocument() *airquality.Document {
	doc := &airquality.Document{
		DateTime:              r.DateTime,
		RegionCode:            r.RegionCode,
		HealthRecommendations: r.HealthRecommendations,
	}

	for _, idx := range r.Indexes {
		out := airquality.Index{
			Code:              idx.Code,
			DisplayName:       idx.DisplayName,
			AQI:               idx.AQI,
			AQIDisplay:        idx.AQIDisplay,
			Category:          idx.Category,
			DominantPollutant: idx.DominantPollutant,
		}
		if idx.Color != nil {
			out.Color = &airquality.ColorChannels{
				Red:   idx.Color.Red,
				Green: idx.Color.Green,
				Blue:  idx.Color.Blue,
			}
		}
		doc.Indexes = append(doc.Indexes, out)
	}

	for _, p := range r.Pollutants {
		out := airquality.Pollutant{
			Code:        p.Code,
			DisplayName: p.DisplayName,
			FullName:    p.FullName,
		}
		if p.Concentration != nil {
			out.Concentration = &airquality.Concentration{
				Value: p.Concentration.Value,
				Units: p.Concentration.Units,
			}
		}
		doc.Pollutants = append(doc.Pollutants, out)
	}

	return doc
}
