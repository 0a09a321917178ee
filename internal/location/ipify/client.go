// Package ipify provides a client for the ipify public IP lookup service.
package ipify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/healthguardian/healthguardian/internal/provider/httpx"
)

const (
	// ProviderName identifies this IP provider.
	ProviderName = "ipify"

	// DefaultBaseURL is the ipify API base URL.
	DefaultBaseURL = "https://api.ipify.org"
)

// ClientConfig holds configuration for the ipify client.
type ClientConfig struct {
	// BaseURL is the API base URL (optional, defaults to ipify).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	HTTPClient *httpx.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an ipify API client.
type Client struct {
	baseURL    string
	httpClient *httpx.Client
	logger     zerolog.Logger
}

// NewClient creates a new ipify client.
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
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// GetPublicIP returns the public IP address of this host.
func (c *Client) GetPublicIP(ctx context.Context) (string, error) {
	url := c.baseURL + "/?format=json"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var ipifyResp ipResponse
	if err := json.NewDecoder(resp.Body).Decode(&ipifyResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if ipifyResp.IP == "" {
		return "", fmt.Errorf("empty IP in response")
	}

	return ipifyResp.IP, nil
}

type ipResponse struct {
	IP string `json:"ip"`
}
