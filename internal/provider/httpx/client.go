// Package httpx provides the shared HTTP client used by provider integrations.
//
// Provider calls are single-shot: a failed fetch is terminal for the
// submission that issued it, so the client bounds each request with a timeout
// and does not retry.
package httpx

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds a single provider round trip.
const DefaultTimeout = 15 * time.Second

// ClientConfig holds configuration for the provider HTTP client.
type ClientConfig struct {
	// Name identifies the provider this client talks to, for logging.
	Name string

	// Timeout is the per-request timeout. Default: DefaultTimeout.
	Timeout time.Duration

	// UserAgent overrides the User-Agent header sent with each request.
	UserAgent string
}

// Client is a timeout-bounded HTTP client for external providers.
type Client struct {
	httpClient *http.Client
	name       string
	userAgent  string
}

// NewClient creates a provider HTTP client.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "healthguardian/1.0"
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		name:       cfg.Name,
		userAgent:  userAgent,
	}
}

// Name returns the provider name this client was created for.
func (c *Client) Name() string {
	return c.name
}

// Do executes an HTTP request.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return c.httpClient.Do(req)
}
