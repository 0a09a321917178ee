// Package openai provides the OpenAI chat completions client used for
// recommendation generation.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthguardian/healthguardian/internal/provider/httpx"
)

const (
	// ProviderName identifies this completion backend.
	ProviderName = "openai"

	// DefaultBaseURL is the OpenAI API base URL.
	DefaultBaseURL = "https://api.openai.com"

	// DefaultModel is used when no model is configured.
	DefaultModel = "gpt-4o-mini"
)

// ClientConfig holds configuration for the OpenAI client.
type ClientConfig struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// Model is the chat model to use (optional, defaults to DefaultModel).
	Model string

	// BaseURL is the API base URL (optional).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	HTTPClient *httpx.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an OpenAI chat completions client.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *httpx.Client
	logger     zerolog.Logger
}

// NewClient creates a new OpenAI client.
func NewClient(cfg ClientConfig) *Client {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		// Completions are slow compared to the data providers.
		httpClient = httpx.NewClient(httpx.ClientConfig{Name: ProviderName, Timeout: 60 * time.Second})
	}

	return &Client{
		apiKey:     cfg.APIKey,
		model:      model,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the backend name.
func (c *Client) Name() string {
	return ProviderName
}

// Complete sends a chat completion request and returns the assistant
// reply. JSON output mode is requested so replies parse as objects.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	body := completionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	endpoint := c.baseURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var completion completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return completion.Choices[0].Message.Content, nil
}

// OpenAI API request/response structures.

type completionRequest struct {
	Model          string          `json:"model"`
	Messages       []message       `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
