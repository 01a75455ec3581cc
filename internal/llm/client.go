// Package llm provides the language-model classification and
// extraction calls the pipeline depends on. The service speaks the
// OpenAI chat-completions protocol; responses carry no schema
// guarantee, so callers validate everything.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL targets OpenRouter's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// Attribution headers sent with every request, as OpenRouter asks of
// API consumers.
const (
	refererHeader = "https://github.com/petem573/dealflow"
	titleHeader   = "Climate Tech Funding Tracker"
)

const defaultRequestTimeout = 60 * time.Second

// ErrMissingAPIKey indicates the service credential was not configured.
// Surfaced before any network activity.
var ErrMissingAPIKey = errors.New("llm: missing API key")

// ErrEmptyCompletion indicates the service returned no choices.
var ErrEmptyCompletion = errors.New("llm: empty completion")

// Message is one chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// responseFormat hints the service toward structured output.
type responseFormat struct {
	Type string `json:"type"`
}

type completionRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    *float64        `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client is an HTTP client for an OpenAI-compatible chat-completions
// service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a chat-completions client. The API key must be
// non-empty; checking it here keeps the failure pre-network.
func NewClient(baseURL, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}, nil
}

// CompleteOption adjusts a single completion request.
type CompleteOption func(*completionRequest)

// WithTemperature pins the sampling temperature.
func WithTemperature(t float64) CompleteOption {
	return func(r *completionRequest) { r.Temperature = &t }
}

// WithMaxTokens caps the completion length.
func WithMaxTokens(n int) CompleteOption {
	return func(r *completionRequest) { r.MaxTokens = n }
}

// WithJSONResponse requests a JSON-object completion. The hint is
// structural only; the service may still return malformed output.
func WithJSONResponse() CompleteOption {
	return func(r *completionRequest) { r.ResponseFormat = &responseFormat{Type: "json_object"} }
}

// Complete sends one chat-completion request and returns the first
// choice's content.
func (c *Client) Complete(ctx context.Context, model string, messages []Message, opts ...CompleteOption) (string, error) {
	reqBody := completionRequest{Model: model, Messages: messages}
	for _, opt := range opts {
		opt(&reqBody)
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("HTTP-Referer", refererHeader)
	req.Header.Set("X-Title", titleHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion request: unexpected status %d", resp.StatusCode)
	}

	var parsed completionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	return parsed.Choices[0].Message.Content, nil
}
