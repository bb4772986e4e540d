// Package mistral provides the Mistral chat-completions client used to
// interpret natural-language queries.
//
// The API is OpenAI-compatible: POST /v1/chat/completions with a messages
// array, bearer authentication, and a choices array in the response.
package mistral

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kubeask/kubeask/internal/metrics"
)

const (
	DefaultBaseURL   = "https://api.mistral.ai"
	DefaultModel     = "mistral-small-latest"
	DefaultMaxTokens = 200
	DefaultTimeout   = 60 * time.Second
)

// Client calls the Mistral chat completions API.
type Client struct {
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	baseURL     string
	httpClient  *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithMaxTokens bounds the completion length.
func WithMaxTokens(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxTokens = n
		}
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(c *Client) { c.temperature = t }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// Mistral API structures
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// NewClient creates a new Mistral client.
func NewClient(apiKey, model string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Mistral API key is required")
	}

	if model == "" {
		model = DefaultModel
	}

	c := &Client{
		apiKey:    apiKey,
		model:     model,
		maxTokens: DefaultMaxTokens,
		baseURL:   DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Complete sends a single user prompt and returns the trimmed text of the top
// completion choice. An empty string is returned when the response carries no
// choices. Transport failures and non-2xx responses are returned as errors.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	request := chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	start := time.Now()
	response, err := c.makeRequest(ctx, "/v1/chat/completions", request)
	metrics.LLMRequestDuration.WithLabelValues(c.model).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LLMRequestsTotal.WithLabelValues(c.model, "error").Inc()
		return "", fmt.Errorf("Mistral API request failed: %w", err)
	}
	metrics.LLMRequestsTotal.WithLabelValues(c.model, "success").Inc()

	var chatResp chatResponse
	if err := json.Unmarshal(response, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse Mistral response: %w", err)
	}

	metrics.LLMTokensUsed.WithLabelValues(c.model, "input").Add(float64(chatResp.Usage.PromptTokens))
	metrics.LLMTokensUsed.WithLabelValues(c.model, "output").Add(float64(chatResp.Usage.CompletionTokens))

	if len(chatResp.Choices) == 0 {
		return "", nil
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

// makeRequest makes an HTTP request to the Mistral API
func (c *Client) makeRequest(ctx context.Context, endpoint string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Mistral API error (status %d): %s", resp.StatusCode, string(responseBody))
	}

	return responseBody, nil
}

// SetBaseURL overrides the Mistral API base URL. Used in tests.
func (c *Client) SetBaseURL(url string) { c.baseURL = url }
