package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL targets an OpenAI-compatible chat completions endpoint.
	DefaultBaseURL = "https://inference.do-ai.run"
	// DefaultTimeout is generous; LLM completions are slow.
	DefaultTimeout = 120 * time.Second
	// DefaultModel is used when the system config does not select one.
	DefaultModel = "gemini-2.5-flash"
)

// Client calls a generative-language chat completions API. A nil client is
// valid everywhere and behaves as a permanently failing collaborator, which
// the service layer turns into canned fallbacks.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Config holds client configuration.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// NewClient creates a generative-language API client.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	return &Client{
		apiKey:     config.APIKey,
		baseURL:    config.BaseURL,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// Message is one turn of a chat completion conversation.
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// responseFormat requests plain text or a JSON object from the model.
type responseFormat struct {
	Type string `json:"type"` // "text" or "json_object"
}

type completionRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message      Message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
}

// Complete runs a chat completion and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, model string, messages []Message) (string, error) {
	return c.complete(ctx, model, messages, nil)
}

// CompleteJSON runs a chat completion that must return a JSON object and
// decodes it into out.
func (c *Client) CompleteJSON(ctx context.Context, model string, messages []Message, out any) error {
	content, err := c.complete(ctx, model, messages, &responseFormat{Type: "json_object"})
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(content), out)
}

func (c *Client) complete(ctx context.Context, model string, messages []Message, format *responseFormat) (string, error) {
	if c == nil || c.apiKey == "" {
		return "", fmt.Errorf("ai client not configured")
	}
	if model == "" {
		model = DefaultModel
	}

	body, err := json.Marshal(completionRequest{
		Model:          model,
		Messages:       messages,
		Temperature:    0.7,
		MaxTokens:      2048,
		ResponseFormat: format,
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1/chat/completions", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion request returned %d: %s", resp.StatusCode, string(data))
	}

	var parsed completionResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion response has no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
