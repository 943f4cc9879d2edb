package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mediashelf/collection-helper/internal/config"
)

const (
	defaultAnthropicBaseURL = "https://api.anthropic.com/v1"
	anthropicAPIVersion     = "2023-06-01"
)

// anthropicClient speaks the Anthropic messages API: x-api-key auth and a
// content-block response envelope.
type anthropicClient struct {
	cfg        config.LLMConfig
	httpClient *http.Client
}

type anthropicRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (c *anthropicClient) Provider() string {
	return c.cfg.Provider
}

func (c *anthropicClient) Complete(ctx context.Context, prompt string) (string, error) {
	baseURL := c.cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultAnthropicBaseURL
	}

	body := anthropicRequest{
		Model:       c.cfg.Model,
		MaxTokens:   c.cfg.MaxTokens,
		Messages:    []message{{Role: "user", Content: prompt}},
		Temperature: c.cfg.Temperature,
	}
	headers := map[string]string{
		"x-api-key":         c.cfg.APIKey,
		"anthropic-version": anthropicAPIVersion,
	}

	var resp anthropicResponse
	if err := postJSON(ctx, c.httpClient, c.cfg.Provider, baseURL+"/messages", headers, body, &resp); err != nil {
		return "", err
	}

	if len(resp.Content) == 0 {
		return "", fmt.Errorf("%s returned no content blocks", c.cfg.Provider)
	}
	return resp.Content[0].Text, nil
}
