package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mediashelf/collection-helper/internal/config"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// openAIClient speaks the OpenAI chat-completions format. It serves any
// provider whose base_url accepts that schema.
type openAIClient struct {
	cfg        config.LLMConfig
	httpClient *http.Client
}

type openAIRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type openAIResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

func (c *openAIClient) Provider() string {
	return c.cfg.Provider
}

func (c *openAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	baseURL := c.cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}

	body := openAIRequest{
		Model:       c.cfg.Model,
		Messages:    []message{{Role: "user", Content: prompt}},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}
	headers := map[string]string{
		"Authorization": "Bearer " + c.cfg.APIKey,
	}

	var resp openAIResponse
	if err := postJSON(ctx, c.httpClient, c.cfg.Provider, baseURL+"/chat/completions", headers, body, &resp); err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices", c.cfg.Provider)
	}
	return resp.Choices[0].Message.Content, nil
}
