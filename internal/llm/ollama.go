package llm

import (
	"context"
	"net/http"

	"github.com/mediashelf/collection-helper/internal/config"
)

const defaultOllamaBaseURL = "http://localhost:11434"

// ollamaClient speaks the Ollama generate API: no auth, non-streaming
// single prompt.
type ollamaClient struct {
	cfg        config.LLMConfig
	httpClient *http.Client
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	NumPredict  int     `json:"num_predict"`
	Temperature float64 `json:"temperature"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

func (c *ollamaClient) Provider() string {
	return c.cfg.Provider
}

func (c *ollamaClient) Complete(ctx context.Context, prompt string) (string, error) {
	baseURL := c.cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}

	body := ollamaRequest{
		Model:  c.cfg.Model,
		Prompt: prompt,
		Stream: false,
		Options: ollamaOptions{
			NumPredict:  c.cfg.MaxTokens,
			Temperature: c.cfg.Temperature,
		},
	}

	var resp ollamaResponse
	if err := postJSON(ctx, c.httpClient, c.cfg.Provider, baseURL+"/api/generate", nil, body, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}
