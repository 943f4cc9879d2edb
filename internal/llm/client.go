// Package llm is the gateway to the configured LLM provider. It speaks
// three wire formats behind one interface: OpenAI-compatible chat
// completions (the default for any provider), the Anthropic messages API,
// and the Ollama generate API. The gateway is a single-shot request/
// response primitive: it never retries.
package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"github.com/mediashelf/collection-helper/internal/config"
)

// Client completes a prompt against one provider.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Provider() string
}

// New selects the wire-format variant by provider name. "anthropic" and
// "ollama" have incompatible request/response shapes; every other provider
// (openai, deepseek, groq, openrouter, ...) is OpenAI-compatible.
func New(cfg config.LLMConfig) Client {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch strings.ToLower(cfg.Provider) {
	case "anthropic":
		return &anthropicClient{cfg: cfg, httpClient: httpClient}
	case "ollama":
		return &ollamaClient{cfg: cfg, httpClient: httpClient}
	default:
		return &openAIClient{cfg: cfg, httpClient: httpClient}
	}
}

// postJSON sends one JSON request and decodes the JSON response body into
// out, mapping HTTP failures to the gateway's typed errors.
func postJSON(ctx context.Context, httpClient *http.Client, provider, endpoint string, headers map[string]string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", provider, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return &TimeoutError{Provider: provider}
		}
		return fmt.Errorf("%s request failed: %w", provider, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &AuthError{Provider: provider, Status: resp.StatusCode}
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitError{Provider: provider}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &ProviderError{Provider: provider, Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", provider, err)
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}

// message is the {role, content} shape shared by the chat-style formats.
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
