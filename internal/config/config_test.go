package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8090", cfg.Addr())
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 1000, cfg.LLM.MaxTokens)
	assert.Equal(t, 120*time.Second, cfg.LLM.Timeout)
	assert.True(t, cfg.LLM.Breaker)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("EMBY_URL", "http://emby.local:8096")
	t.Setenv("EMBY_API_KEY", "emby-secret")
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("LLM_MAX_TOKENS", "2000")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "http://emby.local:8096", cfg.Emby.URL)
	assert.Equal(t, "emby-secret", cfg.Emby.APIKey)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, 2000, cfg.LLM.MaxTokens)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 8181
llm:
  provider: ollama
  model: llama3
  base_url: http://localhost:11434
booklore:
  url: http://books.local:6060
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.Server.Port)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "llama3", cfg.LLM.Model)
	assert.Equal(t, "http://books.local:6060", cfg.Booklore.URL)
	// File values that are absent keep their defaults.
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestEnvBeatsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 8181\n"), 0o600))
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("SERVER_PORT", "9999")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]struct {
		key   string
		value string
	}{
		"port out of range":    {"SERVER_PORT", "70000"},
		"zero max tokens":      {"LLM_MAX_TOKENS", "0"},
		"temperature too high": {"LLM_TEMPERATURE", "3.5"},
		"temperature negative": {"LLM_TEMPERATURE", "-0.1"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestValidateEmptyModel(t *testing.T) {
	cfg := defaultConfig()
	cfg.LLM.Model = ""
	require.Error(t, cfg.Validate())
}

func TestEnvTransform(t *testing.T) {
	assert.Equal(t, "emby.api_key", envTransform("EMBY_API_KEY"))
	assert.Equal(t, "llm.max_tokens", envTransform("LLM_MAX_TOKENS"))
	assert.Equal(t, "logging.level", envTransform("LOG_LEVEL"))
	assert.Equal(t, "", envTransform("HOME"))
	assert.Equal(t, "", envTransform("PATH"))
}
