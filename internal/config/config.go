package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfigPaths are searched in order; the first existing file wins.
var defaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/collection-helper/config.yaml",
}

// Config holds all application configuration. Loaded once at startup via
// Load and immutable afterwards; safe for concurrent reads.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Emby     EmbyConfig     `koanf:"emby"`
	Booklore BookloreConfig `koanf:"booklore"`
	LLM      LLMConfig      `koanf:"llm"`
	Logging  LoggingConfig  `koanf:"logging"`
}

type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// EmbyConfig configures the video catalog backend.
type EmbyConfig struct {
	URL     string        `koanf:"url"`
	APIKey  string        `koanf:"api_key"`
	Timeout time.Duration `koanf:"timeout"`
}

// BookloreConfig configures the book catalog backend.
type BookloreConfig struct {
	URL     string        `koanf:"url"`
	APIKey  string        `koanf:"api_key"`
	Timeout time.Duration `koanf:"timeout"`
}

// LLMConfig selects and parameterizes the LLM provider. Provider picks the
// wire-format variant: "anthropic" and "ollama" have their own formats,
// anything else is treated as OpenAI-compatible.
type LLMConfig struct {
	Provider    string        `koanf:"provider"`
	APIKey      string        `koanf:"api_key"`
	BaseURL     string        `koanf:"base_url"`
	Model       string        `koanf:"model"`
	MaxTokens   int           `koanf:"max_tokens"`
	Temperature float64       `koanf:"temperature"`
	Timeout     time.Duration `koanf:"timeout"`
	Breaker     bool          `koanf:"breaker"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8090,
			Timeout: 60 * time.Second,
		},
		Emby: EmbyConfig{
			Timeout: 30 * time.Second,
		},
		Booklore: BookloreConfig{
			Timeout: 30 * time.Second,
		},
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			MaxTokens:   1000,
			Temperature: 0.7,
			Timeout:     120 * time.Second,
			Breaker:     true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from three layers, later layers winning:
//  1. built-in defaults
//  2. optional YAML config file
//  3. environment variables (EMBY_URL, LLM_MAX_TOKENS, ...)
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate rejects malformed values up front so the rest of the code can
// trust the config.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.LLM.Provider == "" {
		return fmt.Errorf("llm.provider must not be empty")
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("llm.model must not be empty")
	}
	if c.LLM.MaxTokens < 1 {
		return fmt.Errorf("llm.max_tokens must be positive, got %d", c.LLM.MaxTokens)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature %.2f out of range [0,2]", c.LLM.Temperature)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	for _, path := range defaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// configPrefixes maps env var prefixes to koanf sections. EMBY_API_KEY
// becomes emby.api_key, LLM_MAX_TOKENS becomes llm.max_tokens.
var configPrefixes = map[string]string{
	"SERVER_":   "server",
	"EMBY_":     "emby",
	"BOOKLORE_": "booklore",
	"LLM_":      "llm",
	"LOG_":      "logging",
}

func envTransform(key string) string {
	for prefix, section := range configPrefixes {
		if strings.HasPrefix(key, prefix) {
			return section + "." + strings.ToLower(strings.TrimPrefix(key, prefix))
		}
	}
	// Unrelated environment variables are ignored.
	return ""
}
