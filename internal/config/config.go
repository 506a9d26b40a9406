package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// Prompt styles accepted in config.json
const (
	StyleJSON    = "json"
	StyleHeading = "heading"
)

type ModelConfig struct {
	Provider       string  `json:"provider"`
	Name           string  `json:"name"`
	URL            string  `json:"url"`
	APIKeyEnv      string  `json:"api_key_env"`
	TimeoutSeconds int     `json:"timeout_seconds"`
	MaxTokens      int     `json:"max_tokens"`
	Temperature    float32 `json:"temperature"`
}

type Config struct {
	Server struct {
		Host           string   `json:"host"`
		Port           int      `json:"port"`
		Subpath        string   `json:"subpath"`
		AllowedOrigins []string `json:"allowed_origins"`
		EnableGET      bool     `json:"enable_get"`
	} `json:"server"`
	Model  ModelConfig `json:"model"`
	Prompt struct {
		Style string `json:"style"`
	} `json:"prompt"`
	Redis struct {
		Enabled  bool   `json:"enabled"`
		Addr     string `json:"addr"`
		Password string `json:"password"`
		DB       int    `json:"db"`
	} `json:"redis"`
}

var (
	once   sync.Once
	cfg    *Config
	cfgErr error
)

// LoadConfig reads config.json from disk (singleton).
// A .env file in the working directory is loaded first when present.
func LoadConfig(path string) (*Config, error) {
	once.Do(func() {
		_ = godotenv.Load()

		raw, err := os.ReadFile(path)
		if err != nil {
			cfgErr = fmt.Errorf("failed to read config file: %w", err)
			return
		}
		var c Config
		if err := json.Unmarshal(raw, &c); err != nil {
			cfgErr = fmt.Errorf("invalid config format: %w", err)
			return
		}
		if p := os.Getenv("MODEL_PROVIDER"); p != "" {
			c.Model.Provider = p
		}
		c.ApplyDefaults()
		if err := c.Validate(); err != nil {
			cfgErr = err
			return
		}
		cfg = &c
	})
	return cfg, cfgErr
}

// ApplyDefaults fills in everything config.json may leave out
func (c *Config) ApplyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	c.Server.Subpath = strings.TrimSuffix(c.Server.Subpath, "/")
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"http://localhost:5173"}
	}
	if c.Model.Provider == "" {
		c.Model.Provider = "hf-chat"
	}
	if c.Model.TimeoutSeconds <= 0 {
		c.Model.TimeoutSeconds = 120
	}
	c.Prompt.Style = strings.ToLower(strings.TrimSpace(c.Prompt.Style))
	if c.Prompt.Style == "" {
		c.Prompt.Style = StyleJSON
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
}

// Validate checks the fields that have no sensible default
func (c *Config) Validate() error {
	if c.Prompt.Style != StyleJSON && c.Prompt.Style != StyleHeading {
		return fmt.Errorf("prompt.style must be %q or %q, got %q", StyleJSON, StyleHeading, c.Prompt.Style)
	}
	if c.Server.Subpath != "" && !strings.HasPrefix(c.Server.Subpath, "/") {
		return errors.New("server.subpath must start with '/'")
	}
	return nil
}

// APIKey returns the model credential from the environment.
// MODEL_API_KEY wins, then model.api_key_env, then the provider's usual variable.
func (m ModelConfig) APIKey() string {
	if v := os.Getenv("MODEL_API_KEY"); v != "" {
		return v
	}
	if m.APIKeyEnv != "" {
		return os.Getenv(m.APIKeyEnv)
	}
	switch m.Provider {
	case "openai", "openai-compatible":
		return os.Getenv("OPENAI_API_KEY")
	case "hf-chat", "hf-textgen":
		if v := os.Getenv("HUGGINGFACEHUB_API_TOKEN"); v != "" {
			return v
		}
		return os.Getenv("HF_TOKEN")
	case "gemini":
		return os.Getenv("GOOGLE_API_KEY")
	}
	return ""
}

// GetConfig returns the loaded config (must call LoadConfig first)
func GetConfig() *Config {
	return cfg
}

// ResetConfigForTest resets the singleton state (for testing only)
func ResetConfigForTest() {
	once = sync.Once{}
	cfg = nil
	cfgErr = nil
}
