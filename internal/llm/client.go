package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-explainer/internal/config"
)

// Provider identifiers accepted in model.provider
const (
	ProviderOpenAI           = "openai"
	ProviderOpenAICompatible = "openai-compatible"
	ProviderHFChat           = "hf-chat"
	ProviderHFTextGen        = "hf-textgen"
	ProviderGemini           = "gemini"
)

const defaultMaxNewTokens = 1024

var (
	ErrEmptyReply      = errors.New("model returned an empty reply")
	ErrUnknownProvider = errors.New("unknown model provider")
	ErrMissingAPIKey   = errors.New("model API key not set")
	ErrMissingModelURL = errors.New("model url must be set for this provider")
)

// Client turns a fully formed prompt into the model's raw reply
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Info describes a constructed client for logging and the /config endpoint
type Info struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	URL      string `json:"url,omitempty"`
}

var defaultModels = map[string]string{
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderHFChat:    "google/gemma-2-2b-it",
	ProviderHFTextGen: "google/gemma-2-2b-it",
	ProviderGemini:    "gemini-1.5-flash",
}

var defaultURLs = map[string]string{
	ProviderOpenAI:    "https://api.openai.com/v1",
	ProviderHFChat:    "https://router.huggingface.co/v1",
	ProviderHFTextGen: "https://api-inference.huggingface.co/models",
	ProviderGemini:    "https://generativelanguage.googleapis.com/v1beta",
}

// Resolve fills in the default model name and URL for the provider
func Resolve(m config.ModelConfig) (config.ModelConfig, error) {
	if _, ok := defaultURLs[m.Provider]; !ok && m.Provider != ProviderOpenAICompatible {
		return m, fmt.Errorf("%w: %q", ErrUnknownProvider, m.Provider)
	}
	if m.Name == "" {
		m.Name = defaultModels[m.Provider]
	}
	if m.URL == "" {
		m.URL = defaultURLs[m.Provider]
	}
	if m.URL == "" {
		return m, fmt.Errorf("%w: %s", ErrMissingModelURL, m.Provider)
	}
	if m.Name == "" {
		return m, fmt.Errorf("model name must be set for provider %s", m.Provider)
	}
	if m.MaxTokens <= 0 {
		m.MaxTokens = defaultMaxNewTokens
	}
	if m.TimeoutSeconds <= 0 {
		m.TimeoutSeconds = 120
	}
	return m, nil
}

// New builds the client for the configured provider. apiKey may be empty only
// for openai-compatible servers (llama.cpp, vLLM) that do not check it.
func New(m config.ModelConfig, apiKey string) (Client, Info, error) {
	m, err := Resolve(m)
	if err != nil {
		return nil, Info{}, err
	}
	info := Info{Provider: m.Provider, Model: m.Name, URL: m.URL}
	if apiKey == "" && m.Provider != ProviderOpenAICompatible {
		return nil, info, fmt.Errorf("%w for provider %s", ErrMissingAPIKey, m.Provider)
	}

	httpClient := &http.Client{Timeout: time.Duration(m.TimeoutSeconds) * time.Second}

	switch m.Provider {
	case ProviderOpenAI, ProviderHFChat, ProviderOpenAICompatible:
		return NewChatClient(m, apiKey, httpClient), info, nil
	case ProviderHFTextGen:
		return NewTextGenClient(m, apiKey, httpClient), info, nil
	case ProviderGemini:
		return NewGeminiClient(m, apiKey, httpClient), info, nil
	}
	return nil, info, fmt.Errorf("%w: %q", ErrUnknownProvider, m.Provider)
}

// ClientFunc adapts a plain function to Client
type ClientFunc func(ctx context.Context, prompt string) (string, error)

func (f ClientFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
