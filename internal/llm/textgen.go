package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go-explainer/internal/config"
)

// TextGenClient calls a Hugging Face Inference text-generation endpoint
type TextGenClient struct {
	url         string
	apiKey      string
	maxTokens   int
	temperature float32
	http        *http.Client
}

type textGenParams struct {
	MaxNewTokens   int     `json:"max_new_tokens,omitempty"`
	Temperature    float32 `json:"temperature,omitempty"`
	ReturnFullText bool    `json:"return_full_text"`
}

type textGenRequest struct {
	Inputs     string        `json:"inputs"`
	Parameters textGenParams `json:"parameters"`
}

type textGenResult struct {
	GeneratedText string `json:"generated_text"`
}

// NewTextGenClient targets <m.URL>/<m.Name>
func NewTextGenClient(m config.ModelConfig, apiKey string, httpClient *http.Client) *TextGenClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &TextGenClient{
		url:         strings.TrimSuffix(m.URL, "/") + "/" + m.Name,
		apiKey:      apiKey,
		maxTokens:   m.MaxTokens,
		temperature: m.Temperature,
		http:        httpClient,
	}
}

func (c *TextGenClient) Generate(ctx context.Context, prompt string) (string, error) {
	payload := textGenRequest{
		Inputs: prompt,
		Parameters: textGenParams{
			MaxNewTokens: c.maxTokens,
			Temperature:  c.temperature,
		},
	}
	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}

	var results []textGenResult
	if err := postJSON(ctx, c.http, c.url, headers, payload, &results); err != nil {
		return "", fmt.Errorf("text generation: %w", err)
	}
	if len(results) == 0 || strings.TrimSpace(results[0].GeneratedText) == "" {
		return "", ErrEmptyReply
	}
	return results[0].GeneratedText, nil
}
