package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go-explainer/internal/config"
)

// GeminiClient calls the Google Generative Language generateContent API
type GeminiClient struct {
	url         string
	apiKey      string
	maxTokens   int
	temperature float32
	http        *http.Client
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
		Temperature     float32 `json:"temperature,omitempty"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
}

func NewGeminiClient(m config.ModelConfig, apiKey string, httpClient *http.Client) *GeminiClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &GeminiClient{
		url:         fmt.Sprintf("%s/models/%s:generateContent", strings.TrimSuffix(m.URL, "/"), m.Name),
		apiKey:      apiKey,
		maxTokens:   m.MaxTokens,
		temperature: m.Temperature,
		http:        httpClient,
	}
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	var payload geminiRequest
	payload.Contents = []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}}
	payload.GenerationConfig.MaxOutputTokens = c.maxTokens
	payload.GenerationConfig.Temperature = c.temperature

	headers := map[string]string{"x-goog-api-key": c.apiKey}

	var resp geminiResponse
	if err := postJSON(ctx, c.http, c.url, headers, payload, &resp); err != nil {
		return "", fmt.Errorf("gemini generateContent: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", ErrEmptyReply
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	reply := sb.String()
	if strings.TrimSpace(reply) == "" {
		return "", ErrEmptyReply
	}
	return reply, nil
}
