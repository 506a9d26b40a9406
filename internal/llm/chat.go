package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go-explainer/internal/config"
)

// ChatClient talks to any OpenAI-compatible chat completions endpoint:
// OpenAI itself, the Hugging Face router, or a local llama.cpp server.
type ChatClient struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

// NewChatClient creates a chat client using m.URL as the API base URL
func NewChatClient(m config.ModelConfig, apiKey string, httpClient *http.Client) *ChatClient {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimSuffix(m.URL, "/")
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &ChatClient{
		client:      openai.NewClientWithConfig(cfg),
		model:       m.Name,
		maxTokens:   m.MaxTokens,
		temperature: m.Temperature,
	}
}

// Generate sends prompt as a single user message
func (c *ChatClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyReply
	}
	reply := resp.Choices[0].Message.Content
	if strings.TrimSpace(reply) == "" {
		return "", ErrEmptyReply
	}
	return reply, nil
}
