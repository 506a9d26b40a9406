package api

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go-explainer/internal/config"
	"go-explainer/internal/explain"
	"go-explainer/internal/llm"
	"go-explainer/internal/sections"
)

const steamReply = `"History": "Steam engines began in the 1700s", "Why & How": "Heat converts to motion", "Layman Explanation": "It's a hot box that moves things", "Beginner Q&A": "Q: What is it? A: An engine."`

// recordingClient stands in for a model provider
type recordingClient struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
	ctxErrs []error
}

func (r *recordingClient) Generate(ctx context.Context, prompt string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prompts = append(r.prompts, prompt)
	r.ctxErrs = append(r.ctxErrs, ctx.Err())
	return r.reply, r.err
}

func (r *recordingClient) lastPrompt() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.prompts) == 0 {
		return ""
	}
	return r.prompts[len(r.prompts)-1]
}

func newTestExplainer(reply string, err error) (*explain.Explainer, *recordingClient) {
	client := &recordingClient{reply: reply, err: err}
	return explain.New(client, sections.QuotedField, nil), client
}

func failingExplainer() *explain.Explainer {
	e, _ := newTestExplainer("", errors.New("simulated network error"))
	return e
}

type fakeStatsReader struct {
	counters map[string]int64
	err      error
}

func (f *fakeStatsReader) Snapshot(ctx context.Context) (map[string]int64, error) {
	return f.counters, f.err
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	return cfg
}

var testInfo = llm.Info{Provider: "hf-chat", Model: "google/gemma-2-2b-it"}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
