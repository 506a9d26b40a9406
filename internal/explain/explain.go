package explain

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-explainer/internal/llm"
	"go-explainer/internal/prompt"
	redisdb "go-explainer/internal/redis"
	"go-explainer/internal/sections"
)

// StatsRecorder receives usage counters. Implemented by redisdb.Stats.
type StatsRecorder interface {
	Incr(ctx context.Context, name string, n int64) error
}

type noopStats struct{}

func (noopStats) Incr(context.Context, string, int64) error { return nil }

// Explainer turns a topic into a sections.Record using one model client.
// It holds no mutable state and is safe for concurrent use.
type Explainer struct {
	client llm.Client
	style  sections.Style
	stats  StatsRecorder
}

// New wires an explainer. stats may be nil.
func New(client llm.Client, style sections.Style, stats StatsRecorder) *Explainer {
	if stats == nil {
		stats = noopStats{}
	}
	return &Explainer{client: client, style: style, stats: stats}
}

// Style returns the prompt/extraction style in use
func (e *Explainer) Style() sections.Style {
	return e.style
}

// Explain never fails: a model error yields the placeholder record with the
// error text attached.
func (e *Explainer) Explain(ctx context.Context, topic string) (rec sections.Record) {
	start := time.Now()
	e.count(ctx, redisdb.CounterRequests, 1)

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic while generating: %v", r)
			log.Printf("[Explain] %v", err)
			e.count(ctx, redisdb.CounterFailures, 1)
			rec = sections.Failed(err)
		}
	}()

	reply, err := e.generate(ctx, topic)
	if err != nil {
		log.Printf("[Explain] Error: %v (topic=%q, %s)", err, topic, time.Since(start))
		e.count(ctx, redisdb.CounterFailures, 1)
		return sections.Failed(err)
	}

	rec = sections.Extract(reply, e.style)
	if misses := rec.Misses(); misses > 0 {
		log.Printf("[Explain] %d of %d sections not found in reply (style=%s)", misses, len(sections.Fields), e.style)
		e.count(ctx, redisdb.CounterParseMisses, int64(misses))
	}
	log.Printf("[Explain] topic=%q done in %s", topic, time.Since(start))
	return rec
}

func (e *Explainer) generate(ctx context.Context, topic string) (string, error) {
	if e.client == nil {
		return "", fmt.Errorf("no model client configured")
	}
	return e.client.Generate(ctx, prompt.Build(e.style, topic))
}

func (e *Explainer) count(ctx context.Context, name string, n int64) {
	if err := e.stats.Incr(ctx, name, n); err != nil {
		log.Printf("[Explain] WARNING: failed to record %s: %v", name, err)
	}
}
