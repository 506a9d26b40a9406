package redisdb

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Counter names
const (
	CounterRequests    = "requests"
	CounterFailures    = "failures"
	CounterParseMisses = "parse_misses"
)

var counters = []string{CounterRequests, CounterFailures, CounterParseMisses}

const statsKeyFmt = "explainer:stats:"

// Stats keeps usage counters in redis. Only totals are stored, never topics.
type Stats struct {
	rdb *redis.Client
}

func NewStats(rdb *redis.Client) *Stats {
	return &Stats{rdb: rdb}
}

// Incr adds n to the named counter
func (s *Stats) Incr(ctx context.Context, name string, n int64) error {
	return s.rdb.IncrBy(ctx, statsKeyFmt+name, n).Err()
}

// Snapshot reads every counter; counters never written read as zero
func (s *Stats) Snapshot(ctx context.Context) (map[string]int64, error) {
	keys := make([]string, len(counters))
	for i, c := range counters {
		keys[i] = statsKeyFmt + c
	}
	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	return parseCounters(vals), nil
}

// parseCounters maps MGET replies onto counter names. Missing keys come back
// as nil and anything that is not an integer string reads as zero.
func parseCounters(vals []interface{}) map[string]int64 {
	out := make(map[string]int64, len(counters))
	for i, c := range counters {
		out[c] = 0
		if i >= len(vals) {
			continue
		}
		if str, ok := vals[i].(string); ok {
			if n, err := strconv.ParseInt(str, 10, 64); err == nil {
				out[c] = n
			}
		}
	}
	return out
}

// reset deletes every counter; used by tests against a live redis
func (s *Stats) reset(ctx context.Context) error {
	keys := make([]string, len(counters))
	for i, c := range counters {
		keys[i] = statsKeyFmt + c
	}
	return s.rdb.Del(ctx, keys...).Err()
}
