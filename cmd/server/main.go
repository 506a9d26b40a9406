package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"go-explainer/internal/api"
	"go-explainer/internal/config"
	"go-explainer/internal/explain"
	"go-explainer/internal/llm"
	"go-explainer/internal/prompt"
	redisdb "go-explainer/internal/redis"
)

func main() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.json"
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	style, err := prompt.ParseStyle(cfg.Prompt.Style)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	client, info, err := llm.New(cfg.Model, cfg.Model.APIKey())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Model client error: %v\n", err)
		os.Exit(1)
	}
	log.Printf("[Main] Model client ready: provider=%s model=%s style=%s", info.Provider, info.Model, style)

	var recorder explain.StatsRecorder
	var reader api.StatsReader
	if cfg.Redis.Enabled {
		rdb := redisdb.NewClient(cfg)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Printf("[Main] WARNING: redis unreachable at %s, counters will fail until it is up: %v", cfg.Redis.Addr, err)
		}
		stats := redisdb.NewStats(rdb)
		recorder, reader = stats, stats
		log.Printf("[Main] ✓ Usage counters stored in redis at %s", cfg.Redis.Addr)
	} else {
		log.Printf("[Main] Redis counters disabled in config")
	}

	explainer := explain.New(client, style, recorder)

	r := api.SetupRouter(cfg, explainer, reader, info)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("Starting server on %s%s\n", addr, cfg.Server.Subpath)
	if err := r.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
