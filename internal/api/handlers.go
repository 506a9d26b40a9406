package api

import (
	"embed"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go-explainer/internal/config"
	"go-explainer/internal/llm"
)

//go:embed templates/*.html
var templateFS embed.FS

const requestIDHeader = "X-Request-ID"

// RequestIDMiddleware keeps the caller's X-Request-ID or assigns a new one
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestId", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// GET /
func indexHandler(cfg *config.Config, svc TopicExplainer, info llm.Info) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"subpath":   cfg.Server.Subpath,
			"provider":  info.Provider,
			"model":     info.Model,
			"style":     svc.Style().String(),
			"enableGET": cfg.Server.EnableGET,
		})
	}
}

// GET /health
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// GET /config
func configHandler(cfg *config.Config, svc TopicExplainer, info llm.Info) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only return non-sensitive config fields
		c.JSON(http.StatusOK, gin.H{
			"server": gin.H{
				"subpath":    cfg.Server.Subpath,
				"enable_get": cfg.Server.EnableGET,
			},
			"model": gin.H{
				"provider": info.Provider,
				"name":     info.Model,
			},
			"prompt": gin.H{
				"style": svc.Style().String(),
			},
		})
	}
}

// GET /api/stats
func StatsHandler(stats StatsReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if stats == nil {
			c.JSON(http.StatusOK, gin.H{"enabled": false})
			return
		}
		snap, err := stats.Snapshot(c.Request.Context())
		if err != nil {
			log.Printf("[Stats] Error reading counters: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "stats unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"enabled": true, "counters": snap})
	}
}
