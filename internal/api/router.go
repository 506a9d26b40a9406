package api

import (
	"context"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go-explainer/internal/config"
	"go-explainer/internal/llm"
	"go-explainer/internal/sections"
)

// TopicExplainer is what the handlers need from explain.Explainer
type TopicExplainer interface {
	Explain(ctx context.Context, topic string) sections.Record
	Style() sections.Style
}

// StatsReader exposes usage counters; nil when redis is disabled
type StatsReader interface {
	Snapshot(ctx context.Context) (map[string]int64, error)
}

func SetupRouter(cfg *config.Config, svc TopicExplainer, stats StatsReader, info llm.Info) *gin.Engine {
	r := gin.Default()
	subpath := cfg.Server.Subpath // "" or e.g. "/explainer", never with a trailing slash

	r.Use(RequestIDMiddleware())
	r.Use(mirrorRequestedHeaders(cfg.Server.AllowedOrigins))
	r.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))

	tmpl := template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
	r.SetHTMLTemplate(tmpl)

	group := r.Group(subpath)
	{
		group.GET("/", indexHandler(cfg, svc, info))
		group.GET("/health", healthHandler)
		group.GET("/config", configHandler(cfg, svc, info))

		group.POST("/api/topic", TopicHandler(svc))
		if cfg.Server.EnableGET {
			group.GET("/api/topic", TopicQueryHandler(svc))
		}
		group.GET("/api/stats", StatsHandler(stats))

		group.GET("/ws/topic", WSTopicHandler(cfg, svc))
	}
	return r
}

// mirrorRequestedHeaders answers a preflight from an allowed origin with the
// exact headers it asked for. A literal "*" is not honoured by browsers once
// credentials are allowed, so every header is accepted this way instead.
// Must run before the cors middleware, which aborts preflights.
func mirrorRequestedHeaders(origins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			origin := c.GetHeader("Origin")
			requested := c.GetHeader("Access-Control-Request-Headers")
			if origin != "" && requested != "" && allowedOrigin(origins, origin) {
				c.Header("Access-Control-Allow-Headers", requested)
			}
		}
		c.Next()
	}
}

// AllowHeaders stays empty so the cors middleware does not overwrite the
// mirrored Access-Control-Allow-Headers.
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		ExposeHeaders:    []string{requestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			// credentials cannot be combined with a wildcard origin
			c.AllowAllOrigins = true
			c.AllowCredentials = false
			return c
		}
	}
	if len(origins) == 0 {
		log.Printf("[Router] WARNING: no CORS origins configured, cross-origin requests will be rejected")
		origins = []string{"http://localhost:5173"}
	}
	c.AllowOrigins = origins
	return c
}
