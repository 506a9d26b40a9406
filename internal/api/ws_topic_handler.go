package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go-explainer/internal/config"
)

// allowedOrigin reports whether a browser origin may open a websocket.
// Non-browser clients send no Origin header and are always allowed.
func allowedOrigin(origins []string, origin string) bool {
	if origin == "" {
		return true
	}
	for _, o := range origins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

// maxTopicMessage bounds a single inbound websocket frame.
const maxTopicMessage = 64 << 10

// writeUnescaped sends v as one text frame, keeping "&" literal the same way
// the HTTP endpoints do with PureJSON.
func writeUnescaped(conn *websocket.Conn, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, buf.Bytes())
}

// GET /ws/topic
// Each text message {"topic": "..."} is answered with one complete record.
func WSTopicHandler(cfg *config.Config, svc TopicExplainer) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return allowedOrigin(cfg.Server.AllowedOrigins, r.Header.Get("Origin"))
		},
	}
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("WebSocket upgrade failed:", err)
			return
		}
		defer conn.Close()
		conn.SetReadLimit(maxTopicMessage)

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Printf("[WS] read error: %v", err)
				}
				return
			}
			var req TopicRequest
			if err := json.Unmarshal(msg, &req); err != nil {
				if err := writeUnescaped(conn, map[string]string{"error": "invalid JSON"}); err != nil {
					return
				}
				continue
			}
			rec := svc.Explain(context.WithoutCancel(c.Request.Context()), req.Topic)
			if err := writeUnescaped(conn, rec); err != nil {
				log.Printf("[WS] write error: %v", err)
				return
			}
		}
	}
}
