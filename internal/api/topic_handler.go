package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type TopicRequest struct {
	Topic string `json:"topic"`
}

// POST /api/topic
func TopicHandler(svc TopicExplainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TopicRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		respondWithRecord(c, svc, req.Topic)
	}
}

// GET /api/topic?topic=...
func TopicQueryHandler(svc TopicExplainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		respondWithRecord(c, svc, c.Query("topic"))
	}
}

// respondWithRecord always answers 200; failures travel in the record itself.
// The model call is not cancelled when the caller disconnects.
func respondWithRecord(c *gin.Context, svc TopicExplainer, topic string) {
	ctx := context.WithoutCancel(c.Request.Context())
	rec := svc.Explain(ctx, topic)
	c.PureJSON(http.StatusOK, rec)
}
