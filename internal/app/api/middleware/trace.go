package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gymstack/gymhub/pkg/logctx"
)

const ctxTraceID = "traceID"

// TraceMiddleware attaches a trace id to the request. It honors a client
// X-Request-ID when present, otherwise generates a UUID, and stores the id
// in both gin.Context and the request's std context.
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader("X-Request-ID")
		if traceID == "" {
			traceID = uuid.New().String()
		}

		c.Set(ctxTraceID, traceID)
		c.Request = c.Request.WithContext(logctx.WithTraceID(c.Request.Context(), traceID))

		c.Next()
	}
}
