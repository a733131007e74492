package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"smart-todo-client/pkg/log"
	"smart-todo-client/pkg/response"
)

// RequestID tags each request with a request id, reusing the caller's when present,
// and logs the outcome once the handler chain returns.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		ctx := log.WithRequestID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()
		m.l.Debugf(ctx, "%s %s -> %d (%s)", c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}

// Recovery turns a handler panic into the standard 500 envelope.
func (m Middleware) Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		m.l.Errorf(c.Request.Context(), "middleware.Recovery: panic: %v", rec)
		response.InternalError(c, fmt.Errorf("panic: %v", rec))
		c.Abort()
	})
}
