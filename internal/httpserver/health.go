package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"smart-todo-client/pkg/response"
)

// Health response constants (single source for version and service identity).
const (
	HealthMessage = "Smart ToDo client is running"
	HealthVersion = "1.0.0"
	ServiceName   = "smart-todo-client"

	remoteHealthTimeout = 3 * time.Second
)

// healthCheck reports this process and the remote task service. A failing remote answers 503.
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	body := gin.H{
		"status":  "healthy",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	}
	if srv.remote == nil {
		response.OK(c, body)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), remoteHealthTimeout)
	defer cancel()

	h, err := srv.remote.Health(ctx)
	if err != nil {
		srv.l.Warnf(ctx, "httpserver.healthCheck: remote: %v", err)
		body["status"] = "degraded"
		body["remote"] = gin.H{"status": "unreachable", "error": err.Error()}
		response.Unavailable(c, body)
		return
	}

	body["remote"] = gin.H{"status": h.Status, "message": h.Message, "database": h.Database}
	response.OK(c, body)
}

// readyCheck handles readiness check: ready once the server is up.
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "ready",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// liveCheck handles liveness check requests.
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}
