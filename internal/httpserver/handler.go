package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	"smart-todo-client/internal/middleware"
	"smart-todo-client/internal/model"
	taskHTTP "smart-todo-client/internal/task/delivery/http"
)

func (srv *HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(); err != nil {
		return err
	}

	return nil
}

func (srv *HTTPServer) registerMiddlewares() {
	mw := middleware.New(srv.l)
	srv.gin.Use(mw.Recovery())
	srv.gin.Use(mw.RequestID())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "Server mode: production")
	} else {
		srv.l.Infof(ctx, "Server mode: %s", srv.environment)
	}
}

func (srv *HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	if srv.metricsHandler != nil {
		srv.gin.GET("/metrics", gin.WrapH(srv.metricsHandler))
	}
}

// registerDomainRoutes registers all domain routes.
func (srv *HTTPServer) registerDomainRoutes() error {
	ctx := context.Background()

	taskHTTP.RegisterRoutes(srv.gin.Group("/api/v1"), srv.taskHandler)
	srv.l.Infof(ctx, "Task routes registered under /api/v1")

	for prefix, h := range srv.mounts {
		srv.gin.Any(prefix+"/*path", gin.WrapH(h))
		srv.l.Infof(ctx, "Mounted %s", prefix)
	}

	return nil
}
