package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smart-todo-client/internal/model"
	taskHTTP "smart-todo-client/internal/task/delivery/http"
	"smart-todo-client/pkg/log"
)

// RemoteHealth reports the health of the remote task service.
type RemoteHealth interface {
	Health(ctx context.Context) (model.Health, error)
}

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Task domain
	taskHandler taskHTTP.Handler
	remote      RemoteHealth

	// Observability
	metricsHandler http.Handler

	// Extra handlers mounted under /api (the in-process fake remote service)
	mounts map[string]http.Handler

	shutdownTimeout time.Duration
	onShutdown      []func()
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	// Task domain
	TaskHandler taskHTTP.Handler
	Remote      RemoteHealth

	// Observability
	MetricsHandler http.Handler

	// Mounts maps a path prefix such as "/api/tasks" to a handler served as-is.
	Mounts map[string]http.Handler

	ShutdownTimeout time.Duration
	// OnShutdown runs when shutdown starts, e.g. to end streaming responses.
	OnShutdown []func()
}

// New creates a new HTTPServer instance with every route registered.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		taskHandler:     cfg.TaskHandler,
		remote:          cfg.Remote,
		metricsHandler:  cfg.MetricsHandler,
		mounts:          cfg.Mounts,
		shutdownTimeout: cfg.ShutdownTimeout,
		onShutdown:      cfg.OnShutdown,
	}
	if srv.shutdownTimeout <= 0 {
		srv.shutdownTimeout = 10 * time.Second
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}
	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.taskHandler == nil {
		return errors.New("task handler is required")
	}
	return nil
}

// Handler exposes the engine, mainly for tests.
func (srv *HTTPServer) Handler() http.Handler {
	return srv.gin
}
