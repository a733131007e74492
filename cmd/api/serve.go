package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smart-todo-client/config"
	"smart-todo-client/internal/fakeremote"
	"smart-todo-client/internal/httpserver"
	"smart-todo-client/internal/task"
	taskHTTP "smart-todo-client/internal/task/delivery/http"
	"smart-todo-client/internal/task/interpret"
	"smart-todo-client/internal/task/repository"
	"smart-todo-client/internal/task/repository/remote"
	"smart-todo-client/internal/task/usecase"
	"smart-todo-client/pkg/gcalendar"
	"smart-todo-client/pkg/log"
	"smart-todo-client/pkg/metrics"
)

func serve(parent context.Context, configPath string) error {
	// 1. Configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Logger
	logger := newLogger(cfg)

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Smart ToDo client...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. In-process fake remote (development)
	mounts := map[string]http.Handler{}
	if cfg.FakeRemote.Enabled {
		svc, err := fakeremote.New(cfg.FakeRemote.Timezone, fakeremote.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("fake remote: %w", err)
		}
		mounts["/api/tasks"] = svc.Handler()
		if cfg.Gateway.BaseAddress == "" {
			cfg.Gateway.BaseAddress = fmt.Sprintf("http://127.0.0.1:%d/api", cfg.HTTPServer.Port)
		}
		logger.Warnf(ctx, "Fake remote enabled: tasks live in memory only")
	}
	logger.Infof(ctx, "Remote API: %s", cfg.Gateway.BaseAddress)

	// 4. Gateway
	mt := metrics.New()
	gw, err := newGateway(cfg, logger, mt)
	if err != nil {
		return err
	}

	// 5. Google Calendar client (optional)
	var calendar usecase.Calendar
	if cfg.GoogleCalendar.CredentialsPath != "" {
		calendarClient, err := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
		if err != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", err)
		} else {
			calendar = calendarClient
			logger.Info(ctx, "Google Calendar initialized")
		}
	}

	// 6. Task UseCase
	taskUC := usecase.New(logger, gw, usecase.Config{
		Interpret: interpret.Config{
			QuietPeriod: cfg.Interpret.QuietPeriod,
			MinLength:   cfg.Interpret.MinLength,
			CacheSize:   cfg.Interpret.CacheSize,
			CacheTTL:    cfg.Interpret.CacheTTL,
		},
		BulkConcurrency:    cfg.Bulk.Concurrency,
		RefreshMaxAttempts: cfg.Refresh.MaxAttempts,
		Calendar: usecase.CalendarConfig{
			CalendarID:   cfg.GoogleCalendar.CalendarID,
			Timezone:     cfg.GoogleCalendar.Timezone,
			EventMinutes: cfg.GoogleCalendar.EventMinutes,
		},
	}, calendar, mt)
	defer taskUC.Close()

	// 7. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:         logger,
		Port:           cfg.HTTPServer.Port,
		Mode:           cfg.HTTPServer.Mode,
		Environment:    cfg.Environment.Name,
		TaskHandler:    taskHTTP.New(logger, taskUC),
		Remote:         taskUC,
		MetricsHandler: mt.Handler(),
		Mounts:         mounts,
		OnShutdown:     []func(){taskUC.Close},
	})
	if err != nil {
		return fmt.Errorf("init http server: %w", err)
	}

	// Loaded in the background: the fake remote is only reachable once Run listens.
	go initialLoad(ctx, logger, taskUC)

	// 8. Run
	if err := httpServer.Run(ctx); err != nil {
		return fmt.Errorf("run server: %w", err)
	}

	logger.Info(ctx, "Server stopped gracefully")
	return nil
}

func initialLoad(ctx context.Context, logger log.Logger, uc task.UseCase) {
	const attempts = 5
	for i := 1; ; i++ {
		err := uc.Load(ctx)
		if err == nil {
			return
		}
		if i == attempts || !repository.IsTransient(err) {
			logger.Warnf(ctx, "Initial load failed, POST /api/v1/refresh to retry: %v", err)
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Duration(i) * 200 * time.Millisecond):
		}
	}
}

func health(ctx context.Context, out io.Writer, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Gateway.BaseAddress == "" {
		return fmt.Errorf("gateway.base_address is not set")
	}

	gw, err := newGateway(cfg, newLogger(cfg), nil)
	if err != nil {
		return err
	}
	h, err := gw.Health(ctx)
	if err != nil {
		return fmt.Errorf("remote health: %w", err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(h)
}

func newLogger(cfg *config.Config) log.Logger {
	return log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})
}

func newGateway(cfg *config.Config, logger log.Logger, mt *metrics.Metrics) (repository.Gateway, error) {
	client, err := remote.NewClient(remote.Config{
		BaseAddress:       cfg.Gateway.BaseAddress,
		Timeout:           cfg.Gateway.Timeout,
		RequestsPerSecond: cfg.Gateway.RequestsPerSecond,
		Burst:             cfg.Gateway.Burst,
	}, remote.WithLogger(logger), remote.WithMetrics(mt))
	if err != nil {
		return nil, fmt.Errorf("init gateway: %w", err)
	}
	return remote.New(client), nil
}
