/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the labor aggregation server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (defaults, optional YAML file, LABOR_* env vars)
  2. Configure structured logging
  3. Initialize SQLite store
  4. Build the aggregation driver with metrics
  5. Configure HTTP router
  6. Start server with graceful shutdown

CONFIGURATION:
  LABOR_CONFIG              Path to a YAML config file (optional)
  LABOR_ADDR                Listen address (default: :8080)
  LABOR_DB_PATH             SQLite database path (default: labor.db)
  LABOR_TIMEZONE            IANA zone for day splitting (default: America/New_York)
  LABOR_LOG_LEVEL           debug|info|warn|error (default: info)
  LABOR_DEFAULT_DAY_HOURS   Per-day hours cap (default: 8)
  LABOR_OVERTIME_THRESHOLD  Daily overtime threshold, 0 disables (default: 0)
  LABOR_OVERTIME_MULTIPLIER Overtime pay multiplier (default: 1.5)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

SEE ALSO:
  - config/config.go: Configuration schema
  - api/server.go: Router configuration
  - labor/driver.go: Rebuild orchestration
*/
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Killswit3h/my-calendar-sub002/api"
	"github.com/Killswit3h/my-calendar-sub002/config"
	"github.com/Killswit3h/my-calendar-sub002/labor"
	"github.com/Killswit3h/my-calendar-sub002/metrics"
	"github.com/Killswit3h/my-calendar-sub002/store/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)
	slog.SetDefault(log)

	engineCfg, err := cfg.Engine()
	if err != nil {
		log.Error("invalid engine configuration", "error", err)
		os.Exit(1)
	}

	// Initialize store
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		log.Error("failed to initialize database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// Metrics registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rebuilds := metrics.NewRebuilds(registry)

	// Aggregation driver
	driver, err := labor.NewDriver(engineCfg, store.Stores(),
		labor.WithLogger(log),
		labor.WithObserver(rebuilds),
	)
	if err != nil {
		log.Error("failed to build aggregation driver", "error", err)
		os.Exit(1)
	}

	// Router and server
	handler := api.NewHandler(store, driver, log)
	router := api.NewRouter(handler, registry)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server starting", "addr", cfg.Addr, "timezone", cfg.Timezone, "db", cfg.DBPath)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
