package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/giygas/medreview-api/assessment"
	"github.com/giygas/medreview-api/automation"
	"github.com/giygas/medreview-api/config"
	"github.com/giygas/medreview-api/data"
	"github.com/giygas/medreview-api/handlers"
	"github.com/giygas/medreview-api/health"
	"github.com/giygas/medreview-api/interfaces"
	"github.com/giygas/medreview-api/logging"
	"github.com/giygas/medreview-api/reportparser"
	"github.com/giygas/medreview-api/scheduler"
	"github.com/giygas/medreview-api/server"
	"github.com/giygas/medreview-api/storage"
	"github.com/giygas/medreview-api/validation"
	"github.com/joho/godotenv"
)

func loadEnv() {
	if err := godotenv.Load(); err == nil {
		return
	}

	// If failed, try loading from executable directory
	ex, err := os.Executable()
	if err != nil {
		slog.Warn("No .env file found and executable path unknown", "error", err)
		return
	}
	if err := godotenv.Load(filepath.Join(filepath.Dir(ex), ".env")); err != nil {
		slog.Info("No .env file found, using environment variables")
	}
}

func openStore(ctx context.Context, cfg *config.Config) (interfaces.ReportStore, error) {
	if cfg.DatabaseURL == "" {
		logging.Warn("DATABASE_URL not set, reports are kept in memory only")
		return storage.NewMemoryStore(), nil
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	store, err := storage.NewPostgresStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open report store: %w", err)
	}
	return store, nil
}

func main() {
	loadEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLogger(logging.Options{
		Dir:            cfg.LogDir,
		Level:          logging.ParseLevel(cfg.LogLevel),
		RetentionWeeks: cfg.LogRetentionWeeks,
		MaxFileSize:    cfg.MaxLogFileSize,
	})

	err = run(cfg)
	if err != nil {
		logging.Error("Service stopped with an error", "error", err)
	}
	logging.Close()

	if err != nil {
		os.Exit(1)
	}
}

// run wires the service and blocks until a shutdown signal or a server error
func run(cfg *config.Config) error {
	logging.Info("Configuration loaded",
		"env", cfg.Env,
		"address", cfg.Address,
		"port", cfg.Port,
		"webhook_timeout", cfg.WebhookTimeout.String(),
		"cache_ttl", cfg.CacheTTL.String())

	store, err := openStore(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	cache := data.NewReportCache(cfg.CacheTTL)
	client := automation.NewClient(automation.Config{
		PublicURL:   cfg.WebhookPublicURL,
		HospitalURL: cfg.WebhookHospitalURL,
		Timeout:     cfg.WebhookTimeout,
	})
	validator := validation.NewIntakeValidator()

	service := assessment.NewService(store, cache, client, reportparser.NewReportParser(), validator)
	healthChecker := health.NewHealthChecker(store, cache, client)
	httpHandler := handlers.NewHTTPHandler(service, validator, healthChecker)

	sched := scheduler.NewScheduler(cache, client, time.Duration(cfg.CacheCleanupMinutes)*time.Minute)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	srv := server.NewServer(cfg, httpHandler)

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	var runErr error
	select {
	case sig := <-quit:
		logging.Info("Received shutdown signal", "signal", sig.String())
	case runErr = <-serverErr:
		if runErr != nil {
			runErr = fmt.Errorf("server failed: %w", runErr)
		}
	}

	// Submissions can hold a connection for the whole webhook timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.WebhookTimeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Graceful shutdown failed", "error", err)
	}

	return runErr
}
