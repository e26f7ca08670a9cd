package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meuatelie/atelie-bfa-go/internal/config"
	"github.com/meuatelie/atelie-bfa-go/internal/handler"
	"github.com/meuatelie/atelie-bfa-go/internal/infra/api"
	"github.com/meuatelie/atelie-bfa-go/internal/infra/gateway"
	"github.com/meuatelie/atelie-bfa-go/internal/infra/observability"
	"github.com/meuatelie/atelie-bfa-go/internal/infra/resilience"
	"github.com/meuatelie/atelie-bfa-go/internal/infra/storage"
	"github.com/meuatelie/atelie-bfa-go/internal/service"
	"github.com/meuatelie/atelie-bfa-go/internal/session"
	"github.com/meuatelie/atelie-bfa-go/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = godotenv.Load()

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("atelie_api_url", cfg.AtelieAPIURL),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.String("state_dir", cfg.StateDir),
		zap.Duration("assinatura_cache_ttl", cfg.AssinaturaCacheTTL),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "atelie-bfa")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("atelie-api")

	// --- Clients ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	sess := session.NewClient(httpClient, cfg.SupabaseURL, cfg.SupabaseAnonKey, logger)
	if cfg.SupabaseURL == "" {
		logger.Warn("identity provider not configured, backend calls go out unauthenticated")
	}

	gw := gateway.New(httpClient, cfg.AtelieAPIURL, sess, cb, resilienceCfg, metrics, logger)
	backend := api.NewClient(gw)

	// --- Snapshot store ---
	fileStore, err := storage.NewFileStore(cfg.StateDir)
	if err != nil {
		logger.Fatal("failed to open state directory", zap.Error(err))
	}
	st := store.New(backend, fileStore, metrics, logger)
	st.Restore()

	// --- Service ---
	console := service.NewConsole(backend, st, cfg.AssinaturaCacheTTL, cfg.VencimentoAvisoDias, metrics, logger)

	// --- Router ---
	router := handler.NewRouter(console, sess, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
