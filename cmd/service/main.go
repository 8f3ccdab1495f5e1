// cmd/service/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github-profile-analyzer/internal/analyzer"
	"github-profile-analyzer/internal/api"
	"github-profile-analyzer/internal/config"
	"github-profile-analyzer/internal/database"
	"github-profile-analyzer/internal/github"
	"github-profile-analyzer/internal/reconciler"
	"github-profile-analyzer/internal/syncer"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Application startup error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Initialize structured logger
	logLevel := new(slog.LevelVar)
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// 2. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	setLogLevel(cfg.LogLevel, logLevel)
	logger.Info("Configuration loaded successfully")

	// 3. Setup context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// 4. Initialize database connection and run migrations
	dbpool, err := pgxpool.New(ctx, cfg.DBURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer dbpool.Close()
	logger.Info("Database connection established")

	if err := database.Migrate(cfg.MigrationsPath, cfg.DBURL); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	logger.Info("Database migrations applied successfully")

	// 5. Initialize application components
	ghClient, err := github.NewClient(github.Options{
		BaseURL:        cfg.GithubURL,
		Token:          cfg.GithubToken,
		PageSize:       cfg.GithubPageSize,
		ProfileTimeout: cfg.GithubProfileTimeout,
		PageTimeout:    cfg.GithubPageTimeout,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}
	if cfg.GithubToken == "" {
		logger.Warn("GITHUB_TOKEN is not set, requests are unauthenticated")
	}

	queries := database.New(dbpool)
	svc := analyzer.NewService(queries, ghClient, reconciler.NewReconciler(dbpool, logger), logger, cfg.CacheTTL)
	refresher := syncer.NewSyncer(queries, svc, logger, cfg.RefreshInterval, cfg.RefreshBatchSize, svc.CacheTTL())
	logger.Info("Analyzer ready", "cache_ttl", svc.CacheTTL(), "page_size", ghClient.PageSize())

	// 6. Start the background refresher in a separate goroutine
	go refresher.Start(ctx)

	// 7. Serve HTTP until a shutdown signal arrives
	srv := &http.Server{
		Addr: ":" + strconv.Itoa(cfg.Port),
		Handler: api.NewRouter(svc, logger, api.Options{
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			RateLimitRequests:  cfg.RateLimitRequests,
			RateLimitWindow:    cfg.RateLimitWindow,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received. Exiting.")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}

func setLogLevel(level string, v *slog.LevelVar) {
	switch level {
	case "debug":
		v.Set(slog.LevelDebug)
	case "warn":
		v.Set(slog.LevelWarn)
	case "error":
		v.Set(slog.LevelError)
	default:
		v.Set(slog.LevelInfo)
	}
}
