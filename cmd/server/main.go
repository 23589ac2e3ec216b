package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/mrv/internal/blob"
	"github.com/JonMunkholm/mrv/internal/config"
	"github.com/JonMunkholm/mrv/internal/core"
	"github.com/JonMunkholm/mrv/internal/logging"
	"github.com/JonMunkholm/mrv/internal/store"
	"github.com/JonMunkholm/mrv/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	ctx := context.Background()

	blobs, err := blob.Open(ctx, cfg.Blob)
	if err != nil {
		slog.Error("failed to open blob source", "error", err)
		os.Exit(1)
	}

	source, err := core.RulesSource(cfg.Ingest.RulesPath, blobs)
	if err != nil {
		slog.Error("invalid rule table setting", "error", err)
		os.Exit(1)
	}
	rules, err := source.LoadColumnTypeMapping(ctx)
	if err != nil {
		slog.Error("failed to load rule table", "error", err)
		os.Exit(1)
	}

	records, closeStore, err := store.Open(ctx, cfg.Store)
	if err != nil {
		slog.Error("failed to open record store", "backend", cfg.Store.Backend, "error", err)
		os.Exit(1)
	}
	defer closeStore()
	slog.Info("record store ready", "backend", cfg.Store.Backend)

	service, err := core.NewService(blobs, records, rules, core.ServiceConfig{
		Delimiter:     cfg.Ingest.DelimiterRune(),
		MaxFileSize:   cfg.Blob.MaxSize,
		MaxConcurrent: cfg.Ingest.MaxConcurrent,
		MaxWait:       cfg.Ingest.MaxWaitTime,
		Timeout:       cfg.Ingest.Timeout,
	})
	if err != nil {
		slog.Error("failed to create service", "error", err)
		os.Exit(1)
	}

	server := web.NewServer(service, *cfg)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start returns only after in-flight ingestions have drained, so the
	// store is still open while they finish.
	if err := server.Start(ctx, cfg.Server.Addr()); err != nil {
		slog.Error("server stopped", "error", err)
		closeStore()
		os.Exit(1)
	}
	slog.Info("server stopped")
}
