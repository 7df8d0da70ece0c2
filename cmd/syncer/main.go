package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"post_catalog/internal/config"
	"post_catalog/internal/scheduler"
	"post_catalog/internal/service"
	"post_catalog/internal/source/remote"
	"post_catalog/internal/storage/file"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	watch := flag.Bool("watch", false, "keep syncing on the configured interval")
	flag.Parse()

	// Setup logger
	logger := setupLogger("info")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	if cfg.Remote.URL == "" {
		logger.Error("remote.url is not configured")
		os.Exit(1)
	}

	remoteClient := remote.New(remote.Config{
		URL:            cfg.Remote.URL,
		Timeout:        cfg.Remote.Timeout,
		MaxAttempts:    cfg.Remote.Retry.MaxAttempts,
		InitialBackoff: cfg.Remote.Retry.InitialBackoff,
		MaxBackoff:     cfg.Remote.Retry.MaxBackoff,
	}, logger)

	catalogStore := file.NewCatalogStore(cfg.Catalog.Path)
	syncService := service.NewSyncService(remoteClient, catalogStore, logger)

	if !*watch {
		stats, err := syncService.Sync(context.Background())
		if err != nil {
			logger.Error("sync failed", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Synced %d posts from remote\n", stats.Posts)
		return
	}

	sched := scheduler.NewScheduler(syncService, cfg.Sync.Interval, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("starting catalog syncer",
		"remote", cfg.Remote.URL,
		"interval", cfg.Sync.Interval,
	)

	if err := sched.Start(ctx); err != nil && err != context.Canceled {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
