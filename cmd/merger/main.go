package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"post_catalog/internal/config"
	"post_catalog/internal/publisher"
	"post_catalog/internal/service"
	"post_catalog/internal/storage/file"
	"post_catalog/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
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

	catalogStore := file.NewCatalogStore(cfg.Catalog.Path)
	candidateStore := file.NewCandidateStore(cfg.Catalog.CandidatesPath)

	var (
		archive   service.ArchiveStore
		tags      service.TagStore
		state     service.StateStore
		txManager service.TransactionManager
	)
	if cfg.Database.Enabled {
		db, err := sqlx.Connect("postgres", cfg.Database.DSN())
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		logger.Info("connected to database")

		archive = postgres.NewPostStore(db)
		tags = postgres.NewTagStore(db)
		state = postgres.NewStateStore(db)
		txManager = postgres.NewTransactionManager(db)
	}

	var pub service.Publisher
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		pub = rabbitMQ
	}

	mergeService := service.NewMergeService(
		catalogStore,
		candidateStore,
		archive,
		tags,
		state,
		txManager,
		pub,
		logger,
	)

	stats, err := mergeService.Merge(context.Background())
	if err != nil {
		logger.Error("merge failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Added %d new posts and sorted %d total posts by date\n",
		stats.Added, stats.Existing+stats.Added)
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
