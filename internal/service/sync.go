package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"post_catalog/internal/domain"
)

// SyncService replaces the local catalog document with the remote copy. Any
// fetch or validation failure aborts before the local file is touched.
type SyncService struct {
	remote RemoteSource
	store  CatalogStore
	logger *slog.Logger
}

func NewSyncService(remote RemoteSource, store CatalogStore, logger *slog.Logger) *SyncService {
	return &SyncService{
		remote: remote,
		store:  store,
		logger: logger,
	}
}

func (s *SyncService) Sync(ctx context.Context) (*domain.SyncStats, error) {
	startTime := time.Now()
	s.logger.Info("starting sync")

	cat, raw, err := s.remote.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch remote catalog: %w", err)
	}

	if err := s.store.Replace(ctx, raw); err != nil {
		return nil, fmt.Errorf("replace local catalog: %w", err)
	}

	stats := &domain.SyncStats{
		Posts:    len(cat.Posts),
		Bytes:    len(raw),
		Duration: time.Since(startTime),
	}

	s.logger.Info("sync completed",
		"posts", stats.Posts,
		"bytes", stats.Bytes,
		"duration", stats.Duration,
	)

	return stats, nil
}
