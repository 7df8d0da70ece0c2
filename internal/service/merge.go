package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"post_catalog/internal/catalog"
	"post_catalog/internal/domain"
)

// MergeService merges candidate posts into the catalog document and, when
// configured, mirrors the accepted posts into the archive and announces them.
// The archive, tx manager, state store and publisher may all be nil; the
// catalog file is the source of truth and the only fatal write.
type MergeService struct {
	store      CatalogStore
	candidates CandidateSource
	archive    ArchiveStore
	tags       TagStore
	state      StateStore
	txManager  TransactionManager
	publisher  Publisher
	logger     *slog.Logger
}

func NewMergeService(
	store CatalogStore,
	candidates CandidateSource,
	archive ArchiveStore,
	tags TagStore,
	state StateStore,
	txManager TransactionManager,
	publisher Publisher,
	logger *slog.Logger,
) *MergeService {
	return &MergeService{
		store:      store,
		candidates: candidates,
		archive:    archive,
		tags:       tags,
		state:      state,
		txManager:  txManager,
		publisher:  publisher,
		logger:     logger,
	}
}

func (s *MergeService) Merge(ctx context.Context) (*domain.MergeStats, error) {
	startTime := time.Now()

	cat, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	candidates, err := s.candidates.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}

	s.logger.Info("starting merge",
		"existing", len(cat.Posts),
		"candidates", len(candidates),
	)

	merged, added, err := catalog.Merge(cat.Posts, candidates)
	if err != nil {
		return nil, err
	}

	stats := &domain.MergeStats{
		Existing:   len(cat.Posts),
		Candidates: len(candidates),
		Added:      len(added),
		Skipped:    len(candidates) - len(added),
	}

	cat.Posts = merged
	if err := s.store.Save(ctx, cat); err != nil {
		return nil, fmt.Errorf("save catalog: %w", err)
	}

	for i := range added {
		post := &added[i]

		if s.archive != nil {
			if err := s.archivePost(ctx, post); err != nil {
				s.logger.Error("archive post failed", "slug", post.Slug, "error", err)
				stats.Errors++
			} else {
				stats.Archived++
			}
		}

		if s.publisher != nil {
			if err := s.publisher.Publish(ctx, post); err != nil {
				s.logger.Error("publish post failed", "slug", post.Slug, "error", err)
				stats.Errors++
			} else {
				stats.Published++
			}
		}
	}

	if s.state != nil {
		if err := s.updateState(ctx, stats); err != nil {
			s.logger.Error("update catalog state failed", "error", err)
			stats.Errors++
		}
	}

	stats.Duration = time.Since(startTime)

	s.logger.Info("merge completed",
		"total", len(merged),
		"added", stats.Added,
		"skipped", stats.Skipped,
		"archived", stats.Archived,
		"published", stats.Published,
		"errors", stats.Errors,
		"duration", stats.Duration,
	)

	return stats, nil
}

func (s *MergeService) archivePost(ctx context.Context, post *domain.Post) error {
	return s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		postID, err := s.archive.Upsert(txCtx, post)
		if err != nil {
			return fmt.Errorf("upsert post: %w", err)
		}

		if len(post.Tags) > 0 {
			tagIDs, err := s.tags.UpsertBatch(txCtx, post.Tags)
			if err != nil {
				return fmt.Errorf("upsert tags: %w", err)
			}

			if err := s.tags.LinkToPost(txCtx, postID, tagIDs); err != nil {
				return fmt.Errorf("link tags: %w", err)
			}
		}

		return nil
	})
}

func (s *MergeService) updateState(ctx context.Context, stats *domain.MergeStats) error {
	state, err := s.state.Get(ctx)
	if err != nil {
		return err
	}

	state.LastMergedAt = time.Now()
	state.TotalAdded += int64(stats.Added)

	return s.state.Update(ctx, state)
}
