package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"post_catalog/internal/domain"
)

type CatalogStore interface {
	Load(ctx context.Context) (*domain.Catalog, error)
	Save(ctx context.Context, cat *domain.Catalog) error
	Replace(ctx context.Context, raw []byte) error
}

type CandidateSource interface {
	Load(ctx context.Context) ([]domain.Post, error)
}

type RemoteSource interface {
	Fetch(ctx context.Context) (*domain.Catalog, []byte, error)
}

type ArchiveStore interface {
	Upsert(ctx context.Context, post *domain.Post) (int64, error)
}

type TagStore interface {
	UpsertBatch(ctx context.Context, labels []string) ([]int64, error)
	LinkToPost(ctx context.Context, postID int64, tagIDs []int64) error
}

type StateStore interface {
	Get(ctx context.Context) (*domain.CatalogState, error)
	Update(ctx context.Context, state *domain.CatalogState) error
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, post *domain.Post) error
	Close() error
}
