package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"post_catalog/internal/domain"
)

// StateStore keeps the single catalog_state bookkeeping row.
type StateStore struct {
	db *sqlx.DB
}

func NewStateStore(db *sqlx.DB) *StateStore {
	return &StateStore{db: db}
}

func (s *StateStore) Get(ctx context.Context) (*domain.CatalogState, error) {
	var state domain.CatalogState
	query := `
		SELECT id, last_merged_at, total_added
		FROM catalog_state
		WHERE id = 1`

	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &state, query)
	if err == sql.ErrNoRows {
		return &domain.CatalogState{ID: 1}, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *StateStore) Update(ctx context.Context, state *domain.CatalogState) error {
	query := `
		INSERT INTO catalog_state (id, last_merged_at, total_added)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET
			last_merged_at = EXCLUDED.last_merged_at,
			total_added = EXCLUDED.total_added`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		state.LastMergedAt,
		state.TotalAdded,
	)
	return err
}
