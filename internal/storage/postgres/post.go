package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"post_catalog/internal/domain"
)

type PostStore struct {
	db *sqlx.DB
}

func NewPostStore(db *sqlx.DB) *PostStore {
	return &PostStore{db: db}
}

func (s *PostStore) Upsert(ctx context.Context, post *domain.Post) (int64, error) {
	query := `
		INSERT INTO posts (
			slug, title, description, category, date, featured, image, linkedin_hook
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
		ON CONFLICT (slug) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			date = EXCLUDED.date,
			featured = EXCLUDED.featured,
			image = EXCLUDED.image,
			linkedin_hook = EXCLUDED.linkedin_hook
		RETURNING id`

	ex := GetExecutor(ctx, s.db)

	var id int64
	err := ex.QueryRowxContext(ctx, query,
		post.Slug,
		post.Title,
		post.Description,
		post.Category,
		post.Date,
		post.Featured,
		post.Image,
		post.LinkedInHook,
	).Scan(&id)

	if err == sql.ErrNoRows {
		err = ex.QueryRowxContext(ctx,
			"SELECT id FROM posts WHERE slug = $1",
			post.Slug,
		).Scan(&id)
	}

	if err != nil {
		return 0, err
	}

	return id, nil
}

// ExistingSlugs returns the subset of slugs already present in the archive.
func (s *PostStore) ExistingSlugs(ctx context.Context, slugs []string) (map[string]struct{}, error) {
	if len(slugs) == 0 {
		return make(map[string]struct{}), nil
	}

	query := `SELECT slug FROM posts WHERE slug = ANY($1)`

	rows, err := GetExecutor(ctx, s.db).QueryxContext(ctx, query, pq.Array(slugs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]struct{})
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, err
		}
		result[slug] = struct{}{}
	}

	return result, rows.Err()
}
