// Package file persists the catalog document and candidate lists on disk.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"post_catalog/internal/domain"
)

// CatalogStore reads and rewrites the catalog document wholesale.
type CatalogStore struct {
	path string
}

func NewCatalogStore(path string) *CatalogStore {
	return &CatalogStore{path: path}
}

func (s *CatalogStore) Load(ctx context.Context) (*domain.Catalog, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var cat domain.Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", s.path, err)
	}

	return &cat, nil
}

func (s *CatalogStore) Save(ctx context.Context, cat *domain.Catalog) error {
	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}

// Replace overwrites the local document with raw bytes fetched from the
// remote. The caller is expected to have validated the document shape.
func (s *CatalogStore) Replace(ctx context.Context, raw []byte) error {
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("replace catalog: %w", err)
	}
	return nil
}

// CandidateStore reads new post records awaiting a merge. The file holds
// either a bare JSON array of posts or a document with a posts list.
type CandidateStore struct {
	path string
}

func NewCandidateStore(path string) *CandidateStore {
	return &CandidateStore{path: path}
}

func (s *CandidateStore) Load(ctx context.Context) ([]domain.Post, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read candidates: %w", err)
	}

	var posts []domain.Post
	if err := json.Unmarshal(data, &posts); err == nil {
		return posts, nil
	}

	var cat domain.Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse candidates %s: %w", s.path, err)
	}
	return cat.Posts, nil
}
