//go:build integration

package postgres

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"post_catalog/internal/domain"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	migrationsPath, err := filepath.Abs("../../../migrations")
	s.Require().NoError(err)

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.WithInitScripts(
			filepath.Join(migrationsPath, "001_create_posts.up.sql"),
			filepath.Join(migrationsPath, "002_create_catalog_state.up.sql"),
		),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sqlx.Connect("postgres", connStr)
	s.Require().NoError(err)
	s.db = db
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM post_tags")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM tags")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM posts")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM catalog_state")
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) TestPostStore_Upsert_Insert() {
	store := NewPostStore(s.db)

	post := &domain.Post{
		Slug:         "memory-leak-part-1",
		Title:        "The Two-Year Memory Leak",
		Description:  "How it was found",
		Category:     "Tech",
		Date:         "2026-09-25",
		Featured:     false,
		Image:        "/img/posts/memory-leak-part-1.svg",
		LinkedInHook: "hook text",
	}

	id, err := store.Upsert(s.ctx, post)
	s.NoError(err)
	s.Greater(id, int64(0))

	var count int
	err = s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM posts WHERE slug = $1", post.Slug)
	s.NoError(err)
	s.Equal(1, count)
}

func (s *PostgresIntegrationSuite) TestPostStore_Upsert_UpdatesExisting() {
	store := NewPostStore(s.db)

	post := &domain.Post{
		Slug:  "a-post",
		Title: "Original Title",
		Date:  "2026-01-01",
	}

	id1, err := store.Upsert(s.ctx, post)
	s.Require().NoError(err)

	post.Title = "Updated Title"
	id2, err := store.Upsert(s.ctx, post)
	s.NoError(err)
	s.Equal(id1, id2)

	var title string
	err = s.db.GetContext(s.ctx, &title, "SELECT title FROM posts WHERE slug = $1", post.Slug)
	s.NoError(err)
	s.Equal("Updated Title", title)
}

func (s *PostgresIntegrationSuite) TestPostStore_ExistingSlugs() {
	store := NewPostStore(s.db)

	_, err := store.Upsert(s.ctx, &domain.Post{Slug: "a", Title: "A", Date: "2026-01-01"})
	s.Require().NoError(err)
	_, err = store.Upsert(s.ctx, &domain.Post{Slug: "b", Title: "B", Date: "2026-01-02"})
	s.Require().NoError(err)

	existing, err := store.ExistingSlugs(s.ctx, []string{"a", "b", "c"})
	s.NoError(err)
	s.Len(existing, 2)
	s.Contains(existing, "a")
	s.Contains(existing, "b")
	s.NotContains(existing, "c")

	empty, err := store.ExistingSlugs(s.ctx, nil)
	s.NoError(err)
	s.Empty(empty)
}

func (s *PostgresIntegrationSuite) TestTagStore_UpsertBatchAndLink() {
	posts := NewPostStore(s.db)
	tags := NewTagStore(s.db)

	postID, err := posts.Upsert(s.ctx, &domain.Post{Slug: "tagged", Title: "T", Date: "2026-01-01"})
	s.Require().NoError(err)

	ids, err := tags.UpsertBatch(s.ctx, []string{"go", "testing"})
	s.NoError(err)
	s.Len(ids, 2)

	// re-upserting the same labels returns the same ids
	again, err := tags.UpsertBatch(s.ctx, []string{"go", "testing"})
	s.NoError(err)
	s.Equal(ids, again)

	s.NoError(tags.LinkToPost(s.ctx, postID, ids))

	labels, err := tags.GetByPostID(s.ctx, postID)
	s.NoError(err)
	s.Equal([]string{"go", "testing"}, labels)
}

func (s *PostgresIntegrationSuite) TestTagStore_LinkReplacesExisting() {
	posts := NewPostStore(s.db)
	tags := NewTagStore(s.db)

	postID, err := posts.Upsert(s.ctx, &domain.Post{Slug: "relinked", Title: "R", Date: "2026-01-01"})
	s.Require().NoError(err)

	ids, err := tags.UpsertBatch(s.ctx, []string{"old-tag"})
	s.Require().NoError(err)
	s.Require().NoError(tags.LinkToPost(s.ctx, postID, ids))

	newIDs, err := tags.UpsertBatch(s.ctx, []string{"new-tag"})
	s.Require().NoError(err)
	s.Require().NoError(tags.LinkToPost(s.ctx, postID, newIDs))

	labels, err := tags.GetByPostID(s.ctx, postID)
	s.NoError(err)
	s.Equal([]string{"new-tag"}, labels)
}

func (s *PostgresIntegrationSuite) TestStateStore_GetDefaultAndUpdate() {
	store := NewStateStore(s.db)

	state, err := store.Get(s.ctx)
	s.NoError(err)
	s.Equal(int64(1), state.ID)
	s.Equal(int64(0), state.TotalAdded)

	state.LastMergedAt = time.Now().Truncate(time.Microsecond)
	state.TotalAdded = 5
	s.NoError(store.Update(s.ctx, state))

	reloaded, err := store.Get(s.ctx)
	s.NoError(err)
	s.Equal(int64(5), reloaded.TotalAdded)
	s.False(reloaded.LastMergedAt.IsZero())
}

func (s *PostgresIntegrationSuite) TestTransactionManager_RollsBackOnError() {
	tm := NewTransactionManager(s.db)
	posts := NewPostStore(s.db)

	err := tm.WithTransaction(s.ctx, func(txCtx context.Context) error {
		if _, err := posts.Upsert(txCtx, &domain.Post{Slug: "doomed", Title: "D", Date: "2026-01-01"}); err != nil {
			return err
		}
		return context.Canceled
	})
	s.Error(err)

	var count int
	s.NoError(s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM posts WHERE slug = 'doomed'"))
	s.Equal(0, count)
}
