package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"post_catalog/internal/domain"
	"post_catalog/internal/service/mocks"
)

type SyncServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	remote *mocks.MockRemoteSource
	store  *mocks.MockCatalogStore

	service *SyncService
}

func (s *SyncServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.remote = mocks.NewMockRemoteSource(s.ctrl)
	s.store = mocks.NewMockCatalogStore(s.ctrl)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.service = NewSyncService(s.remote, s.store, logger)
}

func (s *SyncServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestSyncServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SyncServiceTestSuite))
}

func (s *SyncServiceTestSuite) TestSync_ReplacesLocalCopy() {
	ctx := context.Background()

	raw := []byte(`{"posts": [{"slug": "a", "date": "2026-01-01"}]}`)
	cat := &domain.Catalog{Posts: []domain.Post{{Slug: "a", Date: "2026-01-01"}}}

	s.remote.EXPECT().Fetch(ctx).Return(cat, raw, nil)
	s.store.EXPECT().Replace(ctx, raw).Return(nil)

	stats, err := s.service.Sync(ctx)

	s.NoError(err)
	s.Equal(1, stats.Posts)
	s.Equal(len(raw), stats.Bytes)
}

func (s *SyncServiceTestSuite) TestSync_FetchErrorLeavesLocalUntouched() {
	ctx := context.Background()

	s.remote.EXPECT().Fetch(ctx).Return(nil, nil, errors.New("connection refused"))

	stats, err := s.service.Sync(ctx)

	s.Error(err)
	s.Nil(stats)
	s.Contains(err.Error(), "fetch remote catalog")
}

func (s *SyncServiceTestSuite) TestSync_ReplaceError() {
	ctx := context.Background()

	raw := []byte(`{"posts": []}`)

	s.remote.EXPECT().Fetch(ctx).Return(&domain.Catalog{}, raw, nil)
	s.store.EXPECT().Replace(ctx, raw).Return(errors.New("permission denied"))

	stats, err := s.service.Sync(ctx)

	s.Error(err)
	s.Nil(stats)
	s.Contains(err.Error(), "replace local catalog")
}
