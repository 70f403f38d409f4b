package handler

import (
	"context"

	"github.com/ad-tracker/video-catalog-go/internal/models"
	"github.com/stretchr/testify/mock"
)

type mockVideoService struct {
	mock.Mock
}

func (m *mockVideoService) Create(ctx context.Context, input models.VideoBase) (*models.Video, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Video), args.Error(1)
}

func (m *mockVideoService) SoftDelete(ctx context.Context, videoID int64) error {
	args := m.Called(ctx, videoID)
	return args.Error(0)
}

func (m *mockVideoService) Restore(ctx context.Context, videoID int64) error {
	args := m.Called(ctx, videoID)
	return args.Error(0)
}

func (m *mockVideoService) Update(ctx context.Context, videoID int64, update models.VideoUpdate) (*models.Video, error) {
	args := m.Called(ctx, videoID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Video), args.Error(1)
}

func (m *mockVideoService) Get(ctx context.Context, videoID int64) (*models.VideoBase, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VideoBase), args.Error(1)
}

func (m *mockVideoService) ListActive(ctx context.Context) ([]models.Video, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Video), args.Error(1)
}

type mockCategoryService struct {
	mock.Mock
}

func (m *mockCategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *mockCategoryService) Get(ctx context.Context, categoryID int64) (*models.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *mockCategoryService) Rename(ctx context.Context, categoryID int64, name string) (*models.Category, error) {
	args := m.Called(ctx, categoryID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *mockCategoryService) Delete(ctx context.Context, categoryID int64) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

func (m *mockCategoryService) List(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Category), args.Error(1)
}

type mockCatalogQuery struct {
	mock.Mock
}

func (m *mockCatalogQuery) CategorizedVideos(ctx context.Context) ([]models.CategorizedVideo, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.CategorizedVideo), args.Error(1)
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type stubBroker bool

func (s stubBroker) IsHealthy() bool { return bool(s) }
