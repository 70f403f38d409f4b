package service

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/ad-tracker/video-catalog-go/internal/db"
	"github.com/ad-tracker/video-catalog-go/internal/models"
	"github.com/ad-tracker/video-catalog-go/internal/repository"
	"github.com/stretchr/testify/mock"
)

// memCatalog is an in-memory repository.Catalog with the same ordering and
// not-found behavior as the postgres queries.
type memCatalog struct {
	categories   map[int64]models.Category
	videos       map[int64]models.Video
	nextCategory int64
	nextVideo    int64
}

func newMemCatalog() *memCatalog {
	return &memCatalog{
		categories: make(map[int64]models.Category),
		videos:     make(map[int64]models.Video),
	}
}

func (m *memCatalog) clone() *memCatalog {
	return &memCatalog{
		categories:   maps.Clone(m.categories),
		videos:       maps.Clone(m.videos),
		nextCategory: m.nextCategory,
		nextVideo:    m.nextVideo,
	}
}

func (m *memCatalog) CategoryExists(_ context.Context, id int64) (bool, error) {
	_, ok := m.categories[id]
	return ok, nil
}

func (m *memCatalog) CategoryNameTaken(_ context.Context, name string) (bool, error) {
	for _, c := range m.categories {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *memCatalog) VideoIsActive(_ context.Context, id int64) (bool, error) {
	v, ok := m.videos[id]
	return ok && v.IsActive, nil
}

func (m *memCatalog) VideoExists(_ context.Context, id int64) (bool, error) {
	_, ok := m.videos[id]
	return ok, nil
}

func (m *memCatalog) ActiveVideoCount(_ context.Context, categoryID int64) (int64, error) {
	var n int64
	for _, v := range m.videos {
		if v.IsActive && v.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (m *memCatalog) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	if taken, _ := m.CategoryNameTaken(ctx, name); taken {
		return nil, fmt.Errorf("create category: %w", db.ErrDuplicateKey)
	}
	m.nextCategory++
	c := models.Category{ID: m.nextCategory, Name: name}
	m.categories[c.ID] = c
	return &c, nil
}

func (m *memCatalog) GetCategory(_ context.Context, id int64) (*models.Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, fmt.Errorf("get category: %w", db.ErrNotFound)
	}
	return &c, nil
}

func (m *memCatalog) ListCategories(context.Context) ([]models.Category, error) {
	out := make([]models.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memCatalog) RenameCategory(_ context.Context, id int64, name string) (*models.Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, fmt.Errorf("rename category: %w", db.ErrNotFound)
	}
	for otherID, other := range m.categories {
		if otherID != id && other.Name == name {
			return nil, fmt.Errorf("rename category: %w", db.ErrDuplicateKey)
		}
	}
	c.Name = name
	m.categories[id] = c
	return &c, nil
}

func (m *memCatalog) DeleteCategory(_ context.Context, id int64) error {
	if _, ok := m.categories[id]; !ok {
		return fmt.Errorf("delete category: %w", db.ErrNotFound)
	}
	delete(m.categories, id)
	return nil
}

func (m *memCatalog) CreateVideo(_ context.Context, video *models.Video) error {
	m.nextVideo++
	video.ID = m.nextVideo
	m.videos[video.ID] = *video
	return nil
}

func (m *memCatalog) GetVideo(_ context.Context, id int64) (*models.Video, error) {
	v, ok := m.videos[id]
	if !ok {
		return nil, fmt.Errorf("get video: %w", db.ErrNotFound)
	}
	return &v, nil
}

func (m *memCatalog) ListActiveVideos(context.Context) ([]models.Video, error) {
	out := make([]models.Video, 0)
	for _, v := range m.videos {
		if v.IsActive {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memCatalog) UpdateVideo(_ context.Context, id int64, update models.VideoUpdate, changedAt time.Time) (*models.Video, error) {
	v, ok := m.videos[id]
	if !ok {
		return nil, fmt.Errorf("update video: %w", db.ErrNotFound)
	}
	applyUpdate(update, &v)
	v.DateLastChanged = changedAt
	m.videos[id] = v
	return &v, nil
}

func (m *memCatalog) SetVideoActive(_ context.Context, id int64, active bool, changedAt time.Time) error {
	v, ok := m.videos[id]
	if !ok {
		return fmt.Errorf("set video active: %w", db.ErrNotFound)
	}
	v.IsActive = active
	v.DateLastChanged = changedAt
	m.videos[id] = v
	return nil
}

func (m *memCatalog) ListCategorizedVideos(context.Context) ([]models.CategorizedVideo, error) {
	out := make([]models.CategorizedVideo, 0)
	for _, v := range m.videos {
		c, ok := m.categories[v.CategoryID]
		if !v.IsActive || !ok {
			continue
		}
		out = append(out, models.CategorizedVideo{ID: v.ID, Category: c.Name, Title: v.Title, YouTubeCode: v.YouTubeCode})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// applyUpdate is the in-memory counterpart of the SET clauses built by
// repository.buildVideoUpdate.
func applyUpdate(u models.VideoUpdate, v *models.Video) {
	if u.Title != nil {
		v.Title = *u.Title
	}
	if u.YouTubeCode != nil {
		v.YouTubeCode = *u.YouTubeCode
	}
	if u.CategoryID != nil {
		v.CategoryID = *u.CategoryID
	}
}

// memStore runs InTx against a copy and keeps it only when fn succeeds.
type memStore struct {
	mu      sync.Mutex
	catalog *memCatalog
	err     error
}

func newMemStore() *memStore {
	return &memStore{catalog: newMemCatalog()}
}

func (s *memStore) Read(_ context.Context, fn func(repository.Catalog) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	return fn(s.catalog.clone())
}

func (s *memStore) InTx(_ context.Context, fn func(repository.Catalog) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	tx := s.catalog.clone()
	if err := fn(tx); err != nil {
		return err
	}
	s.catalog = tx
	return nil
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event *models.ChangeEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// eventOfType matches a published event by type and entity id.
func eventOfType(eventType string, entityID int64) any {
	return mock.MatchedBy(func(e *models.ChangeEvent) bool {
		return e.Type == eventType && e.EntityID == entityID
	})
}
