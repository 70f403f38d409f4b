package service

import (
	"context"

	"github.com/ad-tracker/video-catalog-go/internal/models"
	"github.com/ad-tracker/video-catalog-go/internal/repository"
)

// CatalogQueryService serves read-only projections across both tables.
type CatalogQueryService struct {
	store Store
}

// NewCatalogQueryService creates a new CatalogQueryService instance.
func NewCatalogQueryService(store Store) *CatalogQueryService {
	return &CatalogQueryService{store: store}
}

// CategorizedVideos lists active videos with their category name, ordered
// by category name then title.
func (s *CatalogQueryService) CategorizedVideos(ctx context.Context) ([]models.CategorizedVideo, error) {
	var rows []models.CategorizedVideo
	err := s.store.Read(ctx, func(c repository.Catalog) error {
		var err error
		rows, err = c.ListCategorizedVideos(ctx)
		return err
	})
	if err != nil {
		return nil, readError("categorized videos", err)
	}
	return rows, nil
}
