package service

import (
	"context"

	"github.com/ad-tracker/video-catalog-go/internal/db"
	"github.com/ad-tracker/video-catalog-go/internal/metrics"
	"github.com/ad-tracker/video-catalog-go/internal/models"
	"github.com/ad-tracker/video-catalog-go/internal/repository"
	"github.com/ad-tracker/video-catalog-go/internal/validation"
	"github.com/ad-tracker/video-catalog-go/pkg/logger"
	"go.uber.org/zap"
)

const entityCategory = "category"

// CategoryService handles categories. Unlike videos they are removed
// physically, and only when no active video references them.
type CategoryService struct {
	base
}

// NewCategoryService creates a new CategoryService instance.
func NewCategoryService(store Store, publisher EventPublisher, m *metrics.Metrics) *CategoryService {
	return &CategoryService{base: newBase(store, publisher, m)}
}

// Create inserts a category with a name no other category uses.
func (s *CategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	var category *models.Category
	err := s.store.InTx(ctx, func(c repository.Catalog) error {
		if err := validation.CategoryNameMustBeFree(ctx, c, name); err != nil {
			return err
		}
		created, err := c.CreateCategory(ctx, name)
		if err != nil {
			return err
		}
		category = created
		return nil
	})
	if err := s.finish(entityCategory, "create", nameConflict(err), zap.String("name", name)); err != nil {
		return nil, err
	}

	logger.L().Info("Category created",
		zap.Int64("categoryId", category.ID),
		zap.String("name", category.Name),
	)
	s.publish(ctx, models.NewChangeEvent(models.EventCategoryCreated, category.ID, s.now(), category))

	return category, nil
}

// Get returns one category.
func (s *CategoryService) Get(ctx context.Context, categoryID int64) (*models.Category, error) {
	var category *models.Category
	err := s.store.Read(ctx, func(c repository.Catalog) error {
		if err := validation.CategoryMustExist(ctx, c, categoryID, validation.MsgNoSuchCategory); err != nil {
			return err
		}
		var err error
		category, err = c.GetCategory(ctx, categoryID)
		return err
	})
	if err != nil {
		return nil, readError(entityCategory, err)
	}
	return category, nil
}

// Rename replaces the category name. Keeping the current name is allowed;
// taking another category's name is Forbidden.
func (s *CategoryService) Rename(ctx context.Context, categoryID int64, name string) (*models.Category, error) {
	var category *models.Category
	err := s.store.InTx(ctx, func(c repository.Catalog) error {
		if err := validation.CategoryMustExist(ctx, c, categoryID, validation.MsgNoSuchCategory); err != nil {
			return err
		}

		current, err := c.GetCategory(ctx, categoryID)
		if err != nil {
			return err
		}
		if current.Name != name {
			if err := validation.CategoryNameMustBeFree(ctx, c, name); err != nil {
				return err
			}
		}

		category, err = c.RenameCategory(ctx, categoryID, name)
		return err
	})
	if err := s.finish(entityCategory, "rename", nameConflict(err), zap.Int64("categoryId", categoryID)); err != nil {
		return nil, err
	}

	logger.L().Info("Category renamed",
		zap.Int64("categoryId", categoryID),
		zap.String("name", name),
	)
	s.publish(ctx, models.NewChangeEvent(models.EventCategoryRenamed, categoryID, s.now(), category))

	return category, nil
}

// Delete removes a category that has no active videos. Inactive videos may
// keep pointing at the removed id.
func (s *CategoryService) Delete(ctx context.Context, categoryID int64) error {
	err := s.store.InTx(ctx, func(c repository.Catalog) error {
		if err := validation.CategoryMustExist(ctx, c, categoryID, validation.MsgNoSuchCategory); err != nil {
			return err
		}
		if err := validation.CategoryMustHaveNoActiveVideos(ctx, c, categoryID); err != nil {
			return err
		}
		return c.DeleteCategory(ctx, categoryID)
	})
	if err := s.finish(entityCategory, "delete", err, zap.Int64("categoryId", categoryID)); err != nil {
		return err
	}

	logger.L().Info("Category deleted", zap.Int64("categoryId", categoryID))
	s.publish(ctx, models.NewChangeEvent(models.EventCategoryDeleted, categoryID, s.now(), nil))

	return nil
}

// List returns every category, newest first.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.store.Read(ctx, func(c repository.Catalog) error {
		var err error
		categories, err = c.ListCategories(ctx)
		return err
	})
	if err != nil {
		return nil, readError("categories", err)
	}
	return categories, nil
}

// nameConflict reports a unique index violation the same way the name check
// does. It happens when a concurrent writer commits the name first.
func nameConflict(err error) error {
	if db.IsDuplicateKey(err) {
		return validation.Forbidden("%s", validation.MsgCategoryNameInUse)
	}
	return err
}
