package repository

import (
	"context"
	"fmt"

	"github.com/ad-tracker/video-catalog-go/internal/db"
	"github.com/ad-tracker/video-catalog-go/internal/models"
)

func (q *Queries) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	category := &models.Category{Name: name}
	err := q.db.QueryRow(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id`,
		name,
	).Scan(&category.ID)
	if err != nil {
		return nil, db.WrapError(err, "create category")
	}
	return category, nil
}

func (q *Queries) GetCategory(ctx context.Context, categoryID int64) (*models.Category, error) {
	category := &models.Category{}
	err := q.db.QueryRow(ctx,
		`SELECT id, name FROM categories WHERE id = $1`,
		categoryID,
	).Scan(&category.ID, &category.Name)
	if err != nil {
		return nil, db.WrapError(err, "get category")
	}
	return category, nil
}

func (q *Queries) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := q.db.Query(ctx, `SELECT id, name FROM categories ORDER BY id DESC`)
	if err != nil {
		return nil, db.WrapError(err, "list categories")
	}
	defer rows.Close()

	categories := make([]models.Category, 0)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	return categories, nil
}

func (q *Queries) RenameCategory(ctx context.Context, categoryID int64, name string) (*models.Category, error) {
	category := &models.Category{}
	err := q.db.QueryRow(ctx,
		`UPDATE categories SET name = $2 WHERE id = $1 RETURNING id, name`,
		categoryID, name,
	).Scan(&category.ID, &category.Name)
	if err != nil {
		return nil, db.WrapError(err, "rename category")
	}
	return category, nil
}

// DeleteCategory physically removes the row. Categories have no soft-delete.
func (q *Queries) DeleteCategory(ctx context.Context, categoryID int64) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, categoryID)
	if err != nil {
		return db.WrapError(err, "delete category")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete category: %w", db.ErrNotFound)
	}
	return nil
}
