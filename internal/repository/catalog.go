package repository

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/ad-tracker/video-catalog-go/internal/db"
	"github.com/ad-tracker/video-catalog-go/internal/models"
)

// Catalog defines the reads, existence predicates and writes over the
// categories and videos tables. Implementations are bound to one connection
// or transaction.
type Catalog interface {
	// CategoryExists reports whether a category row with the id exists.
	CategoryExists(ctx context.Context, categoryID int64) (bool, error)

	// CategoryNameTaken reports whether any category has exactly this name.
	CategoryNameTaken(ctx context.Context, name string) (bool, error)

	// VideoIsActive reports whether the video exists and is active.
	VideoIsActive(ctx context.Context, videoID int64) (bool, error)

	// VideoExists reports whether the video row exists in any state.
	VideoExists(ctx context.Context, videoID int64) (bool, error)

	// ActiveVideoCount counts active videos referencing the category.
	ActiveVideoCount(ctx context.Context, categoryID int64) (int64, error)

	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	GetCategory(ctx context.Context, categoryID int64) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	RenameCategory(ctx context.Context, categoryID int64, name string) (*models.Category, error)
	DeleteCategory(ctx context.Context, categoryID int64) error

	// CreateVideo inserts video and fills in its generated id.
	CreateVideo(ctx context.Context, video *models.Video) error
	GetVideo(ctx context.Context, videoID int64) (*models.Video, error)
	ListActiveVideos(ctx context.Context) ([]models.Video, error)
	UpdateVideo(ctx context.Context, videoID int64, update models.VideoUpdate, changedAt time.Time) (*models.Video, error)
	SetVideoActive(ctx context.Context, videoID int64, active bool, changedAt time.Time) error

	// ListCategorizedVideos joins active videos with their category name.
	ListCategorizedVideos(ctx context.Context) ([]models.CategorizedVideo, error)
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Queries implements Catalog on top of a Querier.
type Queries struct {
	db Querier
}

var _ Catalog = (*Queries)(nil)

// NewQueries binds a Catalog to q.
func NewQueries(q Querier) *Queries {
	return &Queries{db: q}
}

func (q *Queries) CategoryExists(ctx context.Context, categoryID int64) (bool, error) {
	return q.exists(ctx, "category exists",
		`SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`, categoryID)
}

func (q *Queries) CategoryNameTaken(ctx context.Context, name string) (bool, error) {
	return q.exists(ctx, "category name taken",
		`SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1)`, name)
}

func (q *Queries) VideoIsActive(ctx context.Context, videoID int64) (bool, error) {
	return q.exists(ctx, "video is active",
		`SELECT EXISTS(SELECT 1 FROM videos WHERE id = $1 AND is_active)`, videoID)
}

func (q *Queries) VideoExists(ctx context.Context, videoID int64) (bool, error) {
	return q.exists(ctx, "video exists",
		`SELECT EXISTS(SELECT 1 FROM videos WHERE id = $1)`, videoID)
}

func (q *Queries) ActiveVideoCount(ctx context.Context, categoryID int64) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx,
		`SELECT count(*) FROM videos WHERE category_id = $1 AND is_active`,
		categoryID,
	).Scan(&count)
	if err != nil {
		return 0, db.WrapError(err, "count active videos")
	}
	return count, nil
}

func (q *Queries) exists(ctx context.Context, operation, query string, arg any) (bool, error) {
	var exists bool
	if err := q.db.QueryRow(ctx, query, arg).Scan(&exists); err != nil {
		return false, db.WrapError(err, operation)
	}
	return exists, nil
}
