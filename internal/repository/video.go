package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/ad-tracker/video-catalog-go/internal/db"
	"github.com/ad-tracker/video-catalog-go/internal/models"
	"github.com/jackc/pgx/v5"
)

const videoColumns = "id, title, youtube_code, category_id, is_active, date_last_changed"

func (q *Queries) CreateVideo(ctx context.Context, video *models.Video) error {
	err := q.db.QueryRow(ctx, `
		INSERT INTO videos (title, youtube_code, category_id, is_active, date_last_changed)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`,
		video.Title,
		video.YouTubeCode,
		video.CategoryID,
		video.IsActive,
		video.DateLastChanged,
	).Scan(&video.ID)
	if err != nil {
		return db.WrapError(err, "create video")
	}
	return nil
}

// GetVideo returns the row regardless of its active flag.
func (q *Queries) GetVideo(ctx context.Context, videoID int64) (*models.Video, error) {
	row := q.db.QueryRow(ctx, `SELECT `+videoColumns+` FROM videos WHERE id = $1`, videoID)
	video, err := scanVideo(row)
	if err != nil {
		return nil, db.WrapError(err, "get video")
	}
	return video, nil
}

// ListActiveVideos orders by title in byte order so results do not depend on
// the database locale.
func (q *Queries) ListActiveVideos(ctx context.Context) ([]models.Video, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+videoColumns+`
		FROM videos
		WHERE is_active
		ORDER BY title COLLATE "C", id
	`)
	if err != nil {
		return nil, db.WrapError(err, "list active videos")
	}
	defer rows.Close()

	videos := make([]models.Video, 0)
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, *video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}

	return videos, nil
}

func (q *Queries) UpdateVideo(ctx context.Context, videoID int64, update models.VideoUpdate, changedAt time.Time) (*models.Video, error) {
	query, args, err := buildVideoUpdate(videoID, update, changedAt)
	if err != nil {
		return nil, fmt.Errorf("build video update: %w", err)
	}

	video, err := scanVideo(q.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, db.WrapError(err, "update video")
	}
	return video, nil
}

// buildVideoUpdate emits SET clauses only for supplied fields.
// date_last_changed is always written.
func buildVideoUpdate(videoID int64, update models.VideoUpdate, changedAt time.Time) (string, []any, error) {
	b := psql.Update("videos").Set("date_last_changed", changedAt)

	if update.Title != nil {
		b = b.Set("title", *update.Title)
	}
	if update.YouTubeCode != nil {
		b = b.Set("youtube_code", *update.YouTubeCode)
	}
	if update.CategoryID != nil {
		b = b.Set("category_id", *update.CategoryID)
	}

	return b.Where(squirrel.Eq{"id": videoID}).
		Suffix("RETURNING " + videoColumns).
		ToSql()
}

// SetVideoActive flips the soft-delete flag. The row is never removed.
func (q *Queries) SetVideoActive(ctx context.Context, videoID int64, active bool, changedAt time.Time) error {
	tag, err := q.db.Exec(ctx,
		`UPDATE videos SET is_active = $2, date_last_changed = $3 WHERE id = $1`,
		videoID, active, changedAt,
	)
	if err != nil {
		return db.WrapError(err, "set video active")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set video active: %w", db.ErrNotFound)
	}
	return nil
}

func (q *Queries) ListCategorizedVideos(ctx context.Context) ([]models.CategorizedVideo, error) {
	query, args, err := categorizedVideosQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("build categorized videos query: %w", err)
	}

	rows, err := q.db.Query(ctx, query, args...)
	if err != nil {
		return nil, db.WrapError(err, "list categorized videos")
	}
	defer rows.Close()

	result := make([]models.CategorizedVideo, 0)
	for rows.Next() {
		var cv models.CategorizedVideo
		if err := rows.Scan(&cv.ID, &cv.Category, &cv.Title, &cv.YouTubeCode); err != nil {
			return nil, fmt.Errorf("scan categorized video: %w", err)
		}
		result = append(result, cv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categorized videos: %w", err)
	}

	return result, nil
}

func categorizedVideosQuery() squirrel.SelectBuilder {
	return psql.
		Select("v.id", "c.name", "v.title", "v.youtube_code").
		From("videos v").
		Join("categories c ON c.id = v.category_id").
		Where("v.is_active").
		OrderBy(`c.name COLLATE "C"`, `v.title COLLATE "C"`, "v.id")
}

func scanVideo(row pgx.Row) (*models.Video, error) {
	video := &models.Video{}
	err := row.Scan(
		&video.ID,
		&video.Title,
		&video.YouTubeCode,
		&video.CategoryID,
		&video.IsActive,
		&video.DateLastChanged,
	)
	if err != nil {
		return nil, err
	}
	video.DateLastChanged = video.DateLastChanged.UTC()
	return video, nil
}
