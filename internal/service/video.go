package service

import (
	"context"

	"github.com/ad-tracker/video-catalog-go/internal/metrics"
	"github.com/ad-tracker/video-catalog-go/internal/models"
	"github.com/ad-tracker/video-catalog-go/internal/repository"
	"github.com/ad-tracker/video-catalog-go/internal/validation"
	"github.com/ad-tracker/video-catalog-go/pkg/logger"
	"go.uber.org/zap"
)

const entityVideo = "video"

// VideoService handles the video lifecycle. Videos are soft-deleted only.
type VideoService struct {
	base
}

// NewVideoService creates a new VideoService instance.
func NewVideoService(store Store, publisher EventPublisher, m *metrics.Metrics) *VideoService {
	return &VideoService{base: newBase(store, publisher, m)}
}

// Create inserts an active video after checking that its category exists.
func (s *VideoService) Create(ctx context.Context, input models.VideoBase) (*models.Video, error) {
	video := &models.Video{
		Title:           input.Title,
		YouTubeCode:     input.YouTubeCode,
		CategoryID:      input.CategoryID,
		IsActive:        true,
		DateLastChanged: s.now(),
	}

	err := s.store.InTx(ctx, func(c repository.Catalog) error {
		if err := validation.CategoryMustExist(ctx, c, input.CategoryID, validation.MsgNoSuchCategory); err != nil {
			return err
		}
		return c.CreateVideo(ctx, video)
	})
	if err := s.finish(entityVideo, "create", err, zap.Int64("categoryId", input.CategoryID)); err != nil {
		return nil, err
	}

	logger.L().Info("Video created",
		zap.Int64("videoId", video.ID),
		zap.Int64("categoryId", video.CategoryID),
		zap.String("youtubeCode", video.YouTubeCode),
	)
	s.publish(ctx, models.NewChangeEvent(models.EventVideoCreated, video.ID, video.DateLastChanged, video))

	return video, nil
}

// SoftDelete marks an active video inactive. Deleting an inactive or
// unknown video reports the same NotFound.
func (s *VideoService) SoftDelete(ctx context.Context, videoID int64) error {
	changedAt := s.now()

	err := s.store.InTx(ctx, func(c repository.Catalog) error {
		if err := validation.VideoMustBeActive(ctx, c, videoID, validation.MsgNoSuchVideo); err != nil {
			return err
		}
		return c.SetVideoActive(ctx, videoID, false, changedAt)
	})
	if err := s.finish(entityVideo, "delete", err, zap.Int64("videoId", videoID)); err != nil {
		return err
	}

	logger.L().Info("Video soft-deleted", zap.Int64("videoId", videoID))
	s.publish(ctx, models.NewChangeEvent(models.EventVideoDeleted, videoID, changedAt, nil))

	return nil
}

// Restore marks any existing video active. Restoring an active video
// succeeds and only bumps its change timestamp.
func (s *VideoService) Restore(ctx context.Context, videoID int64) error {
	changedAt := s.now()

	err := s.store.InTx(ctx, func(c repository.Catalog) error {
		if err := validation.VideoMustExist(ctx, c, videoID); err != nil {
			return err
		}
		return c.SetVideoActive(ctx, videoID, true, changedAt)
	})
	if err := s.finish(entityVideo, "restore", err, zap.Int64("videoId", videoID)); err != nil {
		return err
	}

	logger.L().Info("Video restored", zap.Int64("videoId", videoID))
	s.publish(ctx, models.NewChangeEvent(models.EventVideoRestored, videoID, changedAt, nil))

	return nil
}

// Update applies the supplied fields to an active video and returns the
// full record.
func (s *VideoService) Update(ctx context.Context, videoID int64, update models.VideoUpdate) (*models.Video, error) {
	changedAt := s.now()

	var video *models.Video
	err := s.store.InTx(ctx, func(c repository.Catalog) error {
		if err := validation.VideoMustBeActive(ctx, c, videoID, validation.MsgNoSuchVideo); err != nil {
			return err
		}
		if update.CategoryID != nil {
			if err := validation.CategoryMustExist(ctx, c, *update.CategoryID, validation.MsgInvalidCategoryID); err != nil {
				return err
			}
		}

		updated, err := c.UpdateVideo(ctx, videoID, update, changedAt)
		if err != nil {
			return err
		}
		video = updated
		return nil
	})
	if err := s.finish(entityVideo, "update", err, zap.Int64("videoId", videoID)); err != nil {
		return nil, err
	}

	logger.L().Info("Video updated",
		zap.Int64("videoId", videoID),
		zap.Bool("emptyUpdate", update.IsEmpty()),
	)
	s.publish(ctx, models.NewChangeEvent(models.EventVideoUpdated, videoID, changedAt, update))

	return video, nil
}

// Get returns the public fields of an active video.
func (s *VideoService) Get(ctx context.Context, videoID int64) (*models.VideoBase, error) {
	var result models.VideoBase
	err := s.store.Read(ctx, func(c repository.Catalog) error {
		if err := validation.VideoMustBeActive(ctx, c, videoID, validation.MsgNoActiveVideo); err != nil {
			return err
		}
		video, err := c.GetVideo(ctx, videoID)
		if err != nil {
			return err
		}
		result = video.Base()
		return nil
	})
	if err != nil {
		return nil, readError(entityVideo, err)
	}
	return &result, nil
}

// ListActive returns active videos ordered by title.
func (s *VideoService) ListActive(ctx context.Context) ([]models.Video, error) {
	var videos []models.Video
	err := s.store.Read(ctx, func(c repository.Catalog) error {
		var err error
		videos, err = c.ListActiveVideos(ctx)
		return err
	})
	if err != nil {
		return nil, readError("videos", err)
	}
	return videos, nil
}
