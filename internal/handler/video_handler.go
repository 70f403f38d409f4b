package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/ad-tracker/video-catalog-go/internal/models"
	"github.com/gin-gonic/gin"
)

// VideoService is the video lifecycle used by VideoHandler.
type VideoService interface {
	Create(ctx context.Context, input models.VideoBase) (*models.Video, error)
	SoftDelete(ctx context.Context, videoID int64) error
	Restore(ctx context.Context, videoID int64) error
	Update(ctx context.Context, videoID int64, update models.VideoUpdate) (*models.Video, error)
	Get(ctx context.Context, videoID int64) (*models.VideoBase, error)
	ListActive(ctx context.Context) ([]models.Video, error)
}

// VideoHandler handles the /video and /undelete routes.
type VideoHandler struct {
	videos VideoService
}

// NewVideoHandler creates a new VideoHandler instance.
func NewVideoHandler(videos VideoService) *VideoHandler {
	return &VideoHandler{videos: videos}
}

// Create handles POST /video.
func (h *VideoHandler) Create(c *gin.Context) {
	var dto models.CreateVideoDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		badPayload(c, err)
		return
	}

	video, err := h.videos.Create(c.Request.Context(), models.VideoBase{
		Title:       *dto.Title,
		YouTubeCode: *dto.YouTubeCode,
		CategoryID:  *dto.CategoryID,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, video)
}

// List handles GET /video.
func (h *VideoHandler) List(c *gin.Context) {
	videos, err := h.videos.ListActive(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, videos)
}

// Get handles GET /video/:id.
func (h *VideoHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	video, err := h.videos.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

// Update handles PUT /video/:id. Absent fields are left untouched and an
// empty body only refreshes date_last_changed.
func (h *VideoHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var update models.VideoUpdate
	if err := c.ShouldBindJSON(&update); err != nil && !errors.Is(err, io.EOF) {
		badPayload(c, err)
		return
	}

	video, err := h.videos.Update(c.Request.Context(), id, update)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

// Delete handles DELETE /video/:id.
func (h *VideoHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.videos.SoftDelete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.DeletedResponseDTO{Deleted: id})
}

// Restore handles DELETE /undelete/:id.
func (h *VideoHandler) Restore(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.videos.Restore(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.RestoredResponseDTO{Restore: id})
}
