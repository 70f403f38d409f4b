package handler

import (
	"context"
	"net/http"

	"github.com/ad-tracker/video-catalog-go/internal/models"
	"github.com/gin-gonic/gin"
)

// CatalogQuery serves the cross-table projections.
type CatalogQuery interface {
	CategorizedVideos(ctx context.Context) ([]models.CategorizedVideo, error)
}

// CatalogHandler handles GET /categorized_video.
type CatalogHandler struct {
	query CatalogQuery
}

// NewCatalogHandler creates a new CatalogHandler instance.
func NewCatalogHandler(query CatalogQuery) *CatalogHandler {
	return &CatalogHandler{query: query}
}

func (h *CatalogHandler) CategorizedVideos(c *gin.Context) {
	rows, err := h.query.CategorizedVideos(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
