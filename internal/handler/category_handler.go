package handler

import (
	"context"
	"net/http"

	"github.com/ad-tracker/video-catalog-go/internal/models"
	"github.com/gin-gonic/gin"
)

// CategoryService is the category lifecycle used by CategoryHandler.
type CategoryService interface {
	Create(ctx context.Context, name string) (*models.Category, error)
	Get(ctx context.Context, categoryID int64) (*models.Category, error)
	Rename(ctx context.Context, categoryID int64, name string) (*models.Category, error)
	Delete(ctx context.Context, categoryID int64) error
	List(ctx context.Context) ([]models.Category, error)
}

// CategoryHandler handles the /category routes.
type CategoryHandler struct {
	categories CategoryService
}

// NewCategoryHandler creates a new CategoryHandler instance.
func NewCategoryHandler(categories CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var dto models.CategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		badPayload(c, err)
		return
	}

	category, err := h.categories.Create(c.Request.Context(), *dto.Name)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	category, err := h.categories.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Rename(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var dto models.CategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		badPayload(c, err)
		return
	}

	category, err := h.categories.Rename(c.Request.Context(), id, *dto.Name)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.DeletedResponseDTO{Deleted: id})
}
