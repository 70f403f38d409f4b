package handler

import (
	"net/http"
	"testing"

	"github.com/ad-tracker/video-catalog-go/internal/models"
	"github.com/ad-tracker/video-catalog-go/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCategoryRouter(svc CategoryService) *gin.Engine {
	h := NewCategoryHandler(svc)
	r := gin.New()
	r.GET("/category", h.List)
	r.POST("/category", h.Create)
	r.GET("/category/:id", h.Get)
	r.PUT("/category/:id", h.Rename)
	r.DELETE("/category/:id", h.Delete)
	return r
}

func TestCategoryHandler_Create(t *testing.T) {
	svc := new(mockCategoryService)
	svc.On("Create", mock.Anything, "Tech").Return(&models.Category{ID: 1, Name: "Tech"}, nil).Once()
	svc.On("Create", mock.Anything, "Tech").Return(nil, validation.Forbidden("%s", validation.MsgCategoryNameInUse)).Once()
	r := newCategoryRouter(svc)

	w := do(r, http.MethodPost, "/category", `{"name":"Tech"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Tech"}`, w.Body.String())

	w = do(r, http.MethodPost, "/category", `{"name":"Tech"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, validation.MsgCategoryNameInUse, decodeError(t, w).Message)

	w = do(r, http.MethodPost, "/category", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertExpectations(t)
}

func TestCategoryHandler_EmptyName(t *testing.T) {
	svc := new(mockCategoryService)
	svc.On("Create", mock.Anything, "").Return(&models.Category{ID: 3, Name: ""}, nil)
	svc.On("Rename", mock.Anything, int64(1), "").Return(&models.Category{ID: 1, Name: ""}, nil)
	r := newCategoryRouter(svc)

	w := do(r, http.MethodPost, "/category", `{"name":""}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":3,"name":""}`, w.Body.String())

	w = do(r, http.MethodPut, "/category/1", `{"name":""}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"name":""}`, w.Body.String())

	w = do(r, http.MethodPut, "/category/1", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertExpectations(t)
}

func TestCategoryHandler_GetAndList(t *testing.T) {
	svc := new(mockCategoryService)
	svc.On("Get", mock.Anything, int64(1)).Return(&models.Category{ID: 1, Name: "Tech"}, nil)
	svc.On("Get", mock.Anything, int64(5)).Return(nil, validation.NotFound("%s", validation.MsgNoSuchCategory))
	svc.On("List", mock.Anything).Return([]models.Category{{ID: 2, Name: "Music"}, {ID: 1, Name: "Tech"}}, nil)
	r := newCategoryRouter(svc)

	w := do(r, http.MethodGet, "/category/1", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/category/5", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/category", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":2,"name":"Music"},{"id":1,"name":"Tech"}]`, w.Body.String())
}

func TestCategoryHandler_Rename(t *testing.T) {
	svc := new(mockCategoryService)
	svc.On("Rename", mock.Anything, int64(1), "Science").Return(&models.Category{ID: 1, Name: "Science"}, nil)
	svc.On("Rename", mock.Anything, int64(1), "Music").Return(nil, validation.Forbidden("%s", validation.MsgCategoryNameInUse))
	r := newCategoryRouter(svc)

	w := do(r, http.MethodPut, "/category/1", `{"name":"Science"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPut, "/category/1", `{"name":"Music"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodPut, "/category/x", `{"name":"Music"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoryHandler_Delete(t *testing.T) {
	svc := new(mockCategoryService)
	svc.On("Delete", mock.Anything, int64(1)).Return(validation.Forbidden("%s", validation.MsgCategoryHasVideos)).Once()
	svc.On("Delete", mock.Anything, int64(1)).Return(nil).Once()
	r := newCategoryRouter(svc)

	w := do(r, http.MethodDelete, "/category/1", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, validation.MsgCategoryHasVideos, decodeError(t, w).Message)

	w = do(r, http.MethodDelete, "/category/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"Deleted":1}`, w.Body.String())
}
