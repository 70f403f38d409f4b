// Package handler provides HTTP request handlers for the application.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ad-tracker/video-catalog-go/internal/middleware"
	"github.com/ad-tracker/video-catalog-go/internal/models"
	"github.com/ad-tracker/video-catalog-go/internal/service"
	"github.com/ad-tracker/video-catalog-go/internal/validation"
	"github.com/ad-tracker/video-catalog-go/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// parseID reads the :id path parameter. On failure it has already written
// a 400 response.
func parseID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id: "+raw)
		return 0, false
	}
	return id, true
}

func badPayload(c *gin.Context, err error) {
	logger.L().Warn("Invalid request payload",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("requestId", middleware.GetRequestID(c)),
	)
	respondError(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, models.ErrorResponse{
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Timestamp: time.Now(),
		Path:      c.Request.URL.Path,
	})
}

// handleError maps service errors onto status codes: NotFound 404,
// Forbidden 403, anything else 500 without leaking the cause.
func handleError(c *gin.Context, err error) {
	_ = c.Error(err)

	var vErr *validation.Error
	if errors.As(err, &vErr) {
		status := http.StatusNotFound
		if vErr.Kind == validation.KindForbidden {
			status = http.StatusForbidden
		}
		respondError(c, status, vErr.Message)
		return
	}

	var pErr *service.ProcessingError
	if errors.As(err, &pErr) {
		logger.L().Error("Processing error",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
			zap.String("requestId", middleware.GetRequestID(c)),
		)
		respondError(c, http.StatusInternalServerError, "Failed to process request")
		return
	}

	logger.L().Error("Unexpected error",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("requestId", middleware.GetRequestID(c)),
	)
	respondError(c, http.StatusInternalServerError, "An unexpected error occurred")
}
