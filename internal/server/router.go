// Package server assembles the gin engine.
package server

import (
	"github.com/ad-tracker/video-catalog-go/internal/handler"
	"github.com/ad-tracker/video-catalog-go/internal/metrics"
	"github.com/ad-tracker/video-catalog-go/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Videos     *handler.VideoHandler
	Categories *handler.CategoryHandler
	Catalog    *handler.CatalogHandler
	Health     *handler.HealthHandler
}

// NewRouter builds the engine. m may be nil, in which case no metrics are
// recorded and metricsPath is not mounted.
func NewRouter(h Handlers, m *metrics.Metrics, metricsPath string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(middleware.Recovery(), middleware.RequestID(), middleware.AccessLog())
	if m != nil {
		r.Use(middleware.Metrics(m))
	}

	r.GET("/", handler.Home)

	r.POST("/video", h.Videos.Create)
	r.GET("/video", h.Videos.List)
	r.GET("/video/:id", h.Videos.Get)
	r.PUT("/video/:id", h.Videos.Update)
	r.DELETE("/video/:id", h.Videos.Delete)
	r.DELETE("/undelete/:id", h.Videos.Restore)

	r.GET("/category", h.Categories.List)
	r.POST("/category", h.Categories.Create)
	r.GET("/category/:id", h.Categories.Get)
	r.PUT("/category/:id", h.Categories.Rename)
	r.DELETE("/category/:id", h.Categories.Delete)

	r.GET("/categorized_video", h.Catalog.CategorizedVideos)

	health := r.Group("/health")
	{
		health.GET("/live", h.Health.LivenessProbe)
		health.GET("/ready", h.Health.ReadinessProbe)
	}

	if m != nil && metricsPath != "" {
		r.GET(metricsPath, gin.WrapH(m.Handler()))
	}

	return r
}
