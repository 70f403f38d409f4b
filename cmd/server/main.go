package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/ad-tracker/video-catalog-go/internal/config"
	"github.com/ad-tracker/video-catalog-go/internal/db"
	"github.com/ad-tracker/video-catalog-go/internal/handler"
	"github.com/ad-tracker/video-catalog-go/internal/metrics"
	"github.com/ad-tracker/video-catalog-go/internal/repository"
	"github.com/ad-tracker/video-catalog-go/internal/server"
	"github.com/ad-tracker/video-catalog-go/internal/service"
	"github.com/ad-tracker/video-catalog-go/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "video-catalog: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	gin.SetMode(cfg.Server.Mode)

	ctx := context.Background()

	if cfg.Database.AutoMigrate {
		version, err := db.MigrateUp(cfg.Database.URL())
		if err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		logger.Log.Info("Database schema is up to date", zap.Uint("version", version))
	}

	pool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close(pool)

	logger.Log.Info("Database connection established",
		zap.String("host", cfg.Database.Host),
		zap.Int32("maxConns", pool.Config().MaxConns),
	)

	var (
		publisher service.EventPublisher = service.NoopPublisher{}
		broker    handler.BrokerHealth
	)
	if cfg.Events.Enabled {
		mp, err := service.NewMessagePublisher(&cfg.Events)
		if err != nil {
			return fmt.Errorf("connect event broker: %w", err)
		}
		publisher = mp
		broker = mp
	} else {
		logger.Log.Info("Change events disabled")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Log.Warn("Failed to close event publisher", zap.Error(err))
		}
	}()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	store := repository.NewStore(pool, cfg.Database.TxRetries)
	router := server.NewRouter(server.Handlers{
		Videos:     handler.NewVideoHandler(service.NewVideoService(store, publisher, m)),
		Categories: handler.NewCategoryHandler(service.NewCategoryService(store, publisher, m)),
		Catalog:    handler.NewCatalogHandler(service.NewCatalogQueryService(store)),
		Health:     handler.NewHealthHandler(store, broker),
	}, m, cfg.Metrics.Path)

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Log.Info("Server starting", zap.Int("port", cfg.Server.Port))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-shutdown:
		logger.Log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Log.Error("Graceful shutdown failed", zap.Error(err))
			if err := srv.Close(); err != nil {
				logger.Log.Error("Failed to close server", zap.Error(err))
			}
			return err
		}

		logger.Log.Info("Server stopped gracefully")
	}

	return nil
}
