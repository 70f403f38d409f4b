// Package service implements the catalog mutations and queries. Every
// mutation runs its validation rules and its write inside one store
// transaction, then publishes a change event once the transaction commits.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/ad-tracker/video-catalog-go/internal/metrics"
	"github.com/ad-tracker/video-catalog-go/internal/models"
	"github.com/ad-tracker/video-catalog-go/internal/repository"
	"github.com/ad-tracker/video-catalog-go/internal/validation"
	"github.com/ad-tracker/video-catalog-go/pkg/logger"
	"go.uber.org/zap"
)

const publishTimeout = 10 * time.Second

// Store scopes catalog access to one connection (Read) or one retried
// transaction (InTx). repository.Store implements it.
type Store interface {
	Read(ctx context.Context, fn func(repository.Catalog) error) error
	InTx(ctx context.Context, fn func(repository.Catalog) error) error
}

var _ Store = (*repository.Store)(nil)

// base carries the collaborators shared by the services.
type base struct {
	store     Store
	publisher EventPublisher
	metrics   *metrics.Metrics
	now       func() time.Time
}

func newBase(store Store, publisher EventPublisher, m *metrics.Metrics) base {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return base{
		store:     store,
		publisher: publisher,
		metrics:   m,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// finish records the mutation outcome and converts store failures into a
// ProcessingError. Validation errors are returned unchanged.
func (b *base) finish(entity, operation string, err error, fields ...zap.Field) error {
	b.metrics.ObserveMutation(entity, operation, err)
	if err == nil {
		return nil
	}

	var vErr *validation.Error
	if errors.As(err, &vErr) {
		logger.L().Warn("Catalog mutation rejected",
			append(fields,
				zap.String("entity", entity),
				zap.String("operation", operation),
				zap.String("kind", vErr.Kind.String()),
				zap.String("reason", vErr.Message),
			)...,
		)
		return err
	}

	logger.L().Error("Catalog mutation failed",
		append(fields,
			zap.String("entity", entity),
			zap.String("operation", operation),
			zap.Error(err),
		)...,
	)
	return &ProcessingError{Message: "failed to " + operation + " " + entity, Cause: err}
}

// publish delivers a change event for a committed mutation. Failures are
// logged and counted; the mutation has already succeeded.
func (b *base) publish(ctx context.Context, event *models.ChangeEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := b.publisher.Publish(ctx, event); err != nil {
		b.metrics.ObservePublishFailure(event.Type)
		logger.L().Error("Failed to publish change event",
			zap.Error(err),
			zap.String("eventId", event.ID.String()),
			zap.String("eventType", event.Type),
			zap.Int64("entityId", event.EntityID),
		)
	}
}

func readError(entity string, err error) error {
	if err == nil {
		return nil
	}
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		return err
	}
	return &ProcessingError{Message: "failed to read " + entity, Cause: err}
}
