package service

import (
	"context"

	"github.com/ad-tracker/video-catalog-go/internal/models"
)

// EventPublisher delivers committed change events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event *models.ChangeEvent) error
	Close() error
}

// NoopPublisher discards events. It is used when events are disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, *models.ChangeEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
