// Package models contains the data models and DTOs for the video catalog.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups videos. Its name is unique across all categories.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Video is a catalog entry pointing at a YouTube video. Videos are never
// removed; IsActive=false hides them from every active view.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Video struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	YouTubeCode     string    `json:"youtube_code"`
	CategoryID      int64     `json:"category_id"`
	IsActive        bool      `json:"is_active"`
	DateLastChanged time.Time `json:"date_last_changed"`
}

// Base strips the internal bookkeeping fields.
func (v *Video) Base() VideoBase {
	return VideoBase{
		Title:       v.Title,
		YouTubeCode: v.YouTubeCode,
		CategoryID:  v.CategoryID,
	}
}

// VideoBase is the public shape of a single video.
type VideoBase struct {
	Title       string `json:"title"`
	YouTubeCode string `json:"youtube_code"`
	CategoryID  int64  `json:"category_id"`
}

// VideoUpdate carries a partial update; nil fields are left untouched.
type VideoUpdate struct {
	Title       *string `json:"title,omitempty"`
	YouTubeCode *string `json:"youtube_code,omitempty"`
	CategoryID  *int64  `json:"category_id,omitempty"`
}

// IsEmpty reports whether no field was supplied.
func (u VideoUpdate) IsEmpty() bool {
	return u.Title == nil && u.YouTubeCode == nil && u.CategoryID == nil
}

// CategorizedVideo is one row of the active-video/category join.
type CategorizedVideo struct {
	ID          int64  `json:"id"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	YouTubeCode string `json:"youtube_code"`
}

// CreateVideoDTO represents the request to create a video. Fields are
// pointers so that "required" only rejects a missing key: "" and 0 are
// valid values.
type CreateVideoDTO struct {
	Title       *string `json:"title" binding:"required"`
	YouTubeCode *string `json:"youtube_code" binding:"required"`
	CategoryID  *int64  `json:"category_id" binding:"required"`
}

// CategoryDTO represents the request to create or rename a category.
type CategoryDTO struct {
	Name *string `json:"name" binding:"required"`
}

// DeletedResponseDTO acknowledges a delete.
type DeletedResponseDTO struct {
	Deleted int64 `json:"Deleted"`
}

// RestoredResponseDTO acknowledges a restore.
type RestoredResponseDTO struct {
	Restore int64 `json:"Restore"`
}

// Change event types published after a committed mutation.
const (
	EventVideoCreated    = "video.created"
	EventVideoUpdated    = "video.updated"
	EventVideoDeleted    = "video.deleted"
	EventVideoRestored   = "video.restored"
	EventCategoryCreated = "category.created"
	EventCategoryRenamed = "category.renamed"
	EventCategoryDeleted = "category.deleted"
)

// ChangeEvent describes one committed catalog mutation.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ChangeEvent struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	EntityID   int64     `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data,omitempty"`
}

// NewChangeEvent stamps a fresh event id.
func NewChangeEvent(eventType string, entityID int64, occurredAt time.Time, data any) *ChangeEvent {
	return &ChangeEvent{
		ID:         uuid.New(),
		Type:       eventType,
		EntityID:   entityID,
		OccurredAt: occurredAt.UTC(),
		Data:       data,
	}
}

// ErrorResponse represents an error response.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}
