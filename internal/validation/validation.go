// Package validation gates catalog mutations on existence and state checks.
// Every rule is a read against the store; none of them writes.
package validation

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies why a mutation was refused.
type Kind int

const (
	// KindNotFound means the referenced entity is absent or in the wrong state.
	KindNotFound Kind = iota + 1
	// KindForbidden means the mutation would break a uniqueness or
	// referential-safety rule.
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Error is a terminal validation failure reported to the caller as is.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NotFound builds a KindNotFound error.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Forbidden builds a KindForbidden error.
func Forbidden(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is a validation Error of kind k.
func IsKind(err error, k Kind) bool {
	var vErr *Error
	return errors.As(err, &vErr) && vErr.Kind == k
}

// Predicates are the existence questions the rules are built from.
type Predicates interface {
	CategoryExists(ctx context.Context, categoryID int64) (bool, error)
	CategoryNameTaken(ctx context.Context, name string) (bool, error)
	VideoIsActive(ctx context.Context, videoID int64) (bool, error)
	VideoExists(ctx context.Context, videoID int64) (bool, error)
	ActiveVideoCount(ctx context.Context, categoryID int64) (int64, error)
}

// Messages reported to clients.
const (
	MsgNoSuchCategory    = "No such category"
	MsgNoSuchVideo       = "No such video"
	MsgNoActiveVideo     = "No active video with that ID"
	MsgInvalidCategoryID = "Invalid category id"
	MsgCategoryNameInUse = "Category name already in use"
	MsgCategoryHasVideos = "Can't delete category that contains active videos"
)

// CategoryMustExist fails with NotFound when the category row is absent.
func CategoryMustExist(ctx context.Context, p Predicates, categoryID int64, message string) error {
	ok, err := p.CategoryExists(ctx, categoryID)
	if err != nil {
		return err
	}
	if !ok {
		return NotFound("%s", message)
	}
	return nil
}

// CategoryNameMustBeFree fails with Forbidden when any category already has
// the exact name.
func CategoryNameMustBeFree(ctx context.Context, p Predicates, name string) error {
	taken, err := p.CategoryNameTaken(ctx, name)
	if err != nil {
		return err
	}
	if taken {
		return Forbidden("%s", MsgCategoryNameInUse)
	}
	return nil
}

// VideoMustBeActive fails with NotFound when the video is absent or
// soft-deleted; the two cases are not distinguished.
func VideoMustBeActive(ctx context.Context, p Predicates, videoID int64, message string) error {
	ok, err := p.VideoIsActive(ctx, videoID)
	if err != nil {
		return err
	}
	if !ok {
		return NotFound("%s", message)
	}
	return nil
}

// VideoMustExist fails with NotFound only when the row is absent.
func VideoMustExist(ctx context.Context, p Predicates, videoID int64) error {
	ok, err := p.VideoExists(ctx, videoID)
	if err != nil {
		return err
	}
	if !ok {
		return NotFound("%s", MsgNoSuchVideo)
	}
	return nil
}

// CategoryMustHaveNoActiveVideos fails with Forbidden while any active video
// references the category. Inactive videos do not count.
func CategoryMustHaveNoActiveVideos(ctx context.Context, p Predicates, categoryID int64) error {
	count, err := p.ActiveVideoCount(ctx, categoryID)
	if err != nil {
		return err
	}
	if count > 0 {
		return Forbidden("%s", MsgCategoryHasVideos)
	}
	return nil
}
