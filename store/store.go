// Package store is the authoritative post store boundary. The feed
// reconciler talks only to the PostStore interface; the MySQL implementation
// is the system of record and the in-memory one backs tests.
package store

import (
	"context"
	"errors"

	"github.com/weatherfit/backend/models"
)

// ErrNotFound is returned when a referenced post no longer exists.
var ErrNotFound = errors.New("post not found")

// PostUpdate carries the fields an edit may change. A nil ImageURL keeps the
// stored image; updates never touch author, likes or comments.
type PostUpdate struct {
	Title    string
	Content  string
	ImageURL *string
}

// PostStore is the minimal document-store contract the reconciler needs.
//
// AddLike and RemoveLike have set-union/set-difference semantics and are
// safe under concurrent callers: a duplicate add is absorbed, a remove of an
// absent member is a no-op. AppendComment is a safe append; concurrent
// commenters never clobber each other's entries.
type PostStore interface {
	Get(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	Create(ctx context.Context, post *models.Post) (uint, error)
	Update(ctx context.Context, id uint, upd PostUpdate) error
	Delete(ctx context.Context, id uint) error

	AddLike(ctx context.Context, postID, userID uint) error
	RemoveLike(ctx context.Context, postID, userID uint) error
	AppendComment(ctx context.Context, postID uint, comment models.Comment) error
}
