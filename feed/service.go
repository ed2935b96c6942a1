package feed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/weatherfit/backend/models"
	"github.com/weatherfit/backend/store"
)

// PostInput carries the fields of a new post.
type PostInput struct {
	Title    string
	Content  string
	ImageURL *string
	Author   string
	AuthorID uint
}

// PostEdit carries the fields an edit may change. A nil ImageURL keeps the
// stored image.
type PostEdit struct {
	Title    string
	Content  string
	ImageURL *string
}

// LikeResult is the confirmed like state after a toggle, taken from the
// re-read authoritative document, for the heart icon and count fragments.
type LikeResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

// Service is the feed reconciler. It serializes the read-modify-write
// sequences behind like/comment/edit/delete so the cache never holds a
// state the store has not confirmed: every mutation re-reads the
// authoritative document before the cache entry is touched, then publishes
// exactly one feed-changed notification.
type Service struct {
	store    store.PostStore
	cache    *Cache
	notifier *Notifier
	logger   *zap.SugaredLogger
}

// NewService wires the reconciler to its store, cache and notifier.
func NewService(st store.PostStore, cache *Cache, notifier *Notifier, logger *zap.SugaredLogger) *Service {
	return &Service{store: st, cache: cache, notifier: notifier, logger: logger}
}

// Posts returns the cached feed, newest first.
func (s *Service) Posts() []models.Post {
	return s.cache.All()
}

// Post returns a single cached post.
func (s *Service) Post(id uint) (models.Post, bool) {
	return s.cache.Get(id)
}

// LoadAll refreshes the whole cache from the store. On failure the existing
// cache is left untouched so the view shows stale data instead of nothing;
// there is no automatic retry.
func (s *Service) LoadAll(ctx context.Context) error {
	posts, err := s.store.List(ctx)
	if err != nil {
		if s.logger != nil {
			s.logger.Warnw("feed refresh failed, keeping stale cache", "error", err)
		}
		return fmt.Errorf("load posts: %w", err)
	}
	s.cache.ReplaceAll(posts)
	s.notifier.Publish(ctx)
	return nil
}

// ToggleLike flips userID's membership in the post's likedBy set: present
// removes, absent adds, strict XOR. The membership check and the write are
// not one atomic step; two racing toggles can both observe the same state,
// but the store's set semantics absorb a duplicate add, so the likedBy
// invariant holds even when the user-visible outcome of a rapid click burst
// lags the last click.
func (s *Service) ToggleLike(ctx context.Context, postID, userID uint) (LikeResult, error) {
	if userID == 0 {
		return LikeResult{}, ErrUnauthenticated
	}

	post, err := s.store.Get(ctx, postID)
	if err != nil {
		return LikeResult{}, mapStoreErr(err)
	}

	liked := post.LikedByUser(userID)
	if liked {
		err = s.store.RemoveLike(ctx, postID, userID)
	} else {
		err = s.store.AddLike(ctx, postID, userID)
	}
	if err != nil {
		return LikeResult{}, mapStoreErr(err)
	}

	updated, err := s.store.Get(ctx, postID)
	if err != nil {
		return LikeResult{}, mapStoreErr(err)
	}
	s.cache.Set(*updated)
	s.notifier.Publish(ctx)

	return LikeResult{Liked: !liked, LikeCount: updated.LikeCount()}, nil
}

// AddComment appends a comment to the post's comment list. The append is a
// single atomic store operation, so concurrent commenters never clobber
// each other. Returns the re-read post so an open detail view can
// re-render from confirmed state.
func (s *Service) AddComment(ctx context.Context, postID uint, text, author string, authorID uint) (models.Post, error) {
	if authorID == 0 {
		return models.Post{}, ErrUnauthenticated
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Post{}, fmt.Errorf("%w: empty comment", ErrInvalidInput)
	}

	comment := models.Comment{
		ID:       uuid.NewString(),
		AuthorID: authorID,
		Author:   author,
		Text:     text,
	}
	if err := s.store.AppendComment(ctx, postID, comment); err != nil {
		return models.Post{}, mapStoreErr(err)
	}

	updated, err := s.store.Get(ctx, postID)
	if err != nil {
		return models.Post{}, mapStoreErr(err)
	}
	s.cache.Set(*updated)
	s.notifier.Publish(ctx)
	return *updated, nil
}

// CreatePost persists a new post with empty likedBy and comments; the store
// assigns id and creation time.
func (s *Service) CreatePost(ctx context.Context, in PostInput) (models.Post, error) {
	if in.AuthorID == 0 {
		return models.Post{}, ErrUnauthenticated
	}
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" || content == "" {
		return models.Post{}, fmt.Errorf("%w: title and content are required", ErrInvalidInput)
	}

	post := &models.Post{
		Title:    title,
		Content:  content,
		ImageURL: in.ImageURL,
		Author:   in.Author,
		AuthorID: in.AuthorID,
	}
	id, err := s.store.Create(ctx, post)
	if err != nil {
		return models.Post{}, fmt.Errorf("create post: %w", err)
	}

	created, err := s.store.Get(ctx, id)
	if err != nil {
		return models.Post{}, mapStoreErr(err)
	}
	s.cache.Set(*created)
	s.notifier.Publish(ctx)
	return *created, nil
}

// UpdatePost edits title/content/imageUrl of the caller's own post, then
// re-derives the whole feed instead of patching in place. The ownership
// check here is advisory; the store row keeps the authoritative author id.
func (s *Service) UpdatePost(ctx context.Context, postID uint, edit PostEdit, callerID uint) error {
	if callerID == 0 {
		return ErrUnauthenticated
	}
	title := strings.TrimSpace(edit.Title)
	content := strings.TrimSpace(edit.Content)
	if title == "" || content == "" {
		return fmt.Errorf("%w: title and content are required", ErrInvalidInput)
	}

	current, err := s.store.Get(ctx, postID)
	if err != nil {
		return mapStoreErr(err)
	}
	if current.AuthorID != callerID {
		return ErrForbidden
	}

	upd := store.PostUpdate{Title: title, Content: content, ImageURL: edit.ImageURL}
	if err := s.store.Update(ctx, postID, upd); err != nil {
		return mapStoreErr(err)
	}
	return s.LoadAll(ctx)
}

// DeletePost permanently removes the caller's own post. Without confirmed
// it aborts before any side effect, the API form of the blocking yes/no
// prompt. There is no soft delete.
func (s *Service) DeletePost(ctx context.Context, postID, callerID uint, confirmed bool) error {
	if callerID == 0 {
		return ErrUnauthenticated
	}

	post, err := s.store.Get(ctx, postID)
	if err != nil {
		return mapStoreErr(err)
	}
	if post.AuthorID != callerID {
		return ErrForbidden
	}
	if !confirmed {
		return ErrConfirmationRequired
	}

	if err := s.store.Delete(ctx, postID); err != nil {
		return mapStoreErr(err)
	}
	s.cache.Delete(postID)
	return s.LoadAll(ctx)
}

func mapStoreErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("store: %w", err)
}
