package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weatherfit/backend/models"
	"github.com/weatherfit/backend/store"
)

func newTestService(t *testing.T) (*Service, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	notifier := NewNotifier(nil, nil)
	t.Cleanup(func() { notifier.Close() })
	return NewService(st, NewCache(), notifier, nil), st
}

func seedPost(t *testing.T, svc *Service, authorID uint, title string) models.Post {
	t.Helper()
	post, err := svc.CreatePost(context.Background(), PostInput{
		Title:    title,
		Content:  "content of " + title,
		Author:   "alice",
		AuthorID: authorID,
	})
	require.NoError(t, err)
	return post
}

func TestCreatePostAppearsInFeed(t *testing.T) {
	svc, _ := newTestService(t)

	post := seedPost(t, svc, 1, "first outfit")

	assert.NotZero(t, post.ID)
	assert.Empty(t, post.LikedBy)
	assert.Empty(t, post.Comments)

	require.NoError(t, svc.LoadAll(context.Background()))
	posts := svc.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, post.ID, posts[0].ID)
	assert.Equal(t, "first outfit", posts[0].Title)
	assert.Empty(t, posts[0].LikedBy)
	assert.Empty(t, posts[0].Comments)
}

func TestCreatePostValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, PostInput{Title: "  ", Content: "x", AuthorID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreatePost(ctx, PostInput{Title: "x", Content: "\n\t", AuthorID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreatePost(ctx, PostInput{Title: "x", Content: "y", AuthorID: 0})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestToggleLikeRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	post := seedPost(t, svc, 1, "toggle me")

	first, err := svc.ToggleLike(ctx, post.ID, 7)
	require.NoError(t, err)
	assert.True(t, first.Liked)
	assert.Equal(t, 1, first.LikeCount)

	cached, ok := svc.Post(post.ID)
	require.True(t, ok)
	assert.True(t, cached.LikedByUser(7))

	second, err := svc.ToggleLike(ctx, post.ID, 7)
	require.NoError(t, err)
	assert.False(t, second.Liked)
	assert.Equal(t, 0, second.LikeCount)

	cached, ok = svc.Post(post.ID)
	require.True(t, ok)
	assert.False(t, cached.LikedByUser(7))
}

func TestToggleLikeErrors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	post := seedPost(t, svc, 1, "likes")

	_, err := svc.ToggleLike(ctx, post.ID, 0)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.ToggleLike(ctx, 9999, 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddCommentOrderAndValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	post := seedPost(t, svc, 1, "discuss")

	_, err := svc.AddComment(ctx, post.ID, "   \n ", "bob", 2)
	assert.ErrorIs(t, err, ErrInvalidInput)
	cached, _ := svc.Post(post.ID)
	assert.Empty(t, cached.Comments)

	first, err := svc.AddComment(ctx, post.ID, "love the coat", "bob", 2)
	require.NoError(t, err)
	require.Len(t, first.Comments, 1)

	second, err := svc.AddComment(ctx, post.ID, "me too", "carol", 3)
	require.NoError(t, err)
	require.Len(t, second.Comments, 2)
	assert.Equal(t, "love the coat", second.Comments[0].Text)
	assert.Equal(t, "me too", second.Comments[1].Text)
	assert.NotEqual(t, second.Comments[0].ID, second.Comments[1].ID)

	_, err = svc.AddComment(ctx, post.ID, "hello", "dave", 0)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.AddComment(ctx, 9999, "hello", "dave", 4)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePostOwnership(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	post := seedPost(t, svc, 1, "original title")

	err := svc.UpdatePost(ctx, post.ID, PostEdit{Title: "hacked", Content: "hacked"}, 99)
	assert.ErrorIs(t, err, ErrForbidden)

	stored, err2 := st.Get(ctx, post.ID)
	require.NoError(t, err2)
	assert.Equal(t, "original title", stored.Title)

	err = svc.UpdatePost(ctx, post.ID, PostEdit{Title: "new title", Content: "new content"}, 1)
	require.NoError(t, err)

	cached, ok := svc.Post(post.ID)
	require.True(t, ok)
	assert.Equal(t, "new title", cached.Title)
	assert.Equal(t, "new content", cached.Content)
}

func TestUpdatePostKeepsImageWhenNil(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	img := "https://cdn.example.com/coat.jpg"
	post, err := svc.CreatePost(ctx, PostInput{
		Title: "with image", Content: "c", ImageURL: &img, Author: "alice", AuthorID: 1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdatePost(ctx, post.ID, PostEdit{Title: "t2", Content: "c2"}, 1))

	stored, err := st.Get(ctx, post.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ImageURL)
	assert.Equal(t, img, *stored.ImageURL)
}

func TestDeletePost(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	post := seedPost(t, svc, 1, "doomed")

	err := svc.DeletePost(ctx, post.ID, 2, true)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = st.Get(ctx, post.ID)
	assert.NoError(t, err)

	err = svc.DeletePost(ctx, post.ID, 1, false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	_, err = st.Get(ctx, post.ID)
	assert.NoError(t, err)

	require.NoError(t, svc.DeletePost(ctx, post.ID, 1, true))
	_, err = st.Get(ctx, post.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, ok := svc.Post(post.ID)
	assert.False(t, ok)

	err = svc.DeletePost(ctx, post.ID, 1, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

// failingStore wraps a PostStore and fails List on demand.
type failingStore struct {
	store.PostStore
	failList bool
}

func (f *failingStore) List(ctx context.Context) ([]models.Post, error) {
	if f.failList {
		return nil, errors.New("connection refused")
	}
	return f.PostStore.List(ctx)
}

func TestLoadAllKeepsStaleCacheOnFailure(t *testing.T) {
	mem := store.NewMemoryStore()
	fs := &failingStore{PostStore: mem}
	notifier := NewNotifier(nil, nil)
	defer notifier.Close()
	svc := NewService(fs, NewCache(), notifier, nil)
	ctx := context.Background()

	seedPost(t, svc, 1, "survivor")
	require.NoError(t, svc.LoadAll(ctx))
	require.Len(t, svc.Posts(), 1)

	fs.failList = true
	err := svc.LoadAll(ctx)
	require.Error(t, err)

	posts := svc.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, "survivor", posts[0].Title)
}
