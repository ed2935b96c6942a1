package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/weatherfit/backend/models"
)

// MemoryStore is an in-process PostStore used by tests and local runs
// without a database. It enforces the same set/append semantics as the
// MySQL implementation.
type MemoryStore struct {
	mu     sync.RWMutex
	posts  map[uint]*models.Post
	nextID uint
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		posts:  make(map[uint]*models.Post),
		nextID: 1,
	}
}

func (s *MemoryStore) Get(ctx context.Context, id uint) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	post, ok := s.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := clonePost(post)
	return &cp, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) Create(ctx context.Context, post *models.Post) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := clonePost(post)
	cp.ID = s.nextID
	s.nextID++
	now := time.Now()
	cp.CreatedAt = now
	cp.UpdatedAt = now
	cp.LikedBy = nil
	cp.Comments = nil
	s.posts[cp.ID] = &cp
	post.ID = cp.ID
	return cp.ID, nil
}

func (s *MemoryStore) Update(ctx context.Context, id uint, upd PostUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return ErrNotFound
	}
	post.Title = upd.Title
	post.Content = upd.Content
	if upd.ImageURL != nil {
		v := *upd.ImageURL
		post.ImageURL = &v
	}
	post.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *MemoryStore) AddLike(ctx context.Context, postID, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[postID]
	if !ok {
		return ErrNotFound
	}
	for _, id := range post.LikedBy {
		if id == userID {
			// duplicate add is absorbed
			return nil
		}
	}
	post.LikedBy = append(post.LikedBy, userID)
	return nil
}

func (s *MemoryStore) RemoveLike(ctx context.Context, postID, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[postID]
	if !ok {
		return ErrNotFound
	}
	for i, id := range post.LikedBy {
		if id == userID {
			post.LikedBy = append(post.LikedBy[:i], post.LikedBy[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *MemoryStore) AppendComment(ctx context.Context, postID uint, comment models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[postID]
	if !ok {
		return ErrNotFound
	}
	comment.PostID = postID
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	post.Comments = append(post.Comments, comment)
	return nil
}

func clonePost(p *models.Post) models.Post {
	cp := *p
	if p.ImageURL != nil {
		v := *p.ImageURL
		cp.ImageURL = &v
	}
	cp.LikedBy = append([]uint(nil), p.LikedBy...)
	cp.Comments = append([]models.Comment(nil), p.Comments...)
	return cp
}
