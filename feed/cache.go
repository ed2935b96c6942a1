package feed

import (
	"sort"
	"sync"

	"github.com/weatherfit/backend/models"
)

// Cache is the in-memory mirror of the post store. It is never the system of
// record: entries are only written from authoritative store reads, and a
// failed refresh leaves the previous contents visible (stale over empty).
//
// The original single-threaded design needed no locking; this service
// handles concurrent requests, so the map is mutex-guarded.
type Cache struct {
	mu    sync.RWMutex
	posts map[uint]models.Post
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{posts: make(map[uint]models.Post)}
}

// ReplaceAll swaps the entire cache contents for the fetched set. This is a
// full reconciliation, not an incremental merge.
func (c *Cache) ReplaceAll(posts []models.Post) {
	next := make(map[uint]models.Post, len(posts))
	for _, p := range posts {
		next[p.ID] = p
	}
	c.mu.Lock()
	c.posts = next
	c.mu.Unlock()
}

// Set updates a single entry from a confirmed store read.
func (c *Cache) Set(post models.Post) {
	c.mu.Lock()
	c.posts[post.ID] = post
	c.mu.Unlock()
}

// Delete drops an entry.
func (c *Cache) Delete(id uint) {
	c.mu.Lock()
	delete(c.posts, id)
	c.mu.Unlock()
}

// Get returns the cached post with the given id.
func (c *Cache) Get(id uint) (models.Post, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.posts[id]
	return p, ok
}

// All returns the cached posts ordered by creation time descending, newest
// first, matching the list view.
func (c *Cache) All() []models.Post {
	c.mu.RLock()
	out := make([]models.Post, 0, len(c.posts))
	for _, p := range c.posts {
		out = append(out, p)
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Len reports the number of cached posts.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.posts)
}
