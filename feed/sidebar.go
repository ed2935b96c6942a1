package feed

import (
	"math/rand"
	"sort"

	"github.com/weatherfit/backend/models"
)

const (
	// TopPoolSize is how many of the highest-liked posts form the sidebar
	// candidate pool.
	TopPoolSize = 5
	// TopSampleSize is how many pool members each refresh shows.
	TopSampleSize = 2
)

// TopPosts ranks posts by likedBy size descending over the whole set, keeps
// the top poolSize as candidates and returns a random sample of sampleSize
// of them. The sample is re-rolled on every call, so each feed-changed
// refresh shows an interesting pick rather than always the biggest.
func TopPosts(posts []models.Post, poolSize, sampleSize int) []models.Post {
	if poolSize <= 0 || sampleSize <= 0 || len(posts) == 0 {
		return nil
	}

	pool := make([]models.Post, len(posts))
	copy(pool, posts)
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].LikeCount() > pool[j].LikeCount()
	})
	if len(pool) > poolSize {
		pool = pool[:poolSize]
	}
	if sampleSize > len(pool) {
		sampleSize = len(pool)
	}

	out := make([]models.Post, 0, sampleSize)
	for _, idx := range rand.Perm(len(pool))[:sampleSize] {
		out = append(out, pool[idx])
	}
	return out
}

// TopPosts samples the sidebar picks from the current cache contents.
func (s *Service) TopPosts() []models.Post {
	return TopPosts(s.cache.All(), TopPoolSize, TopSampleSize)
}
