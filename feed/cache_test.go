package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weatherfit/backend/models"
)

func postAt(id uint, title string, createdAt time.Time) models.Post {
	return models.Post{ID: id, Title: title, CreatedAt: createdAt}
}

func TestCacheReplaceAllIsFullSwap(t *testing.T) {
	c := NewCache()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	c.ReplaceAll([]models.Post{
		postAt(1, "a", base),
		postAt(2, "b", base.Add(time.Minute)),
	})
	require.Equal(t, 2, c.Len())

	// an entry missing from the new set disappears
	c.ReplaceAll([]models.Post{postAt(2, "b2", base.Add(time.Minute))})
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get(1)
	assert.False(t, ok)
	got, ok := c.Get(2)
	require.True(t, ok)
	assert.Equal(t, "b2", got.Title)
}

func TestCacheAllNewestFirst(t *testing.T) {
	c := NewCache()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	c.Set(postAt(1, "oldest", base))
	c.Set(postAt(2, "newest", base.Add(2*time.Hour)))
	c.Set(postAt(3, "middle", base.Add(time.Hour)))
	// same timestamp as "middle": higher id wins the tie
	c.Set(postAt(4, "tied", base.Add(time.Hour)))

	all := c.All()
	require.Len(t, all, 4)
	assert.Equal(t, []uint{2, 4, 3, 1}, []uint{all[0].ID, all[1].ID, all[2].ID, all[3].ID})
}

func TestCacheSetAndDelete(t *testing.T) {
	c := NewCache()
	c.Set(postAt(5, "hello", time.Now()))

	got, ok := c.Get(5)
	require.True(t, ok)
	assert.Equal(t, "hello", got.Title)

	c.Delete(5)
	_, ok = c.Get(5)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}
