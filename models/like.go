package models

import "time"

// Like is one member of a post's likedBy set. The composite unique index
// makes a duplicate add a no-op at the database level, so the set never
// holds the same user twice no matter how requests interleave.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_user" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
