package models

import "time"

// Comment is a reply embedded in a post's comment list. Comments are
// append-only: there is no edit or delete path. The ID is a random UUID
// assigned by the reconciler at submission time.
type Comment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	PostID    uint      `gorm:"index;not null" json:"post_id"`
	AuthorID  uint      `gorm:"index;not null" json:"author_id"`
	Author    string    `gorm:"size:255;not null" json:"author"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
