package models

import "time"

// Post is a community feed entry. Author and AuthorID are snapshots of the
// creator's identity taken at creation time; LikedBy is derived from the
// like rows when a post is read and is never written through this struct.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"index;not null" json:"author_id"`
	Author    string    `gorm:"size:255;not null" json:"author"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ImageURL  *string   `gorm:"size:1024" json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	LikedBy   []uint    `gorm:"-" json:"liked_by"`
	Comments  []Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comments"`
}

// LikeCount is the size of the LikedBy set.
func (p *Post) LikeCount() int {
	return len(p.LikedBy)
}

// LikedByUser reports membership of userID in the LikedBy set.
func (p *Post) LikedByUser(userID uint) bool {
	for _, id := range p.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}
