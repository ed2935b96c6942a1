package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/weatherfit/backend/models"
)

// GormStore implements PostStore on MySQL through gorm.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a GormStore instance.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.loadLikes(ctx, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *GormStore) List(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return posts, nil
	}

	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	var likes []models.Like
	if err := s.db.WithContext(ctx).Where("post_id IN ?", ids).Order("id ASC").Find(&likes).Error; err != nil {
		return nil, err
	}
	byPost := make(map[uint][]uint, len(posts))
	for _, l := range likes {
		byPost[l.PostID] = append(byPost[l.PostID], l.UserID)
	}
	for i := range posts {
		posts[i].LikedBy = byPost[posts[i].ID]
	}
	return posts, nil
}

func (s *GormStore) Create(ctx context.Context, post *models.Post) (uint, error) {
	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		return 0, err
	}
	return post.ID, nil
}

func (s *GormStore) Update(ctx context.Context, id uint, upd PostUpdate) error {
	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	fields := map[string]interface{}{
		"title":      upd.Title,
		"content":    upd.Content,
		"updated_at": time.Now(),
	}
	if upd.ImageURL != nil {
		fields["image_url"] = *upd.ImageURL
	}
	return s.db.WithContext(ctx).Model(&post).Updates(fields).Error
}

func (s *GormStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error
	})
}

// AddLike inserts a like row; the composite unique index plus DO NOTHING on
// conflict gives set-union semantics under concurrent callers.
func (s *GormStore) AddLike(ctx context.Context, postID, userID uint) error {
	like := models.Like{PostID: postID, UserID: userID}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like).Error
}

func (s *GormStore) RemoveLike(ctx context.Context, postID, userID uint) error {
	return s.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{}).Error
}

func (s *GormStore) AppendComment(ctx context.Context, postID uint, comment models.Comment) error {
	var exists int64
	if err := s.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", postID).Count(&exists).Error; err != nil {
		return err
	}
	if exists == 0 {
		return ErrNotFound
	}
	comment.PostID = postID
	return s.db.WithContext(ctx).Create(&comment).Error
}

func (s *GormStore) loadLikes(ctx context.Context, post *models.Post) error {
	var likes []models.Like
	if err := s.db.WithContext(ctx).Where("post_id = ?", post.ID).Order("id ASC").Find(&likes).Error; err != nil {
		return err
	}
	post.LikedBy = make([]uint, 0, len(likes))
	for _, l := range likes {
		post.LikedBy = append(post.LikedBy, l.UserID)
	}
	return nil
}
