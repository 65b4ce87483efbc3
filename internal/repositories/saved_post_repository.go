package repositories

import (
	"errors"
	"time"

	"github.com/itgram/backend/internal/models"
	"gorm.io/gorm"
)

// SavedPostRepository defines the interface for bookmark operations
type SavedPostRepository interface {
	SavePost(postID string, userID uint) error
	UnsavePost(postID string, userID uint) error
	IsPostSaved(postID string, userID uint) (bool, error)
	GetSavedPostIDs(userID uint) ([]string, error)
}

type postgresSavedPostRepository struct {
	db *gorm.DB
}

// NewPostgresSavedPostRepository creates a new saved post repository backed by PostgreSQL
func NewPostgresSavedPostRepository(db *gorm.DB) SavedPostRepository {
	return &postgresSavedPostRepository{db: db}
}

func (r *postgresSavedPostRepository) SavePost(postID string, userID uint) error {
	saved := &models.SavedPost{
		PostID:  postID,
		UserID:  userID,
		SavedAt: time.Now(),
	}
	return r.db.Create(saved).Error
}

func (r *postgresSavedPostRepository) UnsavePost(postID string, userID uint) error {
	res := r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.SavedPost{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresSavedPostRepository) IsPostSaved(postID string, userID uint) (bool, error) {
	var saved models.SavedPost
	err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&saved).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *postgresSavedPostRepository) GetSavedPostIDs(userID uint) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.SavedPost{}).Where("user_id = ?", userID).
		Order("saved_at DESC").Pluck("post_id", &ids).Error
	return ids, err
}
