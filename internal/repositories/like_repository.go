package repositories

import (
	"errors"

	"github.com/itgram/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like operations
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(postID string, userID uint) error
	HasUserLikedPost(postID string, userID uint) (bool, error)
	GetLikesCountByPostID(postID string) (int64, error)
}

type postgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new like repository backed by PostgreSQL
func NewPostgresLikeRepository(db *gorm.DB) LikeRepository {
	return &postgresLikeRepository{db: db}
}

func (r *postgresLikeRepository) CreateLike(like *models.Like) error {
	return r.db.Create(like).Error
}

func (r *postgresLikeRepository) DeleteLike(postID string, userID uint) error {
	res := r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresLikeRepository) HasUserLikedPost(postID string, userID uint) (bool, error) {
	var like models.Like
	err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *postgresLikeRepository) GetLikesCountByPostID(postID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
