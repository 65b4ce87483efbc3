package repositories

import (
	"errors"

	"github.com/itgram/backend/internal/models"
	"gorm.io/gorm"
)

// CommentLikeRepository defines the interface for comment like operations
type CommentLikeRepository interface {
	CreateCommentLike(like *models.CommentLike) error
	DeleteCommentLike(commentID, userID uint) error
	HasUserLikedComment(commentID, userID uint) (bool, error)
	GetLikesCountByCommentID(commentID uint) (int64, error)
}

type postgresCommentLikeRepository struct {
	db *gorm.DB
}

// NewPostgresCommentLikeRepository creates a new comment like repository backed by PostgreSQL
func NewPostgresCommentLikeRepository(db *gorm.DB) CommentLikeRepository {
	return &postgresCommentLikeRepository{db: db}
}

func (r *postgresCommentLikeRepository) CreateCommentLike(like *models.CommentLike) error {
	return r.db.Create(like).Error
}

func (r *postgresCommentLikeRepository) DeleteCommentLike(commentID, userID uint) error {
	res := r.db.Where("comment_id = ? AND user_id = ?", commentID, userID).
		Delete(&models.CommentLike{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresCommentLikeRepository) HasUserLikedComment(commentID, userID uint) (bool, error) {
	var like models.CommentLike
	err := r.db.Where("comment_id = ? AND user_id = ?", commentID, userID).First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *postgresCommentLikeRepository) GetLikesCountByCommentID(commentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.CommentLike{}).Where("comment_id = ?", commentID).Count(&count).Error
	return count, err
}
