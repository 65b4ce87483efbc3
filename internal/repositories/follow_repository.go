package repositories

import (
	"errors"

	"github.com/itgram/backend/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow relationship operations
type FollowRepository interface {
	CreateFollow(follow *models.Follow) error
	DeleteFollow(followerID, followingID uint) error
	IsFollowing(followerID, followingID uint) (bool, error)
	GetFollowerIDs(userID uint) ([]uint, error)
	GetFollowingIDs(userID uint) ([]uint, error)
}

type postgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new follow repository backed by PostgreSQL
func NewPostgresFollowRepository(db *gorm.DB) FollowRepository {
	return &postgresFollowRepository{db: db}
}

func (r *postgresFollowRepository) CreateFollow(follow *models.Follow) error {
	return r.db.Create(follow).Error
}

func (r *postgresFollowRepository) DeleteFollow(followerID, followingID uint) error {
	res := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresFollowRepository) IsFollowing(followerID, followingID uint) (bool, error) {
	var follow models.Follow
	err := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&follow).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *postgresFollowRepository) GetFollowerIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Follow{}).Where("following_id = ?", userID).
		Pluck("follower_id", &ids).Error
	return ids, err
}

func (r *postgresFollowRepository) GetFollowingIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).
		Pluck("following_id", &ids).Error
	return ids, err
}
