package repositories

import (
	"errors"

	"github.com/google/uuid"
	"github.com/itgram/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByPublicID(publicID string) (*models.User, error)
	GetUserByFirebaseUID(firebaseUID string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUsers() ([]models.User, error)
	UpdateUser(user *models.User) error
	DeleteUser(id uint) error
	SearchUsers(query string) ([]models.User, error)
	SuggestedUsers(forUserID uint, limit int) ([]models.User, error)
	IncrementFollowersCount(id uint) error
	DecrementFollowersCount(id uint) error
	IncrementFollowingCount(id uint) error
	DecrementFollowingCount(id uint) error
	CountUsers() (int64, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new user in PostgreSQL. A public ID is generated when
// the caller did not supply one.
func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	if user.PublicID == "" {
		user.PublicID = uuid.NewString()
	}
	return r.db.Create(user).Error
}

// GetUserByID retrieves a user by ID from PostgreSQL
func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByPublicID retrieves a user by their stable public identity
func (r *PostgresUserRepository) GetUserByPublicID(publicID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("public_id = ?", publicID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByFirebaseUID retrieves a user by Firebase UID from PostgreSQL
func (r *PostgresUserRepository) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email from PostgreSQL
func (r *PostgresUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUsers retrieves all users from PostgreSQL
func (r *PostgresUserRepository) GetUsers() ([]models.User, error) {
	var users []models.User
	if err := r.db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser updates an existing user in PostgreSQL
func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// DeleteUser deletes a user by ID from PostgreSQL
func (r *PostgresUserRepository) DeleteUser(id uint) error {
	return r.db.Delete(&models.User{}, id).Error
}

// SearchUsers searches for users by username or email
func (r *PostgresUserRepository) SearchUsers(query string) ([]models.User, error) {
	var users []models.User
	// Search by username or email (case-insensitive)
	if err := r.db.Where("LOWER(username) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", "%"+query+"%", "%"+query+"%").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// SuggestedUsers returns users the given user does not follow yet
func (r *PostgresUserRepository) SuggestedUsers(forUserID uint, limit int) ([]models.User, error) {
	var users []models.User
	sub := r.db.Model(&models.Follow{}).Select("following_id").Where("follower_id = ?", forUserID)
	err := r.db.Where("id != ? AND id NOT IN (?)", forUserID, sub).
		Order("followers_count DESC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

// IncrementFollowersCount increments the denormalized follower counter
func (r *PostgresUserRepository) IncrementFollowersCount(id uint) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		UpdateColumn("followers_count", gorm.Expr("followers_count + 1")).Error
}

// DecrementFollowersCount decrements the denormalized follower counter
func (r *PostgresUserRepository) DecrementFollowersCount(id uint) error {
	return r.db.Model(&models.User{}).Where("id = ? AND followers_count > 0", id).
		UpdateColumn("followers_count", gorm.Expr("followers_count - 1")).Error
}

// IncrementFollowingCount increments the denormalized following counter
func (r *PostgresUserRepository) IncrementFollowingCount(id uint) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		UpdateColumn("following_count", gorm.Expr("following_count + 1")).Error
}

// DecrementFollowingCount decrements the denormalized following counter
func (r *PostgresUserRepository) DecrementFollowingCount(id uint) error {
	return r.db.Model(&models.User{}).Where("id = ? AND following_count > 0", id).
		UpdateColumn("following_count", gorm.Expr("following_count - 1")).Error
}

// CountUsers returns the total number of registered users
func (r *PostgresUserRepository) CountUsers() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}
