package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model        `json:"-"`
	ID                uint   `json:"id" gorm:"primaryKey"`
	PublicID          string `json:"public_id" gorm:"uniqueIndex;size:64"` // Stable opaque identity used in MongoDB documents and realtime events
	Username          string `json:"username" gorm:"uniqueIndex;size:40"`
	Email             string `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Password          string `json:"-"`                        // Store hashed password, ignore for JSON serialization
	FirebaseUID       string `json:"firebase_uid,omitempty" gorm:"uniqueIndex"` // Link to Firebase User UID
	Bio               string `json:"bio"`
	ProfilePictureURL string `json:"profile_picture_url"`
	FollowersCount    int    `json:"followers_count" gorm:"default:0"`
	FollowingCount    int    `json:"following_count" gorm:"default:0"`
	IsAdmin           bool   `json:"is_admin" gorm:"default:false"`
}

// UserCompact is the denormalized user snippet embedded in live events
// and enriched API responses.
type UserCompact struct {
	PublicID          string `json:"public_id"`
	Username          string `json:"username"`
	ProfilePictureURL string `json:"profile_picture_url"`
}

// ToCompact returns the compact representation of a user
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		PublicID:          u.PublicID,
		Username:          u.Username,
		ProfilePictureURL: u.ProfilePictureURL,
	}
}

type CreateUserRequest struct {
	Username    string `json:"username" validate:"required,min=2,max=40"`
	Email       string `json:"email" validate:"required,email"`
	FirebaseUID string `json:"firebase_uid" validate:"required"` // Firebase UID will be provided by the client after Firebase Auth
}

type CreateLocalUserRequest struct {
	Username string `json:"username" validate:"required,min=2,max=40"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type UpdateUserRequest struct {
	Username          string `json:"username,omitempty" validate:"omitempty,min=2,max=40"`
	Bio               string `json:"bio,omitempty" validate:"omitempty,max=200"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty" validate:"omitempty,url"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
