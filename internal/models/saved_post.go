package models

import "time"

// SavedPost represents a post bookmarked by a user
type SavedPost struct {
	ID      uint      `json:"id" gorm:"primaryKey"`
	PostID  string    `json:"post_id" gorm:"index;uniqueIndex:idx_saved_post_user"` // MongoDB ObjectID as string
	UserID  uint      `json:"user_id" gorm:"index;uniqueIndex:idx_saved_post_user"`
	SavedAt time.Time `json:"saved_at"`
}
