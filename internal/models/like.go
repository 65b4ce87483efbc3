package models

import "gorm.io/gorm"

// Like represents a like on a post
type Like struct {
	gorm.Model
	PostID string `json:"post_id" gorm:"index"` // ID of the post that was liked (MongoDB ObjectID as string)
	UserID uint   `json:"user_id" gorm:"index"` // ID of the user who liked the post
}

// CommentLike represents a like on a comment
type CommentLike struct {
	gorm.Model
	CommentID uint `json:"comment_id" gorm:"index;uniqueIndex:idx_comment_user_like"`
	UserID    uint `json:"user_id" gorm:"index;uniqueIndex:idx_comment_user_like"`
}
