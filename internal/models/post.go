package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a social media post stored in MongoDB
type Post struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID      string             `json:"author_id" bson:"author_id"` // Public ID of the user who created the post
	Caption       string             `json:"caption" bson:"caption"`
	ImageURLs     []string           `json:"image_urls,omitempty" bson:"image_urls,omitempty"`
	VideoURLs     []string           `json:"video_urls,omitempty" bson:"video_urls,omitempty"`
	TaggedUserIDs []string           `json:"tagged_user_ids,omitempty" bson:"tagged_user_ids,omitempty"`
	LikesCount    int                `json:"likes_count" bson:"likes_count"`
	CommentsCount int                `json:"comments_count" bson:"comments_count"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Caption       string   `json:"caption" validate:"required,min=1,max=280"`
	ImageURLs     []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
	VideoURLs     []string `json:"video_urls,omitempty" validate:"omitempty,dive,url"`
	TaggedUserIDs []string `json:"tagged_user_ids,omitempty" validate:"omitempty,max=20"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Caption   string   `json:"caption,omitempty" validate:"omitempty,min=1,max=280"`
	ImageURLs []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
	VideoURLs []string `json:"video_urls,omitempty" validate:"omitempty,dive,url"`
}
