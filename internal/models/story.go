package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Story represents a user's story stored in MongoDB. Stories expire 24 hours
// after creation; expired documents are filtered out at read time.
type Story struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID  string             `json:"author_id" bson:"author_id"`
	Caption   string             `json:"caption" bson:"caption"`
	MediaURL  string             `json:"media_url" bson:"media_url"`
	MediaType string             `json:"media_type" bson:"media_type"` // "image" or "video"
	LikedBy   []string           `json:"liked_by,omitempty" bson:"liked_by,omitempty"`
	Comments  []StoryComment     `json:"comments,omitempty" bson:"comments,omitempty"`
	ExpiresAt time.Time          `json:"expires_at" bson:"expires_at"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// StoryComment is a reply embedded in a story document. Replies live and die
// with the story: they expire together with it.
type StoryComment struct {
	UserID    string    `json:"user_id" bson:"user_id"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// StorySeen tracks which stories a user has seen (PostgreSQL)
type StorySeen struct {
	ID      uint      `json:"id" gorm:"primaryKey"`
	StoryID string    `json:"story_id" gorm:"index;uniqueIndex:idx_story_user_seen"`
	UserID  uint      `json:"user_id" gorm:"index;uniqueIndex:idx_story_user_seen"`
	SeenAt  time.Time `json:"seen_at"`
}

// CreateStoryRequest defines the request body for creating a story
type CreateStoryRequest struct {
	Caption   string `json:"caption,omitempty" validate:"omitempty,max=200"`
	MediaURL  string `json:"media_url" validate:"required,url"`
	MediaType string `json:"media_type" validate:"required,oneof=image video"`
}

// ReplyToStoryRequest defines the request body for replying to a story
type ReplyToStoryRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}
