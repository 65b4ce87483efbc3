package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation groups the messages exchanged between two users (MongoDB)
type Conversation struct {
	ID           primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Participants []string             `json:"participants" bson:"participants"` // exactly two public user IDs
	MessageIDs   []primitive.ObjectID `json:"message_ids,omitempty" bson:"message_ids,omitempty"`
	CreatedAt    time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at" bson:"updated_at"`
}

// Message represents a direct message stored in MongoDB
type Message struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SenderID   string             `json:"sender_id" bson:"sender_id"`
	ReceiverID string             `json:"receiver_id" bson:"receiver_id"`
	Text       string             `json:"text" bson:"text"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}

// SendMessageRequest defines the request body for sending a direct message
type SendMessageRequest struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}
