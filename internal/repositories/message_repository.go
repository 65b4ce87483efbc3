package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/itgram/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository defines the interface for direct message operations
type MessageRepository interface {
	FindOrCreateConversation(ctx context.Context, userA, userB string) (*models.Conversation, error)
	CreateMessage(ctx context.Context, conversationID primitive.ObjectID, message *models.Message) error
	GetConversationMessages(ctx context.Context, userA, userB string) ([]models.Message, error)
	DeleteMessage(ctx context.Context, id string) error
}

// MongoMessageRepository implements MessageRepository for MongoDB
type MongoMessageRepository struct {
	conversations *mongo.Collection
	messages      *mongo.Collection
}

// NewMongoMessageRepository creates a new MongoMessageRepository
func NewMongoMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{
		conversations: db.Collection("conversations"),
		messages:      db.Collection("messages"),
	}
}

// FindOrCreateConversation returns the conversation between two users,
// creating it on first contact
func (r *MongoMessageRepository) FindOrCreateConversation(ctx context.Context, userA, userB string) (*models.Conversation, error) {
	filter := bson.M{"participants": bson.M{"$all": bson.A{userA, userB}}}

	var conversation models.Conversation
	err := r.conversations.FindOne(ctx, filter).Decode(&conversation)
	if err == nil {
		return &conversation, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	conversation = models.Conversation{
		ID:           primitive.NewObjectID(),
		Participants: []string{userA, userB},
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if _, err := r.conversations.InsertOne(ctx, &conversation); err != nil {
		return nil, err
	}
	return &conversation, nil
}

// CreateMessage persists a message and appends it to its conversation
func (r *MongoMessageRepository) CreateMessage(ctx context.Context, conversationID primitive.ObjectID, message *models.Message) error {
	message.ID = primitive.NewObjectID()
	message.CreatedAt = time.Now()

	if _, err := r.messages.InsertOne(ctx, message); err != nil {
		return err
	}

	_, err := r.conversations.UpdateOne(ctx, bson.M{"_id": conversationID}, bson.M{
		"$push": bson.M{"message_ids": message.ID},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	return err
}

// GetConversationMessages returns the message history between two users,
// oldest first. An empty slice is returned when they never talked.
func (r *MongoMessageRepository) GetConversationMessages(ctx context.Context, userA, userB string) ([]models.Message, error) {
	var conversation models.Conversation
	err := r.conversations.FindOne(ctx, bson.M{"participants": bson.M{"$all": bson.A{userA, userB}}}).Decode(&conversation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []models.Message{}, nil
		}
		return nil, err
	}
	if len(conversation.MessageIDs) == 0 {
		return []models.Message{}, nil
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.messages.Find(ctx, bson.M{"_id": bson.M{"$in": conversation.MessageIDs}}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// DeleteMessage removes a message by ID
func (r *MongoMessageRepository) DeleteMessage(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid message ID format: %w", err)
	}

	res, err := r.messages.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
