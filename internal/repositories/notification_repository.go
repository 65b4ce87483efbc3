package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/itgram/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationRepository is the durable half of the notification contract.
// Action handlers write here first; the live push over the socket is an
// optimization layered on top, never the only delivery path.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	GetByRecipientID(ctx context.Context, recipientID string, skip, limit int64) ([]models.Notification, int64, error)
	GetUnreadCount(ctx context.Context, recipientID string) (int64, error)
	MarkAsRead(ctx context.Context, id string) error
	MarkAllAsRead(ctx context.Context, recipientID string) error
	DeleteNotification(ctx context.Context, id string) error
}

// MongoNotificationRepository implements NotificationRepository for MongoDB
type MongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new MongoNotificationRepository
func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{collection: db.Collection("notifications")}
}

// CreateNotification validates and persists a notification document
func (r *MongoNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	if err := notification.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	notification.ID = primitive.NewObjectID()
	notification.IsRead = false
	notification.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, notification)
	return err
}

// GetByRecipientID retrieves a recipient's notifications newest first, along
// with the total count for pagination
func (r *MongoNotificationRepository) GetByRecipientID(ctx context.Context, recipientID string, skip, limit int64) ([]models.Notification, int64, error) {
	filter := bson.M{"recipient_id": recipientID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

// GetUnreadCount returns the number of unread notifications for a recipient
func (r *MongoNotificationRepository) GetUnreadCount(ctx context.Context, recipientID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"recipient_id": recipientID, "is_read": false})
}

// MarkAsRead sets the read flag on a single notification
func (r *MongoNotificationRepository) MarkAsRead(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid notification ID format: %w", err)
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAllAsRead sets the read flag on every unread notification of a recipient
func (r *MongoNotificationRepository) MarkAllAsRead(ctx context.Context, recipientID string) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"recipient_id": recipientID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}})
	return err
}

// DeleteNotification removes a notification by ID
func (r *MongoNotificationRepository) DeleteNotification(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid notification ID format: %w", err)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
