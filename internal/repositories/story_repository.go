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
	"gorm.io/gorm"
)

// StoryRepository defines the interface for story operations. Story documents
// live in MongoDB; seen tracking lives in PostgreSQL.
type StoryRepository interface {
	CreateStory(ctx context.Context, story *models.Story) error
	GetStoryByID(ctx context.Context, id string) (*models.Story, error)
	GetActiveStoriesByAuthorIDs(ctx context.Context, authorIDs []string) ([]models.Story, error)
	LikeStory(ctx context.Context, storyID, userID string) error
	UnlikeStory(ctx context.Context, storyID, userID string) error
	AddStoryComment(ctx context.Context, storyID string, comment models.StoryComment) error
	DeleteStory(ctx context.Context, id string) error
	MarkStorySeen(storyID string, userID uint) error
	GetSeenStoryIDs(userID uint) ([]string, error)
}

type storyRepository struct {
	collection *mongo.Collection
	pg         *gorm.DB
}

// NewStoryRepository creates a story repository over MongoDB and PostgreSQL
func NewStoryRepository(db *mongo.Database, pg *gorm.DB) StoryRepository {
	return &storyRepository{collection: db.Collection("stories"), pg: pg}
}

func (r *storyRepository) CreateStory(ctx context.Context, story *models.Story) error {
	story.ID = primitive.NewObjectID()
	story.CreatedAt = time.Now()
	story.ExpiresAt = story.CreatedAt.Add(24 * time.Hour)
	_, err := r.collection.InsertOne(ctx, story)
	return err
}

func (r *storyRepository) GetStoryByID(ctx context.Context, id string) (*models.Story, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid story ID format: %w", err)
	}

	var story models.Story
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&story)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &story, nil
}

// GetActiveStoriesByAuthorIDs returns the unexpired stories of the given authors
func (r *storyRepository) GetActiveStoriesByAuthorIDs(ctx context.Context, authorIDs []string) ([]models.Story, error) {
	if len(authorIDs) == 0 {
		return []models.Story{}, nil
	}

	filter := bson.M{
		"author_id":  bson.M{"$in": authorIDs},
		"expires_at": bson.M{"$gt": time.Now()},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stories []models.Story
	if err = cursor.All(ctx, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

func (r *storyRepository) LikeStory(ctx context.Context, storyID, userID string) error {
	return r.updateLikes(ctx, storyID, bson.M{"$addToSet": bson.M{"liked_by": userID}})
}

func (r *storyRepository) UnlikeStory(ctx context.Context, storyID, userID string) error {
	return r.updateLikes(ctx, storyID, bson.M{"$pull": bson.M{"liked_by": userID}})
}

func (r *storyRepository) updateLikes(ctx context.Context, storyID string, update bson.M) error {
	objID, err := primitive.ObjectIDFromHex(storyID)
	if err != nil {
		return fmt.Errorf("invalid story ID format: %w", err)
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddStoryComment appends a reply to the story's embedded comment list
func (r *storyRepository) AddStoryComment(ctx context.Context, storyID string, comment models.StoryComment) error {
	objID, err := primitive.ObjectIDFromHex(storyID)
	if err != nil {
		return fmt.Errorf("invalid story ID format: %w", err)
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID},
		bson.M{"$push": bson.M{"comments": comment}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *storyRepository) DeleteStory(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid story ID format: %w", err)
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

func (r *storyRepository) MarkStorySeen(storyID string, userID uint) error {
	seen := &models.StorySeen{
		StoryID: storyID,
		UserID:  userID,
		SeenAt:  time.Now(),
	}
	// A repeat view is not an error
	err := r.pg.Create(seen).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

func (r *storyRepository) GetSeenStoryIDs(userID uint) ([]string, error) {
	var ids []string
	err := r.pg.Model(&models.StorySeen{}).Where("user_id = ?", userID).
		Pluck("story_id", &ids).Error
	return ids, err
}
