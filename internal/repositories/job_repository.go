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

// JobRepository defines the interface for job listing operations
type JobRepository interface {
	CreateJob(ctx context.Context, job *models.Job) error
	GetJobByID(ctx context.Context, id string) (*models.Job, error)
	GetAllJobs(ctx context.Context, skip, limit int64) ([]models.Job, error)
	GetJobsByAuthorID(ctx context.Context, authorID string) ([]models.Job, error)
	GetJobsAppliedByUser(ctx context.Context, userID string) ([]models.Job, error)
	JobExists(ctx context.Context, jobTitle, companyName, authorID string) (bool, error)
	AddApplicant(ctx context.Context, jobID string, applicant models.Applicant) error
	RemoveApplicant(ctx context.Context, jobID, userID string) error
	SetApplicantStatus(ctx context.Context, jobID, userID, status string) error
	DeleteJob(ctx context.Context, id string) error
	CountJobs(ctx context.Context) (int64, error)
	CountApplications(ctx context.Context) (int64, error)
}

// MongoJobRepository implements JobRepository for MongoDB
type MongoJobRepository struct {
	collection *mongo.Collection
}

// NewMongoJobRepository creates a new MongoJobRepository
func NewMongoJobRepository(db *mongo.Database) *MongoJobRepository {
	return &MongoJobRepository{collection: db.Collection("jobs")}
}

// CreateJob creates a new job listing in MongoDB
func (r *MongoJobRepository) CreateJob(ctx context.Context, job *models.Job) error {
	job.ID = primitive.NewObjectID()
	job.CreatedAt = time.Now()
	job.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, job)
	return err
}

// GetJobByID retrieves a job by ID from MongoDB
func (r *MongoJobRepository) GetJobByID(ctx context.Context, id string) (*models.Job, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid job ID format: %w", err)
	}

	var job models.Job
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&job)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

// GetAllJobs retrieves all job listings with pagination
func (r *MongoJobRepository) GetAllJobs(ctx context.Context, skip, limit int64) ([]models.Job, error) {
	return r.find(ctx, bson.D{}, skip, limit)
}

// GetJobsByAuthorID retrieves jobs posted by a specific user
func (r *MongoJobRepository) GetJobsByAuthorID(ctx context.Context, authorID string) ([]models.Job, error) {
	return r.find(ctx, bson.M{"author_id": authorID}, 0, 0)
}

// GetJobsAppliedByUser retrieves jobs a user has applied to
func (r *MongoJobRepository) GetJobsAppliedByUser(ctx context.Context, userID string) ([]models.Job, error) {
	return r.find(ctx, bson.M{"applicants.user_id": userID}, 0, 0)
}

func (r *MongoJobRepository) find(ctx context.Context, filter interface{}, skip, limit int64) ([]models.Job, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if skip > 0 {
		findOptions.SetSkip(skip)
	}
	if limit > 0 {
		findOptions.SetLimit(limit)
	}
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var jobs []models.Job
	if err = cursor.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// JobExists reports whether the author already posted a job with the same
// title and company
func (r *MongoJobRepository) JobExists(ctx context.Context, jobTitle, companyName, authorID string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"job_title":    jobTitle,
		"company_name": companyName,
		"author_id":    authorID,
	})
	return count > 0, err
}

// AddApplicant appends an application to the job's applicant list
func (r *MongoJobRepository) AddApplicant(ctx context.Context, jobID string, applicant models.Applicant) error {
	objID, err := primitive.ObjectIDFromHex(jobID)
	if err != nil {
		return fmt.Errorf("invalid job ID format: %w", err)
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID},
		bson.M{"$push": bson.M{"applicants": applicant}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveApplicant withdraws a user's application from a job
func (r *MongoJobRepository) RemoveApplicant(ctx context.Context, jobID, userID string) error {
	objID, err := primitive.ObjectIDFromHex(jobID)
	if err != nil {
		return fmt.Errorf("invalid job ID format: %w", err)
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID},
		bson.M{"$pull": bson.M{"applicants": bson.M{"user_id": userID}}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetApplicantStatus updates the status of a single application
func (r *MongoJobRepository) SetApplicantStatus(ctx context.Context, jobID, userID, status string) error {
	objID, err := primitive.ObjectIDFromHex(jobID)
	if err != nil {
		return fmt.Errorf("invalid job ID format: %w", err)
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objID, "applicants.user_id": userID},
		bson.M{"$set": bson.M{"applicants.$.status": status, "updated_at": time.Now()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteJob removes a job listing
func (r *MongoJobRepository) DeleteJob(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid job ID format: %w", err)
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

// CountJobs returns the total number of job listings
func (r *MongoJobRepository) CountJobs(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.D{})
}

// CountApplications returns the total number of applications across all jobs
func (r *MongoJobRepository) CountApplications(ctx context.Context) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$project", Value: bson.M{"count": bson.M{"$size": bson.M{"$ifNull": bson.A{"$applicants", bson.A{}}}}}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$count"}}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var result []struct {
		Total int64 `bson:"total"`
	}
	if err = cursor.All(ctx, &result); err != nil {
		return 0, err
	}
	if len(result) == 0 {
		return 0, nil
	}
	return result[0].Total, nil
}
