package repository

import (
	"context"
	"time"

	"shopify-summary-sync/internal/domain"
	"shopify-summary-sync/internal/infrastructure/repository/entity"
	"shopify-summary-sync/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoJobRepository implements InstallationJobRepository using MongoDB
type MongoJobRepository struct {
	collection *mongo.Collection
}

// NewMongoJobRepository creates a new MongoDB installation job repository
func NewMongoJobRepository(db *mongo.Database) ports.InstallationJobRepository {
	return &MongoJobRepository{
		collection: db.Collection("installation_jobs"),
	}
}

// Create registers a pending job. Re-creating an existing job id is a no-op
// that preserves the original created_at, so enqueue retries stay idempotent.
func (r *MongoJobRepository) Create(ctx context.Context, jobID string, shop string) error {
	now := time.Now()
	filter := bson.M{"job_id": jobID}
	update := bson.M{
		"$set": bson.M{
			"shop_url":   shop,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"job_id":              jobID,
			"status":              string(domain.JobStatusPending),
			"total_products":      0,
			"products_processed":  0,
			"summaries_generated": 0,
			"progress_percentage": 0,
			"created_at":          now,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return &domain.StorageError{Op: "create job", Err: err}
	}
	return nil
}

// Get retrieves a job by id, or nil if it does not exist
func (r *MongoJobRepository) Get(ctx context.Context, jobID string) (*domain.InstallationJob, error) {
	var doc entity.MongoJobDoc
	err := r.collection.FindOne(ctx, bson.M{"job_id": jobID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get job", Err: err}
	}
	return doc.ToDomain(), nil
}

// GetLatest retrieves the most recently created job for a shop
func (r *MongoJobRepository) GetLatest(ctx context.Context, shop string) (*domain.InstallationJob, error) {
	var doc entity.MongoJobDoc
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	err := r.collection.FindOne(ctx, bson.M{"shop_url": shop}, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get latest job", Err: err}
	}
	return doc.ToDomain(), nil
}

// MarkStarted moves a job to processing and stamps started_at
func (r *MongoJobRepository) MarkStarted(ctx context.Context, jobID string) error {
	update := bson.M{"$set": bson.M{
		"status":     string(domain.JobStatusProcessing),
		"started_at": time.Now(),
		"updated_at": time.Now(),
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"job_id": jobID}, update)
	if err != nil {
		return &domain.StorageError{Op: "mark job started", Err: err}
	}
	return nil
}

// SetTotal fixes the catalog size for the pass
func (r *MongoJobRepository) SetTotal(ctx context.Context, jobID string, total int) error {
	update := bson.M{"$set": bson.M{
		"total_products": total,
		"updated_at":     time.Now(),
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"job_id": jobID}, update)
	if err != nil {
		return &domain.StorageError{Op: "set job total", Err: err}
	}
	return nil
}

// UpdateProgress records mid-pass counters and the derived percentage
func (r *MongoJobRepository) UpdateProgress(ctx context.Context, jobID string, processed, generated, total int) error {
	update := bson.M{"$set": bson.M{
		"products_processed":  processed,
		"summaries_generated": generated,
		"progress_percentage": domain.ProgressPercentage(processed, total),
		"updated_at":          time.Now(),
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"job_id": jobID}, update)
	if err != nil {
		return &domain.StorageError{Op: "update job progress", Err: err}
	}
	return nil
}

// MarkCompleted moves a job to completed with final counters and any
// per-product errors collected along the way.
func (r *MongoJobRepository) MarkCompleted(ctx context.Context, jobID string, processed, generated int, errs []domain.ProductError) error {
	fields := bson.M{
		"status":              string(domain.JobStatusCompleted),
		"products_processed":  processed,
		"summaries_generated": generated,
		"progress_percentage": 100,
		"completed_at":        time.Now(),
		"updated_at":          time.Now(),
	}
	if len(errs) > 0 {
		fields["errors"] = entity.MongoProductErrDocsFromDomain(errs)
	}
	update := bson.M{"$set": fields}
	_, err := r.collection.UpdateOne(ctx, bson.M{"job_id": jobID}, update)
	if err != nil {
		return &domain.StorageError{Op: "mark job completed", Err: err}
	}
	return nil
}

// MarkFailed moves a job to failed with the fatal error message
func (r *MongoJobRepository) MarkFailed(ctx context.Context, jobID string, message string) error {
	update := bson.M{"$set": bson.M{
		"status":        string(domain.JobStatusFailed),
		"error_message": message,
		"completed_at":  time.Now(),
		"updated_at":    time.Now(),
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"job_id": jobID}, update)
	if err != nil {
		return &domain.StorageError{Op: "mark job failed", Err: err}
	}
	return nil
}
