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

// MongoSyncLogRepository implements SyncLogRepository using MongoDB
type MongoSyncLogRepository struct {
	collection *mongo.Collection
}

// NewMongoSyncLogRepository creates a new MongoDB sync log repository
func NewMongoSyncLogRepository(db *mongo.Database) ports.SyncLogRepository {
	return &MongoSyncLogRepository{
		collection: db.Collection("sync_logs"),
	}
}

// Append writes one audit record. Records are never updated or deleted.
func (r *MongoSyncLogRepository) Append(ctx context.Context, entry *domain.SyncLog) error {
	doc := entity.MongoSyncLogDocFromDomain(entry)
	if doc.Timestamp.IsZero() {
		doc.Timestamp = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return &domain.StorageError{Op: "append sync log", Err: err}
	}
	return nil
}

// List retrieves sync records for a shop, newest first
func (r *MongoSyncLogRepository) List(ctx context.Context, shop string) ([]*domain.SyncLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"shop": shop}, opts)
	if err != nil {
		return nil, &domain.StorageError{Op: "list sync logs", Err: err}
	}
	defer cursor.Close(ctx)

	var logs []*domain.SyncLog
	for cursor.Next(ctx) {
		var doc entity.MongoSyncLogDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, &domain.StorageError{Op: "decode sync log", Err: err}
		}
		logs = append(logs, doc.ToDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list sync logs", Err: err}
	}
	return logs, nil
}
