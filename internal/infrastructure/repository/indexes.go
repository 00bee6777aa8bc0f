package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes every repository relies on. Called once
// at startup; CreateMany is idempotent for existing indexes.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	productIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "shop", Value: 1}, {Key: "shopify_product_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := db.Collection("products").Indexes().CreateMany(ctx, productIndexes); err != nil {
		return fmt.Errorf("failed to create product indexes: %w", err)
	}

	summaryIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "shop", Value: 1}, {Key: "shopify_product_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := db.Collection("ai_summaries").Indexes().CreateMany(ctx, summaryIndexes); err != nil {
		return fmt.Errorf("failed to create summary indexes: %w", err)
	}

	jobIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "job_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "shop_url", Value: 1}, {Key: "created_at", Value: -1}},
		},
	}
	if _, err := db.Collection("installation_jobs").Indexes().CreateMany(ctx, jobIndexes); err != nil {
		return fmt.Errorf("failed to create job indexes: %w", err)
	}

	syncLogIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "shop", Value: 1}, {Key: "timestamp", Value: -1}},
		},
	}
	if _, err := db.Collection("sync_logs").Indexes().CreateMany(ctx, syncLogIndexes); err != nil {
		return fmt.Errorf("failed to create sync log indexes: %w", err)
	}

	shopIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "domain", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := db.Collection("shops").Indexes().CreateMany(ctx, shopIndexes); err != nil {
		return fmt.Errorf("failed to create shop indexes: %w", err)
	}

	return nil
}
