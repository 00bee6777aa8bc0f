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

// MongoSummaryRepository implements SummaryRepository using MongoDB
type MongoSummaryRepository struct {
	collection *mongo.Collection
}

// NewMongoSummaryRepository creates a new MongoDB summary repository
func NewMongoSummaryRepository(db *mongo.Database) ports.SummaryRepository {
	return &MongoSummaryRepository{
		collection: db.Collection("ai_summaries"),
	}
}

// Upsert stores a summary keyed by (shop, shopify_product_id). created_at is
// set only on first insert; updated_at moves on every write.
func (r *MongoSummaryRepository) Upsert(ctx context.Context, shop string, shopifyProductID string, summary *domain.AISummary) error {
	doc := entity.MongoSummaryDocFromDomain(summary)
	doc.Shop = shop
	doc.ShopifyProductID = shopifyProductID
	doc.UpdatedAt = time.Now()

	filter := bson.M{"shop": shop, "shopify_product_id": shopifyProductID}
	update := bson.M{
		"$set": bson.M{
			"product_title":        doc.ProductTitle,
			"original_title":       doc.OriginalTitle,
			"original_description": doc.OriginalDescription,
			"enhanced_title":       doc.EnhancedTitle,
			"enhanced_description": doc.EnhancedDescription,
			"updated_at":           doc.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"shop":               shop,
			"shopify_product_id": shopifyProductID,
			"created_at":         time.Now(),
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return &domain.StorageError{Op: "upsert summary", Err: err}
	}
	return nil
}

// Get retrieves the summary for a product, or nil if none exists
func (r *MongoSummaryRepository) Get(ctx context.Context, shop string, shopifyProductID string) (*domain.AISummary, error) {
	var doc entity.MongoSummaryDoc
	filter := bson.M{"shop": shop, "shopify_product_id": shopifyProductID}

	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get summary", Err: err}
	}
	return doc.ToDomain(), nil
}

// GetAll retrieves every summary for a shop
func (r *MongoSummaryRepository) GetAll(ctx context.Context, shop string) ([]*domain.AISummary, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"shop": shop})
	if err != nil {
		return nil, &domain.StorageError{Op: "list summaries", Err: err}
	}
	defer cursor.Close(ctx)

	var summaries []*domain.AISummary
	for cursor.Next(ctx) {
		var doc entity.MongoSummaryDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, &domain.StorageError{Op: "decode summary", Err: err}
		}
		summaries = append(summaries, doc.ToDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list summaries", Err: err}
	}
	return summaries, nil
}

// Delete removes the summary for a product, if any
func (r *MongoSummaryRepository) Delete(ctx context.Context, shop string, shopifyProductID string) error {
	filter := bson.M{"shop": shop, "shopify_product_id": shopifyProductID}
	_, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return &domain.StorageError{Op: "delete summary", Err: err}
	}
	return nil
}

// DeleteAll removes every summary for a shop
func (r *MongoSummaryRepository) DeleteAll(ctx context.Context, shop string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"shop": shop})
	if err != nil {
		return &domain.StorageError{Op: "delete summaries", Err: err}
	}
	return nil
}
