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

// MongoProductRepository implements ProductRepository using MongoDB
type MongoProductRepository struct {
	collection *mongo.Collection
}

// NewMongoProductRepository creates a new MongoDB product repository
func NewMongoProductRepository(db *mongo.Database) ports.ProductRepository {
	return &MongoProductRepository{
		collection: db.Collection("products"),
	}
}

// Upsert stores a product keyed by (shop, shopify_product_id), replacing any
// previous version of the document.
func (r *MongoProductRepository) Upsert(ctx context.Context, shop string, product *domain.Product) error {
	doc := entity.MongoProductDocFromDomain(product)
	doc.Shop = shop
	doc.SyncedAt = time.Now()

	filter := bson.M{"shop": shop, "shopify_product_id": product.ShopifyProductID}
	update := bson.M{"$set": doc}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return &domain.StorageError{Op: "upsert product", Err: err}
	}
	return nil
}

// GetAll retrieves every mirrored product for a shop
func (r *MongoProductRepository) GetAll(ctx context.Context, shop string) ([]*domain.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"shop": shop})
	if err != nil {
		return nil, &domain.StorageError{Op: "list products", Err: err}
	}
	defer cursor.Close(ctx)

	var products []*domain.Product
	for cursor.Next(ctx) {
		var doc entity.MongoProductDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, &domain.StorageError{Op: "decode product", Err: err}
		}
		products = append(products, doc.ToDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list products", Err: err}
	}
	return products, nil
}

// GetByID retrieves one product for a shop, or nil if it is not mirrored
func (r *MongoProductRepository) GetByID(ctx context.Context, shop string, shopifyProductID string) (*domain.Product, error) {
	var doc entity.MongoProductDoc
	filter := bson.M{"shop": shop, "shopify_product_id": shopifyProductID}

	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get product", Err: err}
	}
	return doc.ToDomain(), nil
}

// Delete removes a product mirror. Deleting a product that was never
// mirrored is not an error.
func (r *MongoProductRepository) Delete(ctx context.Context, shop string, shopifyProductID string) error {
	filter := bson.M{"shop": shop, "shopify_product_id": shopifyProductID}
	_, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return &domain.StorageError{Op: "delete product", Err: err}
	}
	return nil
}
