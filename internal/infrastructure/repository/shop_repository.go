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

// MongoShopRepository implements ShopRepository using MongoDB
type MongoShopRepository struct {
	shops    *mongo.Collection
	webhooks *mongo.Collection
}

// NewMongoShopRepository creates a new MongoDB shop repository
func NewMongoShopRepository(db *mongo.Database) ports.ShopRepository {
	return &MongoShopRepository{
		shops:    db.Collection("shops"),
		webhooks: db.Collection("webhook_events"),
	}
}

// SaveShop upserts a shop keyed by its domain
func (r *MongoShopRepository) SaveShop(ctx context.Context, shop *domain.Shop) error {
	doc := entity.MongoShopDocFromDomain(shop)
	if doc.InstalledAt.IsZero() {
		doc.InstalledAt = time.Now()
	}

	filter := bson.M{"domain": shop.Domain}
	update := bson.M{"$set": doc}

	_, err := r.shops.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return &domain.StorageError{Op: "save shop", Err: err}
	}
	return nil
}

// GetShop retrieves a shop by domain, or nil if it is not connected
func (r *MongoShopRepository) GetShop(ctx context.Context, shopDomain string) (*domain.Shop, error) {
	var doc entity.MongoShopDoc
	err := r.shops.FindOne(ctx, bson.M{"domain": shopDomain}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get shop", Err: err}
	}
	return doc.ToDomain(), nil
}

// DeleteShop removes a shop record. Idempotent.
func (r *MongoShopRepository) DeleteShop(ctx context.Context, shopDomain string) error {
	_, err := r.shops.DeleteOne(ctx, bson.M{"domain": shopDomain})
	if err != nil {
		return &domain.StorageError{Op: "delete shop", Err: err}
	}
	return nil
}

// LogWebhook records a received webhook for auditing
func (r *MongoShopRepository) LogWebhook(ctx context.Context, event *domain.WebhookEvent) error {
	doc := entity.MongoWebhookLogDoc{
		Topic:      event.Topic,
		Shop:       event.Shop,
		Verified:   event.Verified,
		ReceivedAt: event.CreatedAt,
	}
	if doc.ReceivedAt.IsZero() {
		doc.ReceivedAt = time.Now()
	}

	_, err := r.webhooks.InsertOne(ctx, doc)
	if err != nil {
		return &domain.StorageError{Op: "log webhook", Err: err}
	}
	return nil
}
