package entity

import (
	"time"

	"shopify-summary-sync/internal/domain"
)

// MongoSummaryDoc represents an AI summary in MongoDB
type MongoSummaryDoc struct {
	Shop                string    `bson:"shop"`
	ShopifyProductID    string    `bson:"shopify_product_id"`
	ProductTitle        string    `bson:"product_title"`
	OriginalTitle       string    `bson:"original_title"`
	OriginalDescription string    `bson:"original_description"`
	EnhancedTitle       string    `bson:"enhanced_title"`
	EnhancedDescription string    `bson:"enhanced_description"`
	CreatedAt           time.Time `bson:"created_at"`
	UpdatedAt           time.Time `bson:"updated_at"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoSummaryDoc) ToDomain() *domain.AISummary {
	return &domain.AISummary{
		Shop:                d.Shop,
		ShopifyProductID:    d.ShopifyProductID,
		ProductTitle:        d.ProductTitle,
		OriginalTitle:       d.OriginalTitle,
		OriginalDescription: d.OriginalDescription,
		EnhancedTitle:       d.EnhancedTitle,
		EnhancedDescription: d.EnhancedDescription,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

// MongoSummaryDocFromDomain converts a domain entity to a MongoDB document
func MongoSummaryDocFromDomain(s *domain.AISummary) *MongoSummaryDoc {
	return &MongoSummaryDoc{
		Shop:                s.Shop,
		ShopifyProductID:    s.ShopifyProductID,
		ProductTitle:        s.ProductTitle,
		OriginalTitle:       s.OriginalTitle,
		OriginalDescription: s.OriginalDescription,
		EnhancedTitle:       s.EnhancedTitle,
		EnhancedDescription: s.EnhancedDescription,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}
