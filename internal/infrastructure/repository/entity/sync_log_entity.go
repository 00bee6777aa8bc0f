package entity

import (
	"time"

	"shopify-summary-sync/internal/domain"
)

// MongoSyncLogDoc represents a sync audit record in MongoDB
type MongoSyncLogDoc struct {
	Shop          string    `bson:"shop"`
	Status        string    `bson:"status"`
	ProductsCount int       `bson:"products_count"`
	DurationMS    int64     `bson:"duration_ms"`
	ErrorMessage  string    `bson:"error_message,omitempty"`
	Timestamp     time.Time `bson:"timestamp"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoSyncLogDoc) ToDomain() *domain.SyncLog {
	return &domain.SyncLog{
		Shop:          d.Shop,
		Status:        domain.SyncStatus(d.Status),
		ProductsCount: d.ProductsCount,
		DurationMS:    d.DurationMS,
		ErrorMessage:  d.ErrorMessage,
		Timestamp:     d.Timestamp,
	}
}

// MongoSyncLogDocFromDomain converts a domain entity to a MongoDB document
func MongoSyncLogDocFromDomain(l *domain.SyncLog) *MongoSyncLogDoc {
	return &MongoSyncLogDoc{
		Shop:          l.Shop,
		Status:        string(l.Status),
		ProductsCount: l.ProductsCount,
		DurationMS:    l.DurationMS,
		ErrorMessage:  l.ErrorMessage,
		Timestamp:     l.Timestamp,
	}
}
