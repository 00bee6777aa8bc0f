package entity

import (
	"time"

	"shopify-summary-sync/internal/domain"
)

// MongoShopDoc represents a connected shop in MongoDB
type MongoShopDoc struct {
	Domain      string    `bson:"domain"`
	AccessToken string    `bson:"access_token"`
	Scopes      []string  `bson:"scopes"`
	InstalledAt time.Time `bson:"installed_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

// MongoWebhookLogDoc is one received webhook, kept for auditing
type MongoWebhookLogDoc struct {
	Topic      string    `bson:"topic"`
	Shop       string    `bson:"shop"`
	Verified   bool      `bson:"verified"`
	ReceivedAt time.Time `bson:"received_at"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoShopDoc) ToDomain() *domain.Shop {
	return &domain.Shop{
		Domain:      d.Domain,
		AccessToken: d.AccessToken,
		Scopes:      d.Scopes,
		InstalledAt: d.InstalledAt,
	}
}

// MongoShopDocFromDomain converts a domain entity to a MongoDB document
func MongoShopDocFromDomain(s *domain.Shop) *MongoShopDoc {
	return &MongoShopDoc{
		Domain:      s.Domain,
		AccessToken: s.AccessToken,
		Scopes:      s.Scopes,
		InstalledAt: s.InstalledAt,
		UpdatedAt:   time.Now(),
	}
}
