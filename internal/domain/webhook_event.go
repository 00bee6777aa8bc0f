package domain

import "time"

// Webhook topics consumed by the ingress layer.
const (
	TopicAppInstalled   = "app/installed"
	TopicAppUninstalled = "app/uninstalled"
	TopicScopesUpdate   = "app/scopes_update"
	TopicProductCreate  = "products/create"
	TopicProductUpdate  = "products/update"
	TopicProductDelete  = "products/delete"
)

// WebhookEvent is a verified, normalized inbound lifecycle event.
type WebhookEvent struct {
	Topic     string    `json:"topic" bson:"topic"`
	Shop      string    `json:"shop" bson:"shop"`
	Payload   []byte    `json:"payload" bson:"payload"`
	Verified  bool      `json:"verified" bson:"verified"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// SyncTask is the durable payload of one queued full-sync job.
type SyncTask struct {
	JobID       string `json:"job_id"`
	ShopURL     string `json:"shop_url"`
	AccessToken string `json:"access_token"`
	Attempt     int    `json:"attempt"`
}
