package domain

import "time"

// SyncStatus is the outcome of one full-sync pass.
type SyncStatus string

const (
	SyncStatusSuccess SyncStatus = "success"
	SyncStatusFailed  SyncStatus = "failed"
)

// SyncLog is an append-only audit record written once per full-sync
// attempt, on success and failure alike.
type SyncLog struct {
	Shop          string     `json:"shop" bson:"shop"`
	Status        SyncStatus `json:"status" bson:"status"`
	ProductsCount int        `json:"products_count" bson:"products_count"`
	DurationMS    int64      `json:"duration_ms" bson:"duration_ms"`
	ErrorMessage  string     `json:"error_message,omitempty" bson:"error_message,omitempty"`
	Timestamp     time.Time  `json:"timestamp" bson:"timestamp"`
}
