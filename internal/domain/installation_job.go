package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math"
	"time"
)

// JobStatus is the installation job state machine:
// pending -> processing -> {completed, failed}.
// There is no transition out of a terminal state; a new sync pass creates
// a new job record.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// InstallationJob tracks one long-running install/sync pass for a shop.
// Multiple jobs may exist per shop; the most recently created one is
// authoritative for status queries.
type InstallationJob struct {
	JobID              string         `json:"job_id" bson:"job_id"`
	ShopURL            string         `json:"shop_url" bson:"shop_url"`
	Status             JobStatus      `json:"status" bson:"status"`
	TotalProducts      int            `json:"total_products" bson:"total_products"`
	ProductsProcessed  int            `json:"products_processed" bson:"products_processed"`
	SummariesGenerated int            `json:"summaries_generated" bson:"summaries_generated"`
	ProgressPercentage int            `json:"progress_percentage" bson:"progress_percentage"`
	CreatedAt          time.Time      `json:"created_at" bson:"created_at"`
	StartedAt          time.Time      `json:"started_at,omitempty" bson:"started_at,omitempty"`
	CompletedAt        time.Time      `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	ErrorMessage       string         `json:"error_message,omitempty" bson:"error_message,omitempty"`
	Errors             []ProductError `json:"errors,omitempty" bson:"errors,omitempty"`
}

// ProductError records a non-fatal per-product failure during a pass.
// A completed job with product errors is a partial success, not a failure.
type ProductError struct {
	ProductID    string `json:"product_id" bson:"product_id"`
	ProductTitle string `json:"product_title" bson:"product_title"`
	Error        string `json:"error" bson:"error"`
}

// Terminal reports whether the job has reached a final state.
func (j *InstallationJob) Terminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}

// ProgressPercentage computes the integer progress for a pass. The total is
// fixed at pass start and never revised mid-pass.
func ProgressPercentage(processed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(processed) / float64(total) * 100))
}

// NewJobID generates a unique job identifier for a shop.
func NewJobID(shop string) string {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a
		// timestamp-only id rather than panic.
		return fmt.Sprintf("install-%s-%d", shop, time.Now().UnixMilli())
	}
	return fmt.Sprintf("install-%s-%d-%s", shop, time.Now().UnixMilli(), hex.EncodeToString(suffix))
}
