package ports

import (
	"context"

	"shopify-summary-sync/internal/domain"
)

// SyncTaskHandler executes one queued full-sync task.
type SyncTaskHandler func(ctx context.Context, task *domain.SyncTask) error

// TaskQueue is a durable queue of full-sync tasks with job-id deduplication.
type TaskQueue interface {
	Enqueue(ctx context.Context, task *domain.SyncTask) error
	Consume(ctx context.Context, handler SyncTaskHandler) error
}
