package ports

import (
	"context"

	"shopify-summary-sync/internal/domain"
)

// SummaryGenerator produces an enhanced title and description for a product.
// One upstream call per invocation, no internal retry or concurrency;
// callers serialize and space out calls.
type SummaryGenerator interface {
	Generate(ctx context.Context, title, description string) (*domain.GeneratedSummary, error)
}
