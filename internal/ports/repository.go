package ports

import (
	"context"

	"shopify-summary-sync/internal/domain"
)

// ProductRepository persists mirrored products, scoped per shop. Upsert is
// a full-document replace keyed by (shop, id); delete is idempotent.
type ProductRepository interface {
	Upsert(ctx context.Context, shop string, product *domain.Product) error
	GetAll(ctx context.Context, shop string) ([]*domain.Product, error)
	GetByID(ctx context.Context, shop string, shopifyProductID string) (*domain.Product, error)
	Delete(ctx context.Context, shop string, shopifyProductID string) error
}

// SummaryRepository persists AI summaries keyed by (shop, product id).
type SummaryRepository interface {
	Upsert(ctx context.Context, shop string, shopifyProductID string, summary *domain.AISummary) error
	Get(ctx context.Context, shop string, shopifyProductID string) (*domain.AISummary, error)
	GetAll(ctx context.Context, shop string) ([]*domain.AISummary, error)
	Delete(ctx context.Context, shop string, shopifyProductID string) error
	DeleteAll(ctx context.Context, shop string) error
}

// SyncLogRepository appends audit records for full-sync attempts.
type SyncLogRepository interface {
	Append(ctx context.Context, entry *domain.SyncLog) error
	List(ctx context.Context, shop string) ([]*domain.SyncLog, error)
}

// InstallationJobRepository tracks install/sync job lifecycle and progress.
type InstallationJobRepository interface {
	Create(ctx context.Context, jobID string, shop string) error
	Get(ctx context.Context, jobID string) (*domain.InstallationJob, error)
	GetLatest(ctx context.Context, shop string) (*domain.InstallationJob, error)
	MarkStarted(ctx context.Context, jobID string) error
	SetTotal(ctx context.Context, jobID string, total int) error
	UpdateProgress(ctx context.Context, jobID string, processed, generated, total int) error
	MarkCompleted(ctx context.Context, jobID string, processed, generated int, errs []domain.ProductError) error
	MarkFailed(ctx context.Context, jobID string, message string) error
}

// ShopRepository persists connected shops and the inbound webhook audit log.
type ShopRepository interface {
	SaveShop(ctx context.Context, shop *domain.Shop) error
	GetShop(ctx context.Context, shopDomain string) (*domain.Shop, error)
	DeleteShop(ctx context.Context, shopDomain string) error
	LogWebhook(ctx context.Context, event *domain.WebhookEvent) error
}
