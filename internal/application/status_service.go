package application

import (
	"context"

	"shopify-summary-sync/internal/domain"
	"shopify-summary-sync/internal/ports"

	"github.com/rs/zerolog"
)

// StatusService serves the read API and triggers sync passes.
type StatusService struct {
	shops     ports.ShopRepository
	jobs      ports.InstallationJobRepository
	products  ports.ProductRepository
	summaries ports.SummaryRepository
	syncLogs  ports.SyncLogRepository
	queue     ports.TaskQueue
	logger    zerolog.Logger
}

// NewStatusService creates a new status service
func NewStatusService(
	shops ports.ShopRepository,
	jobs ports.InstallationJobRepository,
	products ports.ProductRepository,
	summaries ports.SummaryRepository,
	syncLogs ports.SyncLogRepository,
	queue ports.TaskQueue,
	logger zerolog.Logger,
) *StatusService {
	return &StatusService{
		shops:     shops,
		jobs:      jobs,
		products:  products,
		summaries: summaries,
		syncLogs:  syncLogs,
		queue:     queue,
		logger:    logger,
	}
}

// TriggerFullSync registers a pending job for the shop and enqueues the
// sync task. The pass itself runs on the worker.
func (s *StatusService) TriggerFullSync(ctx context.Context, shopDomain string) (*domain.InstallationJob, error) {
	shop, err := s.shops.GetShop(ctx, shopDomain)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, &domain.ValidationError{Message: "shop is not connected"}
	}

	jobID := domain.NewJobID(shop.Domain)
	if err := s.jobs.Create(ctx, jobID, shop.Domain); err != nil {
		return nil, err
	}

	task := &domain.SyncTask{
		JobID:       jobID,
		ShopURL:     shop.Domain,
		AccessToken: shop.AccessToken,
		Attempt:     1,
	}
	if err := s.queue.Enqueue(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("shop", shop.Domain).
		Str("job_id", jobID).
		Msg("Triggered full sync")

	return s.jobs.Get(ctx, jobID)
}

// GetInstallationStatus retrieves a job by id, or nil if unknown.
func (s *StatusService) GetInstallationStatus(ctx context.Context, jobID string) (*domain.InstallationJob, error) {
	return s.jobs.Get(ctx, jobID)
}

// GetLatestInstallationJob retrieves the most recent job for a shop, or nil
// if the shop never synced.
func (s *StatusService) GetLatestInstallationJob(ctx context.Context, shop string) (*domain.InstallationJob, error) {
	return s.jobs.GetLatest(ctx, shop)
}

// GetProducts retrieves every mirrored product for a shop.
func (s *StatusService) GetProducts(ctx context.Context, shop string) ([]*domain.Product, error) {
	return s.products.GetAll(ctx, shop)
}

// GetProductSummary retrieves the stored summary for a product, or nil.
func (s *StatusService) GetProductSummary(ctx context.Context, shop string, shopifyProductID string) (*domain.AISummary, error) {
	return s.summaries.Get(ctx, shop, shopifyProductID)
}

// GetSyncLogs retrieves the sync audit trail for a shop, newest first.
func (s *StatusService) GetSyncLogs(ctx context.Context, shop string) ([]*domain.SyncLog, error) {
	return s.syncLogs.List(ctx, shop)
}
