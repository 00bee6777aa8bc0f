package application

import (
	"context"
	"time"

	"shopify-summary-sync/internal/domain"
	"shopify-summary-sync/internal/infrastructure/metrics"
	"shopify-summary-sync/internal/ports"

	"github.com/rs/zerolog"
)

// SyncService orchestrates catalog synchronization and summary generation.
type SyncService struct {
	products  ports.ProductRepository
	summaries ports.SummaryRepository
	syncLogs  ports.SyncLogRepository
	jobs      ports.InstallationJobRepository
	fetcher   ports.ProductFetcher
	generator ports.SummaryGenerator
	logger    zerolog.Logger

	// generationDelay spaces consecutive generation calls within a pass to
	// stay under the provider's rate limits.
	generationDelay time.Duration
}

// NewSyncService creates a sync service with the default generation spacing.
func NewSyncService(
	products ports.ProductRepository,
	summaries ports.SummaryRepository,
	syncLogs ports.SyncLogRepository,
	jobs ports.InstallationJobRepository,
	fetcher ports.ProductFetcher,
	generator ports.SummaryGenerator,
	logger zerolog.Logger,
) *SyncService {
	return NewSyncServiceWithOptions(products, summaries, syncLogs, jobs, fetcher, generator, logger, 500*time.Millisecond)
}

// NewSyncServiceWithOptions creates a sync service with explicit generation
// spacing. Tests pass zero.
func NewSyncServiceWithOptions(
	products ports.ProductRepository,
	summaries ports.SummaryRepository,
	syncLogs ports.SyncLogRepository,
	jobs ports.InstallationJobRepository,
	fetcher ports.ProductFetcher,
	generator ports.SummaryGenerator,
	logger zerolog.Logger,
	generationDelay time.Duration,
) *SyncService {
	return &SyncService{
		products:        products,
		summaries:       summaries,
		syncLogs:        syncLogs,
		jobs:            jobs,
		fetcher:         fetcher,
		generator:       generator,
		logger:          logger,
		generationDelay: generationDelay,
	}
}

// RunFullSync executes one full catalog pass for a queued task. The catalog
// fetch is all-or-nothing and fatal on failure; per-product storage and
// generation failures are recorded on the job and do not abort the pass.
// A sync log entry is written on every exit path.
func (s *SyncService) RunFullSync(ctx context.Context, task *domain.SyncTask) (err error) {
	jobID := task.JobID
	shop := task.ShopURL

	// A redelivered task whose job already finished gets a fresh job record;
	// terminal jobs are never reopened.
	existing, getErr := s.jobs.Get(ctx, jobID)
	if getErr != nil {
		return getErr
	}
	if existing != nil && existing.Terminal() {
		jobID = domain.NewJobID(shop)
		s.logger.Info().
			Str("previous_job_id", task.JobID).
			Str("job_id", jobID).
			Msg("Task job already finished, starting a new job")
	}
	if err := s.jobs.Create(ctx, jobID, shop); err != nil {
		return err
	}
	if err := s.jobs.MarkStarted(ctx, jobID); err != nil {
		return err
	}

	start := time.Now()
	status := domain.SyncStatusFailed
	productsCount := 0
	errMessage := ""
	defer func() {
		if err != nil {
			errMessage = err.Error()
		}
		entry := &domain.SyncLog{
			Shop:          shop,
			Status:        status,
			ProductsCount: productsCount,
			DurationMS:    time.Since(start).Milliseconds(),
			ErrorMessage:  errMessage,
			Timestamp:     time.Now(),
		}
		if logErr := s.syncLogs.Append(context.WithoutCancel(ctx), entry); logErr != nil {
			s.logger.Error().Err(logErr).Str("shop", shop).Msg("Failed to write sync log")
		}
		metrics.SyncPasses.WithLabelValues(string(status)).Inc()
		metrics.SyncDuration.Observe(time.Since(start).Seconds())
	}()

	s.logger.Info().Str("shop", shop).Str("job_id", jobID).Msg("Starting full catalog sync")

	catalog, err := s.fetcher.FetchAll(ctx, shop, task.AccessToken)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", shop).Str("job_id", jobID).Msg("Catalog fetch failed")
		if markErr := s.jobs.MarkFailed(context.WithoutCancel(ctx), jobID, err.Error()); markErr != nil {
			s.logger.Error().Err(markErr).Str("job_id", jobID).Msg("Failed to mark job failed")
		}
		return err
	}

	total := len(catalog)
	if err := s.jobs.SetTotal(ctx, jobID, total); err != nil {
		return err
	}

	processed := 0
	generated := 0
	var productErrors []domain.ProductError

	for i := range catalog {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
			if markErr := s.jobs.MarkFailed(context.WithoutCancel(ctx), jobID, ctxErr.Error()); markErr != nil {
				s.logger.Error().Err(markErr).Str("job_id", jobID).Msg("Failed to mark job failed")
			}
			return err
		}

		product := &catalog[i]
		if perr := s.syncOne(ctx, shop, product, &generated); perr != nil {
			productErrors = append(productErrors, domain.ProductError{
				ProductID:    product.ShopifyProductID,
				ProductTitle: product.Title,
				Error:        perr.Error(),
			})
			s.logger.Warn().Err(perr).
				Str("shop", shop).
				Str("product_id", product.ShopifyProductID).
				Msg("Product failed, continuing pass")
		}
		processed++

		if upErr := s.jobs.UpdateProgress(ctx, jobID, processed, generated, total); upErr != nil {
			s.logger.Error().Err(upErr).Str("job_id", jobID).Msg("Failed to update job progress")
		}
	}

	if err := s.jobs.MarkCompleted(ctx, jobID, processed, generated, productErrors); err != nil {
		return err
	}

	status = domain.SyncStatusSuccess
	productsCount = processed

	s.logger.Info().
		Str("shop", shop).
		Str("job_id", jobID).
		Int("processed", processed).
		Int("generated", generated).
		Int("errors", len(productErrors)).
		Msg("Full catalog sync completed")
	return nil
}

// syncOne upserts one product and regenerates its summary when needed.
func (s *SyncService) syncOne(ctx context.Context, shop string, product *domain.Product, generated *int) error {
	if err := s.products.Upsert(ctx, shop, product); err != nil {
		return err
	}
	metrics.ProductsSynced.Inc()

	if product.Title == "" {
		return nil
	}

	summary, err := s.summaries.Get(ctx, shop, product.ShopifyProductID)
	if err != nil {
		return err
	}
	if summary != nil && !summary.Stale(product.Title, product.Description) {
		return nil
	}

	if s.generationDelay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.generationDelay):
		}
	}

	gen, err := s.generator.Generate(ctx, product.Title, product.Description)
	if err != nil {
		metrics.GenerationFailures.Inc()
		return err
	}
	if err := s.summaries.Upsert(ctx, shop, product.ShopifyProductID, domain.NewAISummary(shop, product, gen)); err != nil {
		return err
	}

	*generated++
	metrics.SummariesGenerated.Inc()
	return nil
}

// SyncProduct mirrors a single product and refreshes its summary if the
// title or description changed. Generation failures are logged and
// swallowed; the mirror update already succeeded.
func (s *SyncService) SyncProduct(ctx context.Context, shop string, product *domain.Product) error {
	if err := s.products.Upsert(ctx, shop, product); err != nil {
		return err
	}
	metrics.ProductsSynced.Inc()

	if product.Title == "" {
		return nil
	}

	summary, err := s.summaries.Get(ctx, shop, product.ShopifyProductID)
	if err != nil {
		return err
	}
	if summary != nil && !summary.Stale(product.Title, product.Description) {
		return nil
	}

	gen, err := s.generator.Generate(ctx, product.Title, product.Description)
	if err != nil {
		metrics.GenerationFailures.Inc()
		s.logger.Warn().Err(err).
			Str("shop", shop).
			Str("product_id", product.ShopifyProductID).
			Msg("Summary generation failed for webhook update")
		return nil
	}
	if err := s.summaries.Upsert(ctx, shop, product.ShopifyProductID, domain.NewAISummary(shop, product, gen)); err != nil {
		return err
	}
	metrics.SummariesGenerated.Inc()
	return nil
}

// DeleteProduct removes a product mirror and its summary. A missing summary
// is not an error, and a summary delete failure does not undo the product
// delete.
func (s *SyncService) DeleteProduct(ctx context.Context, shop string, shopifyProductID string) error {
	if err := s.products.Delete(ctx, shop, shopifyProductID); err != nil {
		return err
	}
	if err := s.summaries.Delete(ctx, shop, shopifyProductID); err != nil {
		s.logger.Error().Err(err).
			Str("shop", shop).
			Str("product_id", shopifyProductID).
			Msg("Failed to delete summary for removed product")
	}
	return nil
}
