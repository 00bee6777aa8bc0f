package application

import (
	"context"
	"errors"
	"testing"

	"shopify-summary-sync/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogOf(titles ...string) []domain.Product {
	var products []domain.Product
	for i, title := range titles {
		products = append(products, domain.Product{
			ShopifyProductID: newGID(i + 1),
			Title:            title,
			Description:      "description of " + title,
		})
	}
	return products
}

func newGID(n int) string {
	return "gid://shopify/Product/" + string(rune('0'+n))
}

type syncFixture struct {
	products  *fakeProductRepo
	summaries *fakeSummaryRepo
	syncLogs  *fakeSyncLogRepo
	jobs      *fakeJobRepo
	fetcher   *fakeFetcher
	generator *fakeGenerator
	svc       *SyncService
}

func newSyncFixture(fetcher *fakeFetcher, generator *fakeGenerator) *syncFixture {
	f := &syncFixture{
		products:  newFakeProductRepo(),
		summaries: newFakeSummaryRepo(),
		syncLogs:  &fakeSyncLogRepo{},
		jobs:      newFakeJobRepo(),
		fetcher:   fetcher,
		generator: generator,
	}
	f.svc = NewSyncServiceWithOptions(
		f.products, f.summaries, f.syncLogs, f.jobs,
		f.fetcher, f.generator, zerolog.Nop(), 0,
	)
	return f
}

func TestRunFullSyncFreshInstall(t *testing.T) {
	f := newSyncFixture(
		&fakeFetcher{products: catalogOf("Mug", "Shirt", "Hat")},
		&fakeGenerator{},
	)
	task := &domain.SyncTask{JobID: "job-1", ShopURL: "test.myshopify.com", AccessToken: "token"}

	err := f.svc.RunFullSync(context.Background(), task)
	require.NoError(t, err)

	job, err := f.jobs.Get(context.Background(), "job-1")
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, domain.JobStatusCompleted, job.Status)
	assert.Equal(t, 3, job.TotalProducts)
	assert.Equal(t, 3, job.ProductsProcessed)
	assert.Equal(t, 3, job.SummariesGenerated)
	assert.Equal(t, 100, job.ProgressPercentage)
	assert.Empty(t, job.Errors)

	products, _ := f.products.GetAll(context.Background(), "test.myshopify.com")
	assert.Len(t, products, 3)
	summaries, _ := f.summaries.GetAll(context.Background(), "test.myshopify.com")
	assert.Len(t, summaries, 3)

	logs, _ := f.syncLogs.List(context.Background(), "test.myshopify.com")
	require.Len(t, logs, 1)
	assert.Equal(t, domain.SyncStatusSuccess, logs[0].Status)
	assert.Equal(t, 3, logs[0].ProductsCount)
}

func TestRunFullSyncContinuesPastGenerationFailure(t *testing.T) {
	f := newSyncFixture(
		&fakeFetcher{products: catalogOf("A", "B", "C", "D", "E")},
		&fakeGenerator{failOn: map[string]error{
			"C": &domain.GenerationError{Reason: "rate limited"},
		}},
	)
	task := &domain.SyncTask{JobID: "job-2", ShopURL: "test.myshopify.com", AccessToken: "token"}

	err := f.svc.RunFullSync(context.Background(), task)
	require.NoError(t, err)

	job, _ := f.jobs.Get(context.Background(), "job-2")
	assert.Equal(t, domain.JobStatusCompleted, job.Status)
	assert.Equal(t, 5, job.ProductsProcessed)
	assert.Equal(t, 4, job.SummariesGenerated)
	require.Len(t, job.Errors, 1)
	assert.Equal(t, "C", job.Errors[0].ProductTitle)

	// The failed product is still mirrored.
	products, _ := f.products.GetAll(context.Background(), "test.myshopify.com")
	assert.Len(t, products, 5)

	logs, _ := f.syncLogs.List(context.Background(), "test.myshopify.com")
	require.Len(t, logs, 1)
	assert.Equal(t, domain.SyncStatusSuccess, logs[0].Status)
}

func TestRunFullSyncFetchFailureIsFatal(t *testing.T) {
	fetchErr := &domain.UpstreamError{Op: "fetch catalog", Err: errors.New("boom")}
	f := newSyncFixture(&fakeFetcher{err: fetchErr}, &fakeGenerator{})
	task := &domain.SyncTask{JobID: "job-3", ShopURL: "test.myshopify.com", AccessToken: "token"}

	err := f.svc.RunFullSync(context.Background(), task)
	require.Error(t, err)

	job, _ := f.jobs.Get(context.Background(), "job-3")
	assert.Equal(t, domain.JobStatusFailed, job.Status)
	assert.Equal(t, 0, job.ProductsProcessed)
	assert.NotEmpty(t, job.ErrorMessage)

	logs, _ := f.syncLogs.List(context.Background(), "test.myshopify.com")
	require.Len(t, logs, 1)
	assert.Equal(t, domain.SyncStatusFailed, logs[0].Status)
	assert.Equal(t, 0, logs[0].ProductsCount)
	assert.NotEmpty(t, logs[0].ErrorMessage)
}

func TestRunFullSyncSkipsUnchangedSummaries(t *testing.T) {
	f := newSyncFixture(
		&fakeFetcher{products: catalogOf("Mug", "Shirt")},
		&fakeGenerator{},
	)
	// The Mug summary matches the current title and description, the Shirt
	// one was generated from an older description.
	f.summaries.Upsert(context.Background(), "test.myshopify.com", newGID(1), &domain.AISummary{
		OriginalTitle:       "Mug",
		OriginalDescription: "description of Mug",
		EnhancedTitle:       "Great Mug",
	})
	f.summaries.Upsert(context.Background(), "test.myshopify.com", newGID(2), &domain.AISummary{
		OriginalTitle:       "Shirt",
		OriginalDescription: "old description",
		EnhancedTitle:       "Great Shirt",
	})
	task := &domain.SyncTask{JobID: "job-4", ShopURL: "test.myshopify.com", AccessToken: "token"}

	err := f.svc.RunFullSync(context.Background(), task)
	require.NoError(t, err)

	assert.Equal(t, []string{"Shirt"}, f.generator.titles)

	job, _ := f.jobs.Get(context.Background(), "job-4")
	assert.Equal(t, 2, job.ProductsProcessed)
	assert.Equal(t, 1, job.SummariesGenerated)
}

func TestRunFullSyncSkipsUntitledProducts(t *testing.T) {
	catalog := catalogOf("Mug")
	catalog = append(catalog, domain.Product{ShopifyProductID: newGID(9), Title: ""})
	f := newSyncFixture(&fakeFetcher{products: catalog}, &fakeGenerator{})
	task := &domain.SyncTask{JobID: "job-5", ShopURL: "test.myshopify.com", AccessToken: "token"}

	err := f.svc.RunFullSync(context.Background(), task)
	require.NoError(t, err)

	assert.Equal(t, 1, f.generator.calls())

	job, _ := f.jobs.Get(context.Background(), "job-5")
	assert.Equal(t, domain.JobStatusCompleted, job.Status)
	assert.Equal(t, 2, job.ProductsProcessed)
	assert.Equal(t, 1, job.SummariesGenerated)
	assert.Empty(t, job.Errors)
}

func TestRunFullSyncProgressIsMonotonic(t *testing.T) {
	f := newSyncFixture(
		&fakeFetcher{products: catalogOf("A", "B", "C", "D")},
		&fakeGenerator{failOn: map[string]error{"B": errors.New("bad output")}},
	)
	task := &domain.SyncTask{JobID: "job-6", ShopURL: "test.myshopify.com", AccessToken: "token"}

	err := f.svc.RunFullSync(context.Background(), task)
	require.NoError(t, err)

	require.Len(t, f.jobs.snapshots, 4)
	prev := progressSnapshot{}
	for _, snap := range f.jobs.snapshots {
		assert.GreaterOrEqual(t, snap.processed, prev.processed)
		assert.GreaterOrEqual(t, snap.generated, prev.generated)
		assert.GreaterOrEqual(t, snap.percentage, prev.percentage)
		prev = snap
	}
	assert.Equal(t, 4, prev.processed)
	assert.Equal(t, 100, prev.percentage)
}

func TestRunFullSyncRedeliveredTaskGetsFreshJob(t *testing.T) {
	f := newSyncFixture(&fakeFetcher{products: catalogOf("Mug")}, &fakeGenerator{})
	ctx := context.Background()

	// Simulate a completed job whose task is redelivered by the queue.
	f.jobs.Create(ctx, "job-7", "test.myshopify.com")
	f.jobs.MarkCompleted(ctx, "job-7", 1, 1, nil)

	task := &domain.SyncTask{JobID: "job-7", ShopURL: "test.myshopify.com", AccessToken: "token"}
	err := f.svc.RunFullSync(ctx, task)
	require.NoError(t, err)

	// The terminal job is untouched and a new one ran to completion.
	original, _ := f.jobs.Get(ctx, "job-7")
	assert.Equal(t, domain.JobStatusCompleted, original.Status)
	assert.Len(t, f.jobs.jobs, 2)

	latest, _ := f.jobs.GetLatest(ctx, "test.myshopify.com")
	assert.NotEqual(t, "job-7", latest.JobID)
	assert.Equal(t, domain.JobStatusCompleted, latest.Status)
}

func TestRunFullSyncEmptyCatalog(t *testing.T) {
	f := newSyncFixture(&fakeFetcher{}, &fakeGenerator{})
	task := &domain.SyncTask{JobID: "job-8", ShopURL: "test.myshopify.com", AccessToken: "token"}

	err := f.svc.RunFullSync(context.Background(), task)
	require.NoError(t, err)

	job, _ := f.jobs.Get(context.Background(), "job-8")
	assert.Equal(t, domain.JobStatusCompleted, job.Status)
	assert.Equal(t, 0, job.TotalProducts)
	assert.Equal(t, 0, f.generator.calls())

	logs, _ := f.syncLogs.List(context.Background(), "test.myshopify.com")
	require.Len(t, logs, 1)
	assert.Equal(t, domain.SyncStatusSuccess, logs[0].Status)
}

func TestSyncProductGeneratesOnChange(t *testing.T) {
	f := newSyncFixture(&fakeFetcher{}, &fakeGenerator{})
	ctx := context.Background()
	product := &domain.Product{ShopifyProductID: newGID(1), Title: "Mug", Description: "ceramic"}

	err := f.svc.SyncProduct(ctx, "test.myshopify.com", product)
	require.NoError(t, err)
	assert.Equal(t, 1, f.generator.calls())

	// Same title and description again: no new generation.
	err = f.svc.SyncProduct(ctx, "test.myshopify.com", product)
	require.NoError(t, err)
	assert.Equal(t, 1, f.generator.calls())

	// Changed description: exactly one more call.
	product.Description = "stoneware"
	err = f.svc.SyncProduct(ctx, "test.myshopify.com", product)
	require.NoError(t, err)
	assert.Equal(t, 2, f.generator.calls())

	summary, _ := f.summaries.Get(ctx, "test.myshopify.com", newGID(1))
	require.NotNil(t, summary)
	assert.Equal(t, "stoneware", summary.OriginalDescription)
}

func TestSyncProductSwallowsGenerationFailure(t *testing.T) {
	f := newSyncFixture(&fakeFetcher{}, &fakeGenerator{failOn: map[string]error{
		"Mug": &domain.GenerationError{Reason: "timeout"},
	}})
	ctx := context.Background()
	product := &domain.Product{ShopifyProductID: newGID(1), Title: "Mug", Description: "ceramic"}

	err := f.svc.SyncProduct(ctx, "test.myshopify.com", product)
	require.NoError(t, err)

	// The mirror update landed even though generation failed.
	stored, _ := f.products.GetByID(ctx, "test.myshopify.com", newGID(1))
	require.NotNil(t, stored)
	summary, _ := f.summaries.Get(ctx, "test.myshopify.com", newGID(1))
	assert.Nil(t, summary)
}

func TestSyncProductSkipsUntitled(t *testing.T) {
	f := newSyncFixture(&fakeFetcher{}, &fakeGenerator{})
	product := &domain.Product{ShopifyProductID: newGID(1), Title: ""}

	err := f.svc.SyncProduct(context.Background(), "test.myshopify.com", product)
	require.NoError(t, err)
	assert.Equal(t, 0, f.generator.calls())
}

func TestDeleteProductCascadesToSummary(t *testing.T) {
	f := newSyncFixture(&fakeFetcher{}, &fakeGenerator{})
	ctx := context.Background()

	product := &domain.Product{ShopifyProductID: newGID(1), Title: "Mug", Description: "ceramic"}
	require.NoError(t, f.svc.SyncProduct(ctx, "test.myshopify.com", product))

	err := f.svc.DeleteProduct(ctx, "test.myshopify.com", newGID(1))
	require.NoError(t, err)

	stored, _ := f.products.GetByID(ctx, "test.myshopify.com", newGID(1))
	assert.Nil(t, stored)
	summary, _ := f.summaries.Get(ctx, "test.myshopify.com", newGID(1))
	assert.Nil(t, summary)
}

func TestDeleteProductToleratesSummaryDeleteFailure(t *testing.T) {
	f := newSyncFixture(&fakeFetcher{}, &fakeGenerator{})
	f.summaries.deleteErr = &domain.StorageError{Op: "delete summary", Err: errors.New("down")}

	err := f.svc.DeleteProduct(context.Background(), "test.myshopify.com", newGID(1))
	assert.NoError(t, err)
}

func TestRunFullSyncShopIsolation(t *testing.T) {
	f := newSyncFixture(&fakeFetcher{products: catalogOf("Mug")}, &fakeGenerator{})
	ctx := context.Background()

	// Another shop already has a summary for the same product id.
	f.summaries.Upsert(ctx, "other.myshopify.com", newGID(1), &domain.AISummary{
		OriginalTitle:       "Mug",
		OriginalDescription: "description of Mug",
	})

	task := &domain.SyncTask{JobID: "job-9", ShopURL: "test.myshopify.com", AccessToken: "token"}
	require.NoError(t, f.svc.RunFullSync(ctx, task))

	// The other shop's summary did not satisfy this shop's fingerprint check.
	assert.Equal(t, 1, f.generator.calls())
	other, _ := f.summaries.Get(ctx, "other.myshopify.com", newGID(1))
	require.NotNil(t, other)
	assert.Empty(t, other.EnhancedDescription)
}
