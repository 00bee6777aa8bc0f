package application

import (
	"context"
	"testing"

	"shopify-summary-sync/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStatusFixture() (*StatusService, *fakeShopRepo, *fakeJobRepo, *fakeQueue) {
	shops := newFakeShopRepo()
	jobs := newFakeJobRepo()
	queue := &fakeQueue{}
	svc := NewStatusService(
		shops, jobs, newFakeProductRepo(), newFakeSummaryRepo(),
		&fakeSyncLogRepo{}, queue, zerolog.Nop(),
	)
	return svc, shops, jobs, queue
}

func TestTriggerFullSync(t *testing.T) {
	svc, shops, jobs, queue := newStatusFixture()
	ctx := context.Background()

	shops.SaveShop(ctx, &domain.Shop{
		Domain:      "test.myshopify.com",
		AccessToken: "shpat_abc",
	})

	job, err := svc.TriggerFullSync(ctx, "test.myshopify.com")
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, domain.JobStatusPending, job.Status)
	assert.Equal(t, "test.myshopify.com", job.ShopURL)

	require.Len(t, queue.tasks, 1)
	assert.Equal(t, job.JobID, queue.tasks[0].JobID)
	assert.Equal(t, "shpat_abc", queue.tasks[0].AccessToken)

	stored, _ := jobs.Get(ctx, job.JobID)
	require.NotNil(t, stored)
}

func TestTriggerFullSyncUnknownShop(t *testing.T) {
	svc, _, _, queue := newStatusFixture()

	job, err := svc.TriggerFullSync(context.Background(), "nobody.myshopify.com")
	require.Error(t, err)
	assert.Nil(t, job)

	var valErr *domain.ValidationError
	assert.ErrorAs(t, err, &valErr)
	assert.Empty(t, queue.tasks)
}

func TestGetLatestInstallationJob(t *testing.T) {
	svc, _, jobs, _ := newStatusFixture()
	ctx := context.Background()

	job, err := svc.GetLatestInstallationJob(ctx, "test.myshopify.com")
	require.NoError(t, err)
	assert.Nil(t, job)

	jobs.Create(ctx, "job-a", "test.myshopify.com")
	job, err = svc.GetLatestInstallationJob(ctx, "test.myshopify.com")
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, "job-a", job.JobID)
}

func TestGetInstallationStatusUnknownJob(t *testing.T) {
	svc, _, _, _ := newStatusFixture()

	job, err := svc.GetInstallationStatus(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, job)
}
