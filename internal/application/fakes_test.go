package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"shopify-summary-sync/internal/domain"
	"shopify-summary-sync/internal/ports"
)

func key(shop, id string) string { return shop + "|" + id }

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*domain.Product
	// upsertErr fails Upsert for the given product id
	upsertErr map[string]error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*domain.Product{}, upsertErr: map[string]error{}}
}

func (r *fakeProductRepo) Upsert(_ context.Context, shop string, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.upsertErr[product.ShopifyProductID]; ok {
		return err
	}
	copied := *product
	copied.Shop = shop
	r.products[key(shop, product.ShopifyProductID)] = &copied
	return nil
}

func (r *fakeProductRepo) GetAll(_ context.Context, shop string) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Product
	for _, p := range r.products {
		if p.Shop == shop {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, shop, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[key(shop, id)], nil
}

func (r *fakeProductRepo) Delete(_ context.Context, shop, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, key(shop, id))
	return nil
}

type fakeSummaryRepo struct {
	mu        sync.Mutex
	summaries map[string]*domain.AISummary
	deleteErr error
}

func newFakeSummaryRepo() *fakeSummaryRepo {
	return &fakeSummaryRepo{summaries: map[string]*domain.AISummary{}}
}

func (r *fakeSummaryRepo) Upsert(_ context.Context, shop, id string, summary *domain.AISummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *summary
	copied.Shop = shop
	copied.ShopifyProductID = id
	r.summaries[key(shop, id)] = &copied
	return nil
}

func (r *fakeSummaryRepo) Get(_ context.Context, shop, id string) (*domain.AISummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.summaries[key(shop, id)], nil
}

func (r *fakeSummaryRepo) GetAll(_ context.Context, shop string) ([]*domain.AISummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.AISummary
	for _, s := range r.summaries {
		if s.Shop == shop {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSummaryRepo) Delete(_ context.Context, shop, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.summaries, key(shop, id))
	return nil
}

func (r *fakeSummaryRepo) DeleteAll(_ context.Context, shop string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, s := range r.summaries {
		if s.Shop == shop {
			delete(r.summaries, k)
		}
	}
	return nil
}

type fakeSyncLogRepo struct {
	mu      sync.Mutex
	entries []*domain.SyncLog
}

func (r *fakeSyncLogRepo) Append(_ context.Context, entry *domain.SyncLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *entry
	r.entries = append(r.entries, &copied)
	return nil
}

func (r *fakeSyncLogRepo) List(_ context.Context, shop string) ([]*domain.SyncLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.SyncLog
	for _, e := range r.entries {
		if e.Shop == shop {
			out = append(out, e)
		}
	}
	return out, nil
}

type progressSnapshot struct {
	processed  int
	generated  int
	percentage int
}

type fakeJobRepo struct {
	mu        sync.Mutex
	jobs      map[string]*domain.InstallationJob
	snapshots []progressSnapshot
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: map[string]*domain.InstallationJob{}}
}

func (r *fakeJobRepo) Create(_ context.Context, jobID, shop string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[jobID]; ok {
		return nil
	}
	r.jobs[jobID] = &domain.InstallationJob{
		JobID:     jobID,
		ShopURL:   shop,
		Status:    domain.JobStatusPending,
		CreatedAt: time.Now(),
	}
	return nil
}

func (r *fakeJobRepo) Get(_ context.Context, jobID string) (*domain.InstallationJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[jobID]
	if !ok {
		return nil, nil
	}
	copied := *job
	return &copied, nil
}

func (r *fakeJobRepo) GetLatest(_ context.Context, shop string) (*domain.InstallationJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *domain.InstallationJob
	for _, job := range r.jobs {
		if job.ShopURL != shop {
			continue
		}
		if latest == nil || job.CreatedAt.After(latest.CreatedAt) {
			latest = job
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (r *fakeJobRepo) MarkStarted(_ context.Context, jobID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[jobID]
	if !ok {
		return fmt.Errorf("job %s not found", jobID)
	}
	job.Status = domain.JobStatusProcessing
	job.StartedAt = time.Now()
	return nil
}

func (r *fakeJobRepo) SetTotal(_ context.Context, jobID string, total int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[jobID]
	if !ok {
		return fmt.Errorf("job %s not found", jobID)
	}
	job.TotalProducts = total
	return nil
}

func (r *fakeJobRepo) UpdateProgress(_ context.Context, jobID string, processed, generated, total int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[jobID]
	if !ok {
		return fmt.Errorf("job %s not found", jobID)
	}
	job.ProductsProcessed = processed
	job.SummariesGenerated = generated
	job.ProgressPercentage = domain.ProgressPercentage(processed, total)
	r.snapshots = append(r.snapshots, progressSnapshot{processed, generated, job.ProgressPercentage})
	return nil
}

func (r *fakeJobRepo) MarkCompleted(_ context.Context, jobID string, processed, generated int, errs []domain.ProductError) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[jobID]
	if !ok {
		return fmt.Errorf("job %s not found", jobID)
	}
	job.Status = domain.JobStatusCompleted
	job.ProductsProcessed = processed
	job.SummariesGenerated = generated
	job.ProgressPercentage = 100
	job.Errors = errs
	job.CompletedAt = time.Now()
	return nil
}

func (r *fakeJobRepo) MarkFailed(_ context.Context, jobID, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[jobID]
	if !ok {
		return fmt.Errorf("job %s not found", jobID)
	}
	job.Status = domain.JobStatusFailed
	job.ErrorMessage = message
	job.CompletedAt = time.Now()
	return nil
}

type fakeFetcher struct {
	products []domain.Product
	err      error
}

func (f *fakeFetcher) FetchAll(_ context.Context, shop, _ string) ([]domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Product, len(f.products))
	copy(out, f.products)
	for i := range out {
		out[i].Shop = shop
	}
	return out, nil
}

type fakeGenerator struct {
	mu     sync.Mutex
	titles []string
	// failOn maps an input title to the error its generation returns
	failOn map[string]error
}

func (g *fakeGenerator) Generate(_ context.Context, title, description string) (*domain.GeneratedSummary, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.titles = append(g.titles, title)
	if err, ok := g.failOn[title]; ok {
		return nil, err
	}
	return &domain.GeneratedSummary{
		EnhancedTitle:       "Enhanced " + title,
		EnhancedDescription: "Enhanced " + description,
		OriginalTitle:       title,
		OriginalDescription: description,
	}, nil
}

func (g *fakeGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.titles)
}

type fakeQueue struct {
	mu    sync.Mutex
	tasks []*domain.SyncTask
}

func (q *fakeQueue) Enqueue(_ context.Context, task *domain.SyncTask) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	copied := *task
	q.tasks = append(q.tasks, &copied)
	return nil
}

func (q *fakeQueue) Consume(_ context.Context, _ ports.SyncTaskHandler) error {
	return nil
}

type fakeShopRepo struct {
	mu    sync.Mutex
	shops map[string]*domain.Shop
}

func newFakeShopRepo() *fakeShopRepo {
	return &fakeShopRepo{shops: map[string]*domain.Shop{}}
}

func (r *fakeShopRepo) SaveShop(_ context.Context, shop *domain.Shop) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *shop
	r.shops[shop.Domain] = &copied
	return nil
}

func (r *fakeShopRepo) GetShop(_ context.Context, shopDomain string) (*domain.Shop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	shop, ok := r.shops[shopDomain]
	if !ok {
		return nil, nil
	}
	copied := *shop
	return &copied, nil
}

func (r *fakeShopRepo) DeleteShop(_ context.Context, shopDomain string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.shops, shopDomain)
	return nil
}

func (r *fakeShopRepo) LogWebhook(_ context.Context, _ *domain.WebhookEvent) error {
	return nil
}
