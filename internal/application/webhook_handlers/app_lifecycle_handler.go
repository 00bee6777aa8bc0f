package webhook_handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shopify-summary-sync/internal/domain"
	"shopify-summary-sync/internal/ports"

	"github.com/rs/zerolog"
)

// AppLifecycleHandler handles install, uninstall and scope-change events
type AppLifecycleHandler struct {
	shops     ports.ShopRepository
	summaries ports.SummaryRepository
	jobs      ports.InstallationJobRepository
	queue     ports.TaskQueue
	logger    zerolog.Logger
}

// NewAppLifecycleHandler creates a new app lifecycle webhook handler
func NewAppLifecycleHandler(
	shops ports.ShopRepository,
	summaries ports.SummaryRepository,
	jobs ports.InstallationJobRepository,
	queue ports.TaskQueue,
	logger zerolog.Logger,
) *AppLifecycleHandler {
	return &AppLifecycleHandler{
		shops:     shops,
		summaries: summaries,
		jobs:      jobs,
		queue:     queue,
		logger:    logger,
	}
}

// CanHandle returns true if this handler can process the given topic
func (h *AppLifecycleHandler) CanHandle(topic string) bool {
	return topic == domain.TopicAppInstalled ||
		topic == domain.TopicAppUninstalled ||
		topic == domain.TopicScopesUpdate
}

// Handle processes an app lifecycle webhook event
func (h *AppLifecycleHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	switch event.Topic {
	case domain.TopicAppInstalled:
		return h.handleInstalled(ctx, event)
	case domain.TopicAppUninstalled:
		return h.handleUninstalled(ctx, event)
	case domain.TopicScopesUpdate:
		return h.handleScopesUpdate(ctx, event)
	}
	return nil
}

func (h *AppLifecycleHandler) handleInstalled(ctx context.Context, event *domain.WebhookEvent) error {
	var payload struct {
		ShopDomain  string   `json:"shop_domain"`
		AccessToken string   `json:"access_token"`
		Scopes      []string `json:"scopes"`
	}
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return fmt.Errorf("failed to parse install payload: %w", err)
	}

	shopDomain := payload.ShopDomain
	if shopDomain == "" {
		shopDomain = event.Shop
	}
	if shopDomain == "" || payload.AccessToken == "" {
		return &domain.ValidationError{Message: "install payload missing shop domain or access token"}
	}

	shop := &domain.Shop{
		Domain:      shopDomain,
		AccessToken: payload.AccessToken,
		Scopes:      payload.Scopes,
		InstalledAt: time.Now(),
	}
	if err := h.shops.SaveShop(ctx, shop); err != nil {
		return err
	}

	jobID := domain.NewJobID(shopDomain)
	if err := h.jobs.Create(ctx, jobID, shopDomain); err != nil {
		return err
	}

	task := &domain.SyncTask{
		JobID:       jobID,
		ShopURL:     shopDomain,
		AccessToken: payload.AccessToken,
		Attempt:     1,
	}
	if err := h.queue.Enqueue(ctx, task); err != nil {
		return err
	}

	h.logger.Info().
		Str("shop", shopDomain).
		Str("job_id", jobID).
		Msg("App installed, initial sync enqueued")
	return nil
}

// handleUninstalled drops the shop's credentials and summaries. The product
// mirror and sync history stay for a possible reinstall.
func (h *AppLifecycleHandler) handleUninstalled(ctx context.Context, event *domain.WebhookEvent) error {
	if event.Shop == "" {
		return &domain.ValidationError{Message: "uninstall event missing shop domain"}
	}

	if err := h.shops.DeleteShop(ctx, event.Shop); err != nil {
		return err
	}
	if err := h.summaries.DeleteAll(ctx, event.Shop); err != nil {
		return err
	}

	h.logger.Info().Str("shop", event.Shop).Msg("App uninstalled, shop data removed")
	return nil
}

func (h *AppLifecycleHandler) handleScopesUpdate(ctx context.Context, event *domain.WebhookEvent) error {
	var payload struct {
		Current []string `json:"current"`
	}
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return fmt.Errorf("failed to parse scopes update payload: %w", err)
	}

	shop, err := h.shops.GetShop(ctx, event.Shop)
	if err != nil {
		return err
	}
	if shop == nil {
		h.logger.Warn().Str("shop", event.Shop).Msg("Scopes update for unknown shop, ignoring")
		return nil
	}

	shop.Scopes = payload.Current
	if err := h.shops.SaveShop(ctx, shop); err != nil {
		return err
	}

	h.logger.Info().
		Str("shop", event.Shop).
		Strs("scopes", payload.Current).
		Msg("Shop scopes updated")
	return nil
}
