package webhook_handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"shopify-summary-sync/internal/domain"

	"github.com/rs/zerolog"
)

// ProductSyncer is the slice of the sync service the product handler needs.
type ProductSyncer interface {
	SyncProduct(ctx context.Context, shop string, product *domain.Product) error
	DeleteProduct(ctx context.Context, shop string, shopifyProductID string) error
}

// ProductHandler handles product-related webhook events
type ProductHandler struct {
	syncer ProductSyncer
	logger zerolog.Logger
}

// NewProductHandler creates a new product webhook handler
func NewProductHandler(syncer ProductSyncer, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		syncer: syncer,
		logger: logger,
	}
}

// CanHandle returns true if this handler can process the given topic
func (h *ProductHandler) CanHandle(topic string) bool {
	return topic == domain.TopicProductCreate ||
		topic == domain.TopicProductUpdate ||
		topic == domain.TopicProductDelete
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// productWebhookPayload is the REST-shaped body of product webhooks. The
// Admin GraphQL API uses gid identifiers, so numeric ids get the gid prefix
// before touching storage.
type productWebhookPayload struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	BodyHTML    string     `json:"body_html"`
	Handle      string     `json:"handle"`
	Vendor      string     `json:"vendor"`
	ProductType string     `json:"product_type"`
	Tags        string     `json:"tags"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at"`
	Variants    []struct {
		ID                int64  `json:"id"`
		Title             string `json:"title"`
		Price             string `json:"price"`
		CompareAtPrice    string `json:"compare_at_price"`
		SKU               string `json:"sku"`
		Barcode           string `json:"barcode"`
		InventoryQuantity int    `json:"inventory_quantity"`
	} `json:"variants"`
	Images []struct {
		ID     int64  `json:"id"`
		Src    string `json:"src"`
		Alt    string `json:"alt"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
	} `json:"images"`
}

// Handle processes a product webhook event
func (h *ProductHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	var payload productWebhookPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return fmt.Errorf("failed to parse product webhook payload: %w", err)
	}
	if payload.ID == 0 {
		return &domain.ValidationError{Message: "product webhook payload missing id"}
	}

	productID := fmt.Sprintf("gid://shopify/Product/%d", payload.ID)

	h.logger.Info().
		Str("topic", event.Topic).
		Str("shop", event.Shop).
		Str("product_id", productID).
		Str("title", payload.Title).
		Msg("Processing product webhook event")

	if event.Topic == domain.TopicProductDelete {
		return h.syncer.DeleteProduct(ctx, event.Shop, productID)
	}

	return h.syncer.SyncProduct(ctx, event.Shop, payload.toDomain(event.Shop, productID))
}

func (p *productWebhookPayload) toDomain(shop, productID string) *domain.Product {
	product := &domain.Product{
		Shop:             shop,
		ShopifyProductID: productID,
		Title:            p.Title,
		Description:      strings.TrimSpace(htmlTagPattern.ReplaceAllString(p.BodyHTML, "")),
		DescriptionHTML:  p.BodyHTML,
		Handle:           p.Handle,
		Status:           domain.ProductStatus(strings.ToUpper(p.Status)),
		Vendor:           p.Vendor,
		ProductType:      p.ProductType,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.Tags != "" {
		product.Tags = strings.Split(p.Tags, ", ")
	}
	if p.PublishedAt != nil {
		product.PublishedAt = *p.PublishedAt
	}
	for _, v := range p.Variants {
		product.Variants = append(product.Variants, domain.ProductVariant{
			ID:                fmt.Sprintf("gid://shopify/ProductVariant/%d", v.ID),
			Title:             v.Title,
			Price:             v.Price,
			CompareAtPrice:    v.CompareAtPrice,
			SKU:               v.SKU,
			Barcode:           v.Barcode,
			InventoryQuantity: v.InventoryQuantity,
		})
	}
	for _, img := range p.Images {
		product.Images = append(product.Images, domain.ProductImage{
			ID:      fmt.Sprintf("gid://shopify/ProductImage/%d", img.ID),
			URL:     img.Src,
			AltText: img.Alt,
			Width:   img.Width,
			Height:  img.Height,
		})
	}
	if len(product.Images) > 0 {
		product.FeaturedImage = &product.Images[0]
	}
	return product
}
