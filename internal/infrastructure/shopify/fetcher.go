package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shopify-summary-sync/internal/domain"
	"shopify-summary-sync/internal/ports"

	"github.com/rs/zerolog"
)

const pageSize = 250

// CatalogFetcher retrieves the complete product catalog for a shop via
// cursor pagination. The whole catalog is buffered before returning, so a
// failure on any page means no products at all.
type CatalogFetcher struct {
	client      *GraphQLClient
	maxProducts int
	logger      zerolog.Logger
}

// NewCatalogFetcher creates a catalog fetcher. maxProducts caps the in-memory
// buffer; catalogs above it fail explicitly instead of truncating.
func NewCatalogFetcher(client *GraphQLClient, maxProducts int, logger zerolog.Logger) ports.ProductFetcher {
	return &CatalogFetcher{
		client:      client,
		maxProducts: maxProducts,
		logger:      logger,
	}
}

type productsPage struct {
	Products struct {
		Edges []struct {
			Node productNode `json:"node"`
		} `json:"edges"`
		PageInfo struct {
			HasNextPage bool   `json:"hasNextPage"`
			EndCursor   string `json:"endCursor"`
		} `json:"pageInfo"`
	} `json:"products"`
}

type productNode struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	DescriptionHTML string     `json:"descriptionHtml"`
	Handle          string     `json:"handle"`
	Status          string     `json:"status"`
	Vendor          string     `json:"vendor"`
	ProductType     string     `json:"productType"`
	Tags            []string   `json:"tags"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	PublishedAt     *time.Time `json:"publishedAt"`
	OnlineStoreURL  string     `json:"onlineStoreUrl"`
	FeaturedImage   *imageNode `json:"featuredImage"`
	Images          struct {
		Edges []struct {
			Node imageNode `json:"node"`
		} `json:"edges"`
	} `json:"images"`
	Variants struct {
		Edges []struct {
			Node variantNode `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
}

type imageNode struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	AltText string `json:"altText"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

type variantNode struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Price             string     `json:"price"`
	CompareAtPrice    string     `json:"compareAtPrice"`
	SKU               string     `json:"sku"`
	Barcode           string     `json:"barcode"`
	InventoryQuantity int        `json:"inventoryQuantity"`
	Image             *imageNode `json:"image"`
}

// FetchAll pages through the shop's catalog until hasNextPage is false.
func (f *CatalogFetcher) FetchAll(ctx context.Context, shop string, accessToken string) ([]domain.Product, error) {
	var products []domain.Product
	var cursor string

	for {
		variables := map[string]interface{}{"first": pageSize}
		if cursor != "" {
			variables["after"] = cursor
		}

		data, err := f.client.Execute(ctx, shop, accessToken, productsQuery, variables)
		if err != nil {
			return nil, err
		}

		var page productsPage
		if err := json.Unmarshal(data, &page); err != nil {
			return nil, &domain.UpstreamError{Op: "decode products page", Err: err}
		}

		for _, edge := range page.Products.Edges {
			products = append(products, *edge.Node.toDomain(shop))
		}

		if f.maxProducts > 0 && len(products) > f.maxProducts {
			return nil, &domain.UpstreamError{
				Op:  "fetch catalog",
				Err: fmt.Errorf("catalog exceeds %d products", f.maxProducts),
			}
		}

		f.logger.Debug().
			Str("shop", shop).
			Int("fetched", len(products)).
			Bool("has_next_page", page.Products.PageInfo.HasNextPage).
			Msg("Fetched product page")

		if !page.Products.PageInfo.HasNextPage {
			break
		}
		cursor = page.Products.PageInfo.EndCursor
	}

	f.logger.Info().
		Str("shop", shop).
		Int("products", len(products)).
		Msg("Fetched full catalog")

	return products, nil
}

func (n *productNode) toDomain(shop string) *domain.Product {
	p := &domain.Product{
		Shop:             shop,
		ShopifyProductID: n.ID,
		Title:            n.Title,
		Description:      n.Description,
		DescriptionHTML:  n.DescriptionHTML,
		Handle:           n.Handle,
		Status:           domain.ProductStatus(n.Status),
		Vendor:           n.Vendor,
		ProductType:      n.ProductType,
		Tags:             n.Tags,
		CreatedAt:        n.CreatedAt,
		UpdatedAt:        n.UpdatedAt,
		OnlineStoreURL:   n.OnlineStoreURL,
	}
	if n.PublishedAt != nil {
		p.PublishedAt = *n.PublishedAt
	}
	if n.FeaturedImage != nil {
		p.FeaturedImage = n.FeaturedImage.toDomain()
	}
	for _, edge := range n.Images.Edges {
		p.Images = append(p.Images, *edge.Node.toDomain())
	}
	for _, edge := range n.Variants.Edges {
		p.Variants = append(p.Variants, *edge.Node.toDomain())
	}
	return p
}

func (n *imageNode) toDomain() *domain.ProductImage {
	return &domain.ProductImage{
		ID:      n.ID,
		URL:     n.URL,
		AltText: n.AltText,
		Width:   n.Width,
		Height:  n.Height,
	}
}

func (n *variantNode) toDomain() *domain.ProductVariant {
	v := &domain.ProductVariant{
		ID:                n.ID,
		Title:             n.Title,
		Price:             n.Price,
		CompareAtPrice:    n.CompareAtPrice,
		SKU:               n.SKU,
		Barcode:           n.Barcode,
		InventoryQuantity: n.InventoryQuantity,
	}
	if n.Image != nil {
		v.Image = n.Image.toDomain()
	}
	return v
}
