package ports

import (
	"context"

	"shopify-summary-sync/internal/domain"
)

// ProductFetcher retrieves the full product catalog for a shop from the
// upstream API. The contract is all-or-nothing: either the complete catalog
// is returned, or an error and no products.
type ProductFetcher interface {
	FetchAll(ctx context.Context, shop string, accessToken string) ([]domain.Product, error)
}
