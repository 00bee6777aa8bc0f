package domain

import "time"

// ProductStatus mirrors the upstream product status enum.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusDraft    ProductStatus = "DRAFT"
	ProductStatusArchived ProductStatus = "ARCHIVED"
)

// Product is a mirrored copy of an upstream product, scoped to a shop.
// The pair (Shop, ShopifyProductID) is unique; an upsert replaces the
// whole record.
type Product struct {
	Shop             string           `json:"shop" bson:"shop"`
	ShopifyProductID string           `json:"shopify_product_id" bson:"shopify_product_id"`
	Title            string           `json:"title" bson:"title"`
	Description      string           `json:"description" bson:"description"`
	DescriptionHTML  string           `json:"description_html" bson:"description_html"`
	Handle           string           `json:"handle" bson:"handle"`
	Status           ProductStatus    `json:"status" bson:"status"`
	Vendor           string           `json:"vendor" bson:"vendor"`
	ProductType      string           `json:"product_type" bson:"product_type"`
	Tags             []string         `json:"tags" bson:"tags"`
	CreatedAt        time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" bson:"updated_at"`
	PublishedAt      time.Time        `json:"published_at" bson:"published_at"`
	OnlineStoreURL   string           `json:"online_store_url" bson:"online_store_url"`
	Variants         []ProductVariant `json:"variants" bson:"variants"`
	Images           []ProductImage   `json:"images" bson:"images"`
	FeaturedImage    *ProductImage    `json:"featured_image,omitempty" bson:"featured_image,omitempty"`
	SyncedAt         time.Time        `json:"synced_at" bson:"synced_at"`
}

// ProductVariant is one sellable variant of a product.
type ProductVariant struct {
	ID                string        `json:"id" bson:"id"`
	Title             string        `json:"title" bson:"title"`
	Price             string        `json:"price" bson:"price"`
	CompareAtPrice    string        `json:"compare_at_price" bson:"compare_at_price"`
	SKU               string        `json:"sku" bson:"sku"`
	Barcode           string        `json:"barcode" bson:"barcode"`
	InventoryQuantity int           `json:"inventory_quantity" bson:"inventory_quantity"`
	Image             *ProductImage `json:"image,omitempty" bson:"image,omitempty"`
}

// ProductImage is a product or variant image reference.
type ProductImage struct {
	ID      string `json:"id" bson:"id"`
	URL     string `json:"url" bson:"url"`
	AltText string `json:"alt_text" bson:"alt_text"`
	Width   int    `json:"width" bson:"width"`
	Height  int    `json:"height" bson:"height"`
}
