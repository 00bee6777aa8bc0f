package entity

import (
	"time"

	"shopify-summary-sync/internal/domain"
)

// MongoProductDoc represents a mirrored product in MongoDB
type MongoProductDoc struct {
	Shop             string            `bson:"shop"`
	ShopifyProductID string            `bson:"shopify_product_id"`
	Title            string            `bson:"title"`
	Description      string            `bson:"description"`
	DescriptionHTML  string            `bson:"description_html"`
	Handle           string            `bson:"handle"`
	Status           string            `bson:"status"`
	Vendor           string            `bson:"vendor"`
	ProductType      string            `bson:"product_type"`
	Tags             []string          `bson:"tags"`
	CreatedAt        time.Time         `bson:"created_at"`
	UpdatedAt        time.Time         `bson:"updated_at"`
	PublishedAt      time.Time         `bson:"published_at"`
	OnlineStoreURL   string            `bson:"online_store_url"`
	Variants         []MongoVariantDoc `bson:"variants"`
	Images           []MongoImageDoc   `bson:"images"`
	FeaturedImage    *MongoImageDoc    `bson:"featured_image,omitempty"`
	SyncedAt         time.Time         `bson:"synced_at"`
}

type MongoVariantDoc struct {
	ID                string         `bson:"id"`
	Title             string         `bson:"title"`
	Price             string         `bson:"price"`
	CompareAtPrice    string         `bson:"compare_at_price"`
	SKU               string         `bson:"sku"`
	Barcode           string         `bson:"barcode"`
	InventoryQuantity int            `bson:"inventory_quantity"`
	Image             *MongoImageDoc `bson:"image,omitempty"`
}

type MongoImageDoc struct {
	ID      string `bson:"id"`
	URL     string `bson:"url"`
	AltText string `bson:"alt_text"`
	Width   int    `bson:"width"`
	Height  int    `bson:"height"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoProductDoc) ToDomain() *domain.Product {
	p := &domain.Product{
		Shop:             d.Shop,
		ShopifyProductID: d.ShopifyProductID,
		Title:            d.Title,
		Description:      d.Description,
		DescriptionHTML:  d.DescriptionHTML,
		Handle:           d.Handle,
		Status:           domain.ProductStatus(d.Status),
		Vendor:           d.Vendor,
		ProductType:      d.ProductType,
		Tags:             d.Tags,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
		PublishedAt:      d.PublishedAt,
		OnlineStoreURL:   d.OnlineStoreURL,
		SyncedAt:         d.SyncedAt,
	}
	for _, v := range d.Variants {
		p.Variants = append(p.Variants, *v.toDomain())
	}
	for _, img := range d.Images {
		p.Images = append(p.Images, *img.toDomain())
	}
	if d.FeaturedImage != nil {
		p.FeaturedImage = d.FeaturedImage.toDomain()
	}
	return p
}

func (v *MongoVariantDoc) toDomain() *domain.ProductVariant {
	variant := &domain.ProductVariant{
		ID:                v.ID,
		Title:             v.Title,
		Price:             v.Price,
		CompareAtPrice:    v.CompareAtPrice,
		SKU:               v.SKU,
		Barcode:           v.Barcode,
		InventoryQuantity: v.InventoryQuantity,
	}
	if v.Image != nil {
		variant.Image = v.Image.toDomain()
	}
	return variant
}

func (i *MongoImageDoc) toDomain() *domain.ProductImage {
	return &domain.ProductImage{
		ID:      i.ID,
		URL:     i.URL,
		AltText: i.AltText,
		Width:   i.Width,
		Height:  i.Height,
	}
}

// MongoProductDocFromDomain converts a domain entity to a MongoDB document
func MongoProductDocFromDomain(p *domain.Product) *MongoProductDoc {
	doc := &MongoProductDoc{
		Shop:             p.Shop,
		ShopifyProductID: p.ShopifyProductID,
		Title:            p.Title,
		Description:      p.Description,
		DescriptionHTML:  p.DescriptionHTML,
		Handle:           p.Handle,
		Status:           string(p.Status),
		Vendor:           p.Vendor,
		ProductType:      p.ProductType,
		Tags:             p.Tags,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		PublishedAt:      p.PublishedAt,
		OnlineStoreURL:   p.OnlineStoreURL,
		SyncedAt:         p.SyncedAt,
	}
	for _, v := range p.Variants {
		doc.Variants = append(doc.Variants, *mongoVariantDocFromDomain(&v))
	}
	for _, img := range p.Images {
		doc.Images = append(doc.Images, *mongoImageDocFromDomain(&img))
	}
	if p.FeaturedImage != nil {
		doc.FeaturedImage = mongoImageDocFromDomain(p.FeaturedImage)
	}
	return doc
}

func mongoVariantDocFromDomain(v *domain.ProductVariant) *MongoVariantDoc {
	doc := &MongoVariantDoc{
		ID:                v.ID,
		Title:             v.Title,
		Price:             v.Price,
		CompareAtPrice:    v.CompareAtPrice,
		SKU:               v.SKU,
		Barcode:           v.Barcode,
		InventoryQuantity: v.InventoryQuantity,
	}
	if v.Image != nil {
		doc.Image = mongoImageDocFromDomain(v.Image)
	}
	return doc
}

func mongoImageDocFromDomain(i *domain.ProductImage) *MongoImageDoc {
	return &MongoImageDoc{
		ID:      i.ID,
		URL:     i.URL,
		AltText: i.AltText,
		Width:   i.Width,
		Height:  i.Height,
	}
}
