package domain

import "time"

// AISummary is the generated enhancement for one product, one-to-one with
// the mirrored product. The stored original title/description pair is the
// fingerprint that decides whether the summary is still valid.
type AISummary struct {
	Shop                string    `json:"shop" bson:"shop"`
	ShopifyProductID    string    `json:"shopify_product_id" bson:"shopify_product_id"`
	ProductTitle        string    `json:"product_title" bson:"product_title"`
	OriginalTitle       string    `json:"original_title" bson:"original_title"`
	OriginalDescription string    `json:"original_description" bson:"original_description"`
	EnhancedTitle       string    `json:"enhanced_title" bson:"enhanced_title"`
	EnhancedDescription string    `json:"enhanced_description" bson:"enhanced_description"`
	CreatedAt           time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" bson:"updated_at"`
}

// Stale reports whether the summary's content fingerprint no longer matches
// the product's current title and description.
func (s *AISummary) Stale(title, description string) bool {
	return s.OriginalTitle != title || s.OriginalDescription != description
}

// GeneratedSummary is the raw output of one generation call.
type GeneratedSummary struct {
	EnhancedTitle       string `json:"enhancedTitle"`
	EnhancedDescription string `json:"enhancedDescription"`
	OriginalTitle       string `json:"originalTitle"`
	OriginalDescription string `json:"originalDescription"`
}

// NewAISummary builds the stored summary document from a generation result.
func NewAISummary(shop string, product *Product, gen *GeneratedSummary) *AISummary {
	now := time.Now()
	return &AISummary{
		Shop:                shop,
		ShopifyProductID:    product.ShopifyProductID,
		ProductTitle:        product.Title,
		OriginalTitle:       gen.OriginalTitle,
		OriginalDescription: gen.OriginalDescription,
		EnhancedTitle:       gen.EnhancedTitle,
		EnhancedDescription: gen.EnhancedDescription,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}
