package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductDetail is the aggregate the storefront renders: merged
// translations, resolved category, images, and fully priced variations.
type ProductDetail struct {
	ID              string          `json:"id"`
	Slug            string          `json:"slug"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	LongDescription string          `json:"long_description"`
	SeoTitle        string          `json:"seo_title,omitempty"`
	SeoDescription  string          `json:"seo_description,omitempty"`
	BasePrice       decimal.Decimal `json:"base_price"`
	OriginalPrice   decimal.Decimal `json:"original_price"`
	HasPromotion    bool            `json:"has_promotion"`
	FileType        string          `json:"file_type"`
	Category        *CategoryRef    `json:"category"`
	Tags            []string        `json:"tags"`
	Images          []ImageView     `json:"images"`
	Variations      []VariationView `json:"variations"`
}

type CategoryRef struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type ImageView struct {
	ID        string `json:"id,omitempty"`
	URL       string `json:"url"`
	SortOrder int    `json:"sort_order"`
	IsMain    bool   `json:"is_main"`
}

type VariationView struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	Price           decimal.Decimal      `json:"price"`
	OriginalPrice   decimal.Decimal      `json:"original_price"`
	HasPromotion    bool                 `json:"has_promotion"`
	Discount        decimal.Decimal      `json:"discount"`
	Promotion       *PromotionView       `json:"promotion,omitempty"`
	AttributeValues []AttributeValueView `json:"attribute_values"`
	Files           []FileView           `json:"files"`
	Images          []ImageView          `json:"images"`
}

type PromotionView struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	EndsAt        time.Time       `json:"ends_at"`
}

// AttributeValueView is the resolved pair ("Color", "Blue"). Either side is
// empty when the dictionaries are missing the referenced id; a bad join row
// degrades to that, it never fails the response.
type AttributeValueView struct {
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
}

type FileView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
}
