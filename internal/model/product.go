package model

import "github.com/shopspring/decimal"

// Product is the canonical, base-locale row. Translated text lives in
// ProductTranslation and is overlaid at read time.
type Product struct {
	BaseModel
	Slug             string  `db:"slug" json:"slug"`
	Name             string  `db:"name" json:"name"`
	Description      string  `db:"description" json:"description"`
	ShortDescription string  `db:"short_description" json:"short_description"`
	CategoryID       *string `db:"category_id" json:"category_id"` // Nullable
	FileType         string  `db:"file_type" json:"file_type"`
	IsActive         bool    `db:"is_active" json:"is_active"`
}

// ProductTranslation overlays locale-specific text onto a Product.
// Absent row or empty field means "fall back to the canonical value".
type ProductTranslation struct {
	ID               string `db:"id" json:"id"`
	ProductID        string `db:"product_id" json:"product_id"`
	Locale           string `db:"locale" json:"locale"`
	Name             string `db:"name" json:"name"`
	Slug             string `db:"slug" json:"slug"`
	Description      string `db:"description" json:"description"`
	ShortDescription string `db:"short_description" json:"short_description"`
	SeoTitle         string `db:"seo_title" json:"seo_title"`
	SeoDescription   string `db:"seo_description" json:"seo_description"`
}

// Variation is a purchasable child of a Product carrying its own price.
type Variation struct {
	BaseModel
	ProductID string          `db:"product_id" json:"product_id"`
	Name      string          `db:"name" json:"name"`
	Price     decimal.Decimal `db:"price" json:"price"`
	SortOrder int             `db:"sort_order" json:"sort_order"`
	IsActive  bool            `db:"is_active" json:"is_active"`
}

type VariationTranslation struct {
	ID          string `db:"id" json:"id"`
	VariationID string `db:"variation_id" json:"variation_id"`
	Locale      string `db:"locale" json:"locale"`
	Name        string `db:"name" json:"name"`
}
