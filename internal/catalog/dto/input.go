package dto

import "github.com/shopspring/decimal"

type ProductFilters struct {
	CategoryID  string `json:"category_id"`
	IsActive    *bool  `json:"is_active"`
	SearchQuery string `json:"search_query"`
	SortBy      string `json:"sort_by"`
	SortOrder   string `json:"sort_order"`
	Page        int    `json:"page"`
	PageSize    int    `json:"page_size"`
}

type CreateProductInput struct {
	Slug             string `json:"slug"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	ShortDescription string `json:"short_description"`
	CategoryID       string `json:"category_id"`
	FileType         string `json:"file_type"`
}

type UpdateProductInput struct {
	ID               string `json:"id"`
	Slug             string `json:"slug"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	ShortDescription string `json:"short_description"`
	CategoryID       string `json:"category_id"`
	FileType         string `json:"file_type"`
	IsActive         *bool  `json:"is_active"`
}

type CreateVariationInput struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	SortOrder int             `json:"sort_order"`
}

type UpsertProductTranslationInput struct {
	ProductID        string `json:"product_id"`
	Locale           string `json:"locale"`
	Name             string `json:"name"`
	Slug             string `json:"slug"`
	Description      string `json:"description"`
	ShortDescription string `json:"short_description"`
	SeoTitle         string `json:"seo_title"`
	SeoDescription   string `json:"seo_description"`
}

type UpsertVariationTranslationInput struct {
	VariationID string `json:"variation_id"`
	Locale      string `json:"locale"`
	Name        string `json:"name"`
}
