package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreatePromotionInput struct {
	Name          string          `json:"name"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	StartsAt      time.Time       `json:"starts_at"`
	EndsAt        time.Time       `json:"ends_at"`
	VariationIDs  []string        `json:"variation_ids"`
}

type PromotionFilters struct {
	IsActive   *bool  `json:"is_active"`
	ActiveNow  bool   `json:"active_now"`
	SortBy     string `json:"sort_by"`
	SortOrder  string `json:"sort_order"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	SearchName string `json:"search_name"`
}
