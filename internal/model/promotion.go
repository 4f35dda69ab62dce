package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

type Promotion struct {
	BaseModel
	Name          string          `db:"name" json:"name"`
	DiscountType  string          `db:"discount_type" json:"discount_type"` // percentage | fixed
	DiscountValue decimal.Decimal `db:"discount_value" json:"discount_value"`
	StartsAt      time.Time       `db:"starts_at" json:"starts_at"`
	EndsAt        time.Time       `db:"ends_at" json:"ends_at"`
	IsActive      bool            `db:"is_active" json:"is_active"`
}

// ActiveAt reports whether the promotion window covers the given instant.
func (p Promotion) ActiveAt(at time.Time) bool {
	return p.IsActive && !at.Before(p.StartsAt) && at.Before(p.EndsAt)
}

// PromotionVariation scopes a promotion to specific variations.
type PromotionVariation struct {
	PromotionID string `db:"promotion_id" json:"promotion_id"`
	VariationID string `db:"variation_id" json:"variation_id"`
}
