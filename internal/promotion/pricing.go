package promotion

import (
	"github.com/casadopastor/catalog-service/internal/model"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Priced is the outcome of applying a promotion to a base price.
type Priced struct {
	FinalPrice    decimal.Decimal
	OriginalPrice decimal.Decimal
	HasPromotion  bool
	// Discount is the effective amount taken off, after the zero floor.
	Discount  decimal.Decimal
	Promotion *model.Promotion
}

// Price computes the final price for a variation. Percentage discounts take
// base*value/100, fixed discounts take the value itself; the result never
// drops below zero.
func Price(base decimal.Decimal, promo *model.Promotion) Priced {
	if promo == nil {
		return Priced{FinalPrice: base, OriginalPrice: base, Discount: decimal.Zero}
	}

	var discount decimal.Decimal
	switch promo.DiscountType {
	case model.DiscountPercentage:
		discount = base.Mul(promo.DiscountValue).Div(hundred).Round(2)
	case model.DiscountFixed:
		discount = promo.DiscountValue
	default:
		// Unknown discount type degrades to no discount.
		return Priced{FinalPrice: base, OriginalPrice: base, Discount: decimal.Zero}
	}

	final := base.Sub(discount)
	if final.IsNegative() {
		final = decimal.Zero
	}

	return Priced{
		FinalPrice:    final,
		OriginalPrice: base,
		HasPromotion:  true,
		Discount:      base.Sub(final),
		Promotion:     promo,
	}
}
