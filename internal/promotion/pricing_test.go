package promotion

import (
	"testing"
	"time"

	"github.com/casadopastor/catalog-service/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func promo(discountType string, value float64) *model.Promotion {
	return &model.Promotion{
		BaseModel:     model.BaseModel{ID: "promo-1"},
		Name:          "test promo",
		DiscountType:  discountType,
		DiscountValue: decimal.NewFromFloat(value),
		StartsAt:      time.Now().Add(-time.Hour),
		EndsAt:        time.Now().Add(time.Hour),
		IsActive:      true,
	}
}

func TestPriceWithoutPromotion(t *testing.T) {
	base := decimal.NewFromFloat(29.90)
	priced := Price(base, nil)

	assert.True(t, priced.FinalPrice.Equal(base))
	assert.True(t, priced.OriginalPrice.Equal(base))
	assert.False(t, priced.HasPromotion)
	assert.True(t, priced.Discount.IsZero())
}

func TestPricePercentageDiscount(t *testing.T) {
	priced := Price(decimal.NewFromFloat(100.00), promo(model.DiscountPercentage, 20))

	assert.True(t, priced.FinalPrice.Equal(decimal.NewFromFloat(80.00)), "final price was %s", priced.FinalPrice)
	assert.True(t, priced.Discount.Equal(decimal.NewFromFloat(20.00)), "discount was %s", priced.Discount)
	assert.True(t, priced.HasPromotion)
	assert.True(t, priced.OriginalPrice.Equal(decimal.NewFromFloat(100.00)))
}

func TestPriceFixedDiscountClampedToZero(t *testing.T) {
	priced := Price(decimal.NewFromFloat(10.00), promo(model.DiscountFixed, 50))

	assert.True(t, priced.FinalPrice.IsZero(), "final price was %s", priced.FinalPrice)
	assert.False(t, priced.FinalPrice.IsNegative())
	// The effective discount is what actually came off, not the raw value.
	assert.True(t, priced.Discount.Equal(decimal.NewFromFloat(10.00)), "discount was %s", priced.Discount)
	assert.True(t, priced.HasPromotion)
}

func TestPriceFixedDiscount(t *testing.T) {
	priced := Price(decimal.NewFromFloat(50.00), promo(model.DiscountFixed, 15))

	assert.True(t, priced.FinalPrice.Equal(decimal.NewFromFloat(35.00)))
	assert.True(t, priced.Discount.Equal(decimal.NewFromFloat(15.00)))
}

func TestPriceNeverNegative(t *testing.T) {
	cases := []struct {
		name  string
		base  float64
		promo *model.Promotion
	}{
		{"fixed larger than base", 5.00, promo(model.DiscountFixed, 100)},
		{"fixed equal to base", 25.00, promo(model.DiscountFixed, 25)},
		{"hundred percent", 99.99, promo(model.DiscountPercentage, 100)},
		{"zero base fixed", 0, promo(model.DiscountFixed, 10)},
		{"zero base percentage", 0, promo(model.DiscountPercentage, 50)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			priced := Price(decimal.NewFromFloat(tc.base), tc.promo)
			assert.False(t, priced.FinalPrice.IsNegative())
			assert.True(t, priced.Discount.LessThanOrEqual(priced.OriginalPrice))
		})
	}
}

func TestPriceUnknownDiscountTypeIgnored(t *testing.T) {
	p := promo("bogus", 10)
	priced := Price(decimal.NewFromFloat(40.00), p)

	assert.False(t, priced.HasPromotion)
	assert.True(t, priced.FinalPrice.Equal(decimal.NewFromFloat(40.00)))
}

func TestPricePercentageRounding(t *testing.T) {
	// 33.33% of 29.90 is 9.9657; the discount rounds to cents.
	priced := Price(decimal.NewFromFloat(29.90), promo(model.DiscountPercentage, 33.33))

	assert.True(t, priced.FinalPrice.Equal(decimal.NewFromFloat(19.93)), "final price was %s", priced.FinalPrice)
}
