package coupon

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

func (t DiscountType) Valid() bool {
	return t == DiscountPercentage || t == DiscountFixed
}

type Coupon struct {
	ID            uuid.UUID           `json:"id"`
	Code          string              `json:"code"`
	DiscountType  DiscountType        `json:"discountType"`
	DiscountValue decimal.Decimal     `json:"discountValue"`
	MinPurchase   decimal.Decimal     `json:"minPurchase"`
	MaxDiscount   decimal.NullDecimal `json:"maxDiscount"`
	ValidFrom     time.Time           `json:"validFrom"`
	ValidUntil    time.Time           `json:"validUntil"`
	UsageLimit    *int                `json:"usageLimit"`
	UsedCount     int                 `json:"usedCount"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// IsValid reports whether the coupon can be redeemed at now: inside its
// validity window and, when a usage limit is set, not yet exhausted.
func (c *Coupon) IsValid(now time.Time) bool {
	if now.Before(c.ValidFrom) || now.After(c.ValidUntil) {
		return false
	}
	return c.UsageLimit == nil || c.UsedCount < *c.UsageLimit
}

// CalculateDiscount returns the amount taken off subtotal. Percentage
// discounts are capped by MaxDiscount; fixed discounts are never capped.
func (c *Coupon) CalculateDiscount(subtotal decimal.Decimal) decimal.Decimal {
	if c.DiscountType != DiscountPercentage {
		return c.DiscountValue
	}

	discount := subtotal.Mul(c.DiscountValue).Div(decimal.NewFromInt(100))
	if c.MaxDiscount.Valid && discount.GreaterThan(c.MaxDiscount.Decimal) {
		return c.MaxDiscount.Decimal
	}
	return discount
}

type CreateCouponInput struct {
	Code          string
	DiscountType  DiscountType
	DiscountValue decimal.Decimal
	MinPurchase   decimal.Decimal
	MaxDiscount   decimal.NullDecimal
	ValidFrom     time.Time
	ValidUntil    time.Time
	UsageLimit    *int
}
