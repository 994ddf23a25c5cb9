package coupon

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var (
	// -- Redemption --
	ErrInvalidCoupon        = errors.New("invalid coupon")
	ErrBelowMinimumPurchase = errors.New("below minimum purchase")

	// -- Resource State --
	ErrCouponNotFound   = errors.New("coupon not found")
	ErrCouponCodeExists = errors.New("coupon code already exists")

	// -- Validation & Input --
	ErrCodeRequired          = errors.New("coupon code is required")
	ErrInvalidDiscountType   = errors.New("discount type must be percentage or fixed")
	ErrInvalidDiscountValue  = errors.New("discount value must be greater than zero")
	ErrPercentageTooLarge    = errors.New("percentage discount cannot exceed 100")
	ErrInvalidMinPurchase    = errors.New("minimum purchase cannot be negative")
	ErrInvalidValidityWindow = errors.New("valid until must be after valid from")
	ErrInvalidUsageLimit     = errors.New("usage limit must be at least 1")

	PgUniqueViolation = "23505"
)

const invalidCouponMessage = "Invalid or expired coupon code"

// Rejection is returned when a coupon cannot be applied to a cart. Message is
// shown to the shopper as-is; Reason is one of the redemption sentinels.
type Rejection struct {
	Reason  error
	Message string
}

func (r *Rejection) Error() string { return r.Message }

func (r *Rejection) Unwrap() error { return r.Reason }

func invalidCoupon() *Rejection {
	return &Rejection{Reason: ErrInvalidCoupon, Message: invalidCouponMessage}
}

func belowMinimum(min decimal.Decimal) *Rejection {
	return &Rejection{
		Reason:  ErrBelowMinimumPurchase,
		Message: fmt.Sprintf("Minimum purchase of $%s required", min.String()),
	}
}
