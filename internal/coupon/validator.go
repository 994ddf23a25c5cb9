package coupon

import (
	"context"
	"time"

	"sheenclassics/internal/logger"
	"sheenclassics/internal/utils"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Check decides whether c may be applied to a cart worth subtotal at now.
// A nil coupon is treated like an unknown code.
func Check(c *Coupon, subtotal decimal.Decimal, now time.Time) error {
	if c == nil || !c.IsValid(now) {
		return invalidCoupon()
	}
	if subtotal.LessThan(c.MinPurchase) {
		return belowMinimum(c.MinPurchase)
	}
	return nil
}

// Validator looks coupons up by code and prices them against a subtotal.
// It never records usage; the order workflow does that once it commits.
type Validator struct {
	repo Repository
	now  func() time.Time
}

func NewValidator(repo Repository) *Validator {
	return &Validator{repo: repo, now: time.Now}
}

// Evaluate returns the coupon and the discount it grants. Rejections come back
// as *Rejection; store failures are wrapped and returned unchanged otherwise.
func (v *Validator) Evaluate(ctx context.Context, code string, subtotal decimal.Decimal) (*Coupon, decimal.Decimal, error) {
	code = utils.NormalizeCode(code)

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "coupon"),
		zap.String("method", "Evaluate"),
		zap.String("code", code),
	)

	if code == "" {
		return nil, decimal.Zero, invalidCoupon()
	}

	c, err := v.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrCouponNotFound) {
			log.Info("coupon not found")
			return nil, decimal.Zero, invalidCoupon()
		}
		log.Error("failed to lookup coupon", zap.Error(err))
		return nil, decimal.Zero, errors.Wrap(err, "lookup coupon")
	}

	if err := Check(c, subtotal, v.now()); err != nil {
		log.Info("coupon rejected", zap.String("reason", err.Error()))
		return nil, decimal.Zero, err
	}

	return c, c.CalculateDiscount(subtotal), nil
}
