package coupon

import (
	"context"

	"sheenclassics/internal/logger"
	"sheenclassics/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service is the admin surface over coupons. Redemption goes through
// Validator instead.
type Service interface {
	List(ctx context.Context) ([]*Coupon, error)
	Create(ctx context.Context, input CreateCouponInput) (*Coupon, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*Coupon, error) {
	coupons, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if coupons == nil {
		coupons = []*Coupon{}
	}
	return coupons, nil
}

func (s *service) Create(ctx context.Context, input CreateCouponInput) (*Coupon, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateCoupon"),
	)

	if err := validateCreate(&input); err != nil {
		log.Info("invalid coupon input", zap.Error(err))
		return nil, err
	}

	c := &Coupon{
		Code:          input.Code,
		DiscountType:  input.DiscountType,
		DiscountValue: input.DiscountValue,
		MinPurchase:   input.MinPurchase,
		MaxDiscount:   input.MaxDiscount,
		ValidFrom:     input.ValidFrom,
		ValidUntil:    input.ValidUntil,
		UsageLimit:    input.UsageLimit,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	log.Info("coupon created", zap.String("code", c.Code), zap.String("coupon_id", c.ID.String()))
	return c, nil
}

func validateCreate(input *CreateCouponInput) error {
	input.Code = utils.NormalizeCode(input.Code)
	if input.Code == "" {
		return ErrCodeRequired
	}
	if !input.DiscountType.Valid() {
		return ErrInvalidDiscountType
	}
	if !input.DiscountValue.IsPositive() {
		return ErrInvalidDiscountValue
	}
	if input.DiscountType == DiscountPercentage && input.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
		return ErrPercentageTooLarge
	}
	if input.MinPurchase.IsNegative() {
		return ErrInvalidMinPurchase
	}
	if !input.ValidUntil.After(input.ValidFrom) {
		return ErrInvalidValidityWindow
	}
	if input.UsageLimit != nil && *input.UsageLimit < 1 {
		return ErrInvalidUsageLimit
	}
	return nil
}
