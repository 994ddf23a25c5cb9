package coupon

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByCode(ctx context.Context, code string) (*Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Coupon), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]*Coupon, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Coupon), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, c *Coupon) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockRepository) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func intPtr(i int) *int { return &i }

func activeCoupon() *Coupon {
	return &Coupon{
		ID:            uuid.New(),
		Code:          "SAVE10",
		DiscountType:  DiscountPercentage,
		DiscountValue: d("10"),
		MinPurchase:   d("1000"),
		ValidFrom:     now.Add(-24 * time.Hour),
		ValidUntil:    now.Add(24 * time.Hour),
	}
}

func TestCoupon_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Coupon)
		want   bool
	}{
		{"inside window, no limit", func(c *Coupon) {}, true},
		{"not yet started", func(c *Coupon) { c.ValidFrom = now.Add(time.Minute) }, false},
		{"expired", func(c *Coupon) { c.ValidUntil = now.Add(-time.Minute) }, false},
		{"starts exactly now", func(c *Coupon) { c.ValidFrom = now }, true},
		{"ends exactly now", func(c *Coupon) { c.ValidUntil = now }, true},
		{"usage below limit", func(c *Coupon) { c.UsageLimit = intPtr(5); c.UsedCount = 4 }, true},
		{"usage at limit", func(c *Coupon) { c.UsageLimit = intPtr(5); c.UsedCount = 5 }, false},
		{"unlimited with heavy use", func(c *Coupon) { c.UsedCount = 10000 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := activeCoupon()
			tt.mutate(c)
			assert.Equal(t, tt.want, c.IsValid(now))
		})
	}
}

func TestCoupon_CalculateDiscount(t *testing.T) {
	t.Run("percentage uncapped", func(t *testing.T) {
		c := activeCoupon()
		assert.True(t, d("200").Equal(c.CalculateDiscount(d("2000"))))
	})

	t.Run("percentage capped by max discount", func(t *testing.T) {
		c := activeCoupon()
		c.MaxDiscount = decimal.NewNullDecimal(d("150"))
		assert.True(t, d("150").Equal(c.CalculateDiscount(d("2000"))))
	})

	t.Run("percentage below cap", func(t *testing.T) {
		c := activeCoupon()
		c.MaxDiscount = decimal.NewNullDecimal(d("500"))
		assert.True(t, d("200").Equal(c.CalculateDiscount(d("2000"))))
	})

	t.Run("fixed ignores subtotal and cap", func(t *testing.T) {
		c := activeCoupon()
		c.DiscountType = DiscountFixed
		c.DiscountValue = d("300")
		c.MaxDiscount = decimal.NewNullDecimal(d("100"))

		for _, subtotal := range []string{"100", "1000", "99999"} {
			assert.True(t, d("300").Equal(c.CalculateDiscount(d(subtotal))), subtotal)
		}
	})
}

func TestCheck(t *testing.T) {
	t.Run("nil coupon", func(t *testing.T) {
		err := Check(nil, d("5000"), now)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidCoupon)
		assert.Equal(t, "Invalid or expired coupon code", err.Error())
	})

	t.Run("expired", func(t *testing.T) {
		c := activeCoupon()
		c.ValidUntil = now.Add(-time.Hour)
		assert.ErrorIs(t, Check(c, d("5000"), now), ErrInvalidCoupon)
	})

	t.Run("below minimum", func(t *testing.T) {
		err := Check(activeCoupon(), d("999.99"), now)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrBelowMinimumPurchase)
		assert.Equal(t, "Minimum purchase of $1000 required", err.Error())

		var rej *Rejection
		require.True(t, errors.As(err, &rej))
	})

	t.Run("exactly minimum", func(t *testing.T) {
		assert.NoError(t, Check(activeCoupon(), d("1000"), now))
	})
}

func TestValidator_Evaluate(t *testing.T) {
	ctx := context.Background()

	newValidator := func(repo Repository) *Validator {
		v := NewValidator(repo)
		v.now = func() time.Time { return now }
		return v
	}

	t.Run("normalizes code and returns discount", func(t *testing.T) {
		repo := new(MockRepository)
		c := activeCoupon()
		c.MaxDiscount = decimal.NewNullDecimal(d("150"))
		repo.On("FindByCode", ctx, "SAVE10").Return(c, nil)

		got, discount, err := newValidator(repo).Evaluate(ctx, "  save10 ", d("2000"))

		require.NoError(t, err)
		assert.Equal(t, c, got)
		assert.True(t, d("150").Equal(discount))
		repo.AssertExpectations(t)
		repo.AssertNotCalled(t, "IncrementUsage", mock.Anything, mock.Anything)
	})

	t.Run("blank code", func(t *testing.T) {
		repo := new(MockRepository)

		_, discount, err := newValidator(repo).Evaluate(ctx, "   ", d("2000"))

		assert.ErrorIs(t, err, ErrInvalidCoupon)
		assert.True(t, discount.IsZero())
		repo.AssertNotCalled(t, "FindByCode", mock.Anything, mock.Anything)
	})

	t.Run("unknown code", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByCode", ctx, "NOPE").Return(nil, ErrCouponNotFound)

		_, _, err := newValidator(repo).Evaluate(ctx, "nope", d("2000"))

		assert.ErrorIs(t, err, ErrInvalidCoupon)
	})

	t.Run("store failure is not a rejection", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByCode", ctx, "SAVE10").Return(nil, errors.New("connection reset"))

		_, _, err := newValidator(repo).Evaluate(ctx, "SAVE10", d("2000"))

		require.Error(t, err)
		var rej *Rejection
		assert.False(t, errors.As(err, &rej))
		assert.Contains(t, err.Error(), "connection reset")
	})

	t.Run("below minimum", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByCode", ctx, "SAVE10").Return(activeCoupon(), nil)

		_, _, err := newValidator(repo).Evaluate(ctx, "SAVE10", d("500"))

		assert.ErrorIs(t, err, ErrBelowMinimumPurchase)
	})
}
