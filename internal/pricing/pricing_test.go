package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func fee(v int64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d(v), Valid: true}
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name     string
		lines    []Line
		discount decimal.Decimal
		want     Breakdown
	}{
		{
			name:     "single line without coupon",
			lines:    []Line{{UnitPrice: d(1000), Quantity: 2, ShippingFee: fee(200)}},
			discount: decimal.Zero,
			want:     Breakdown{Subtotal: d(2000), Discount: d(0), DeliveryCharge: d(400), Total: d(2400)},
		},
		{
			name:     "single line with capped coupon",
			lines:    []Line{{UnitPrice: d(1000), Quantity: 2, ShippingFee: fee(200)}},
			discount: d(150),
			want:     Breakdown{Subtotal: d(2000), Discount: d(150), DeliveryCharge: d(400), Total: d(2250)},
		},
		{
			name: "missing fee falls back to default",
			lines: []Line{
				{UnitPrice: d(500), Quantity: 1, ShippingFee: fee(0)},
				{UnitPrice: d(300), Quantity: 3},
			},
			discount: decimal.Zero,
			want:     Breakdown{Subtotal: d(1400), Discount: d(0), DeliveryCharge: d(750), Total: d(2150)},
		},
		{
			name:     "discount above subtotal is not clamped",
			lines:    []Line{{UnitPrice: d(100), Quantity: 1, ShippingFee: fee(250)}},
			discount: d(300),
			want:     Breakdown{Subtotal: d(100), Discount: d(300), DeliveryCharge: d(250), Total: d(50)},
		},
		{
			name:     "no lines",
			lines:    nil,
			discount: decimal.Zero,
			want:     Breakdown{Subtotal: d(0), Discount: d(0), DeliveryCharge: d(0), Total: d(0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.lines, tt.discount)

			assert.True(t, tt.want.Subtotal.Equal(got.Subtotal), "subtotal %s", got.Subtotal)
			assert.True(t, tt.want.Discount.Equal(got.Discount), "discount %s", got.Discount)
			assert.True(t, tt.want.DeliveryCharge.Equal(got.DeliveryCharge), "delivery %s", got.DeliveryCharge)
			assert.True(t, tt.want.Total.Equal(got.Total), "total %s", got.Total)
		})
	}
}

func TestTotalIdentity(t *testing.T) {
	lines := []Line{
		{UnitPrice: decimal.RequireFromString("1499.50"), Quantity: 3, ShippingFee: fee(150)},
		{UnitPrice: d(2200), Quantity: 1},
		{UnitPrice: d(80), Quantity: 7, ShippingFee: fee(0)},
	}

	for _, discount := range []decimal.Decimal{d(0), d(10), decimal.RequireFromString("333.33")} {
		b := Calculate(lines, discount)

		assert.True(t, b.Total.Equal(b.Subtotal.Sub(b.Discount).Add(b.DeliveryCharge)))
		// 150*3 + 250*1 + 0*7
		assert.True(t, d(700).Equal(b.DeliveryCharge))
	}
}
