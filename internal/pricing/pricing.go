// Package pricing turns resolved cart lines into order totals. It has no
// dependencies on storage so every checkout path computes totals the same way.
package pricing

import "github.com/shopspring/decimal"

// DefaultShippingFee is charged per unit when a line's product is gone or
// predates per-product shipping fees.
var DefaultShippingFee = decimal.NewFromInt(250)

// Line is one resolved cart or order line.
type Line struct {
	UnitPrice   decimal.Decimal
	Quantity    int
	ShippingFee decimal.NullDecimal
}

// Breakdown is the priced result shown on the order summary and stored on the order.
type Breakdown struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	Discount       decimal.Decimal `json:"discount"`
	DeliveryCharge decimal.Decimal `json:"deliveryCharge"`
	Total          decimal.Decimal `json:"total"`
}

func Subtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}

func DeliveryCharge(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.fee().Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}

// Calculate prices the lines with an already computed discount. The total is
// not clamped: a discount above the subtotal eats into the delivery charge.
func Calculate(lines []Line, discount decimal.Decimal) Breakdown {
	subtotal := Subtotal(lines)
	delivery := DeliveryCharge(lines)

	return Breakdown{
		Subtotal:       subtotal,
		Discount:       discount,
		DeliveryCharge: delivery,
		Total:          subtotal.Sub(discount).Add(delivery),
	}
}

func (l Line) fee() decimal.Decimal {
	if !l.ShippingFee.Valid {
		return DefaultShippingFee
	}
	return l.ShippingFee.Decimal
}
