// Package pricing computes cart and order totals. The cart read path and
// the order creation path both go through Calculate so the two can never
// diverge in rounding or threshold logic.
package pricing

import "github.com/shopspring/decimal"

var (
	taxRate           = decimal.NewFromFloat(0.10)
	freeShippingFloor = decimal.NewFromInt(5000)
	flatShippingFee   = decimal.NewFromInt(50)
)

type Line struct {
	Price    decimal.Decimal
	Quantity int
}

type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

// Calculate sums the lines exactly and rounds only at the aggregate.
// Shipping is free once the subtotal reaches 5000, otherwise a flat 50.
func Calculate(lines []Line) Totals {
	subtotal := decimal.Zero
	count := 0
	for _, l := range lines {
		subtotal = subtotal.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
		count += l.Quantity
	}

	tax := subtotal.Mul(taxRate)
	shipping := flatShippingFee
	if subtotal.GreaterThanOrEqual(freeShippingFloor) {
		shipping = decimal.Zero
	}
	total := subtotal.Add(tax).Add(shipping)

	return Totals{
		Subtotal:  subtotal.Round(2),
		Tax:       tax.Round(2),
		Shipping:  shipping.Round(2),
		Total:     total.Round(2),
		ItemCount: count,
	}
}
