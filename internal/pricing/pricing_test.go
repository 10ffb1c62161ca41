package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func line(price float64, qty int) Line {
	return Line{Price: decimal.NewFromFloat(price), Quantity: qty}
}

func TestCalculate_BelowFreeShippingThreshold(t *testing.T) {
	totals := Calculate([]Line{line(1000, 2), line(500, 1)})

	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(2500)), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.Tax.Equal(decimal.NewFromInt(250)), "tax %s", totals.Tax)
	assert.True(t, totals.Shipping.Equal(decimal.NewFromInt(50)), "shipping %s", totals.Shipping)
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(2800)), "total %s", totals.Total)
	assert.Equal(t, 3, totals.ItemCount)
}

func TestCalculate_FreeShippingAtThreshold(t *testing.T) {
	totals := Calculate([]Line{line(2500, 2)})

	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(5000)))
	assert.True(t, totals.Shipping.IsZero())
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(5500)))
}

func TestCalculate_FreeShippingAboveThreshold(t *testing.T) {
	totals := Calculate([]Line{line(3000, 3)})

	assert.True(t, totals.Shipping.IsZero())
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(9900)))
}

func TestCalculate_JustBelowThresholdChargesShipping(t *testing.T) {
	totals := Calculate([]Line{line(4999.99, 1)})

	assert.True(t, totals.Shipping.Equal(decimal.NewFromInt(50)))
}

func TestCalculate_Empty(t *testing.T) {
	totals := Calculate(nil)

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Shipping.Equal(decimal.NewFromInt(50)))
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, 0, totals.ItemCount)
}

func TestCalculate_RoundsAtAggregateNotPerLine(t *testing.T) {
	// 3 x 1.005 = 3.015, which rounds to 3.02 only if summed before rounding.
	totals := Calculate([]Line{line(1.005, 3)})

	assert.True(t, totals.Subtotal.Equal(decimal.NewFromFloat(3.02)), "subtotal %s", totals.Subtotal)
	// tax = 0.3015 -> 0.30
	assert.True(t, totals.Tax.Equal(decimal.NewFromFloat(0.30)), "tax %s", totals.Tax)
}

func TestCalculate_TaxIsTenPercent(t *testing.T) {
	totals := Calculate([]Line{line(199.99, 1)})

	assert.True(t, totals.Tax.Equal(decimal.NewFromFloat(20.00)), "tax %s", totals.Tax)
}
