package estimate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSectionTotals(t *testing.T) {
	total, count := SectionTotals([]*LineItem{
		{Quantity: d("2"), UnitCost: d("100.00")},
		{Quantity: d("1.5"), UnitCost: d("10.333")},
	})
	assert.Equal(t, "215.50", total.StringFixed(2))
	assert.Equal(t, 2, count)

	total, count = SectionTotals(nil)
	assert.True(t, total.IsZero())
	assert.Zero(t, count)
}

func TestEstimateTotals(t *testing.T) {
	subtotal, markup, total := EstimateTotals([]*Section{
		{Total: d("200.00")},
		{Total: d("50.00")},
	}, d("10"))

	assert.Equal(t, "250.00", subtotal.StringFixed(2))
	assert.Equal(t, "25.00", markup.StringFixed(2))
	assert.Equal(t, "275.00", total.StringFixed(2))
}
