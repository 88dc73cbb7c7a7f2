package estimate

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// SectionTotals re-derives a section from the full set of its line items
func SectionTotals(items []*LineItem) (total decimal.Decimal, count int) {
	total = decimal.Zero
	for _, item := range items {
		total = total.Add(item.Quantity.Mul(item.UnitCost).Round(2))
	}
	return total, len(items)
}

// EstimateTotals re-derives subtotal, markup and total from all sections
func EstimateTotals(sections []*Section, markupPercent decimal.Decimal) (subtotal, markup, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, s := range sections {
		subtotal = subtotal.Add(s.Total)
	}
	markup = subtotal.Mul(markupPercent).Div(hundred).Round(2)
	total = subtotal.Add(markup)
	return subtotal, markup, total
}
