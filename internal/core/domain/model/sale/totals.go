package sale

import (
	"saleedit/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Totals are the monetary totals of an order.
type Totals struct {
	Untaxed decimal.Decimal
	Tax     decimal.Decimal
	Total   decimal.Decimal
}

// CachedTotals is the denormalized copy of Totals stored on the order. Each
// field is nil when the cache has been invalidated.
type CachedTotals struct {
	Untaxed *decimal.Decimal
	Tax     *decimal.Decimal
	Total   *decimal.Decimal
}

// HasAny reports whether at least one cached value is set.
func (c CachedTotals) HasAny() bool {
	return c.Untaxed != nil || c.Tax != nil || c.Total != nil
}

// IsComplete reports whether every cached value is set.
func (c CachedTotals) IsComplete() bool {
	return c.Untaxed != nil && c.Tax != nil && c.Total != nil
}

// Totals returns the cached values; only meaningful when IsComplete.
func (c CachedTotals) Totals() Totals {
	var t Totals
	if c.Untaxed != nil {
		t.Untaxed = *c.Untaxed
	}
	if c.Tax != nil {
		t.Tax = *c.Tax
	}
	if c.Total != nil {
		t.Total = *c.Total
	}
	return t
}

func cacheOf(t Totals) CachedTotals {
	return CachedTotals{
		Untaxed: kernel.DecimalPtr(t.Untaxed),
		Tax:     kernel.DecimalPtr(t.Tax),
		Total:   kernel.DecimalPtr(t.Total),
	}
}

// ComputeTotals sums the amounts of lines.
func ComputeTotals(lines []*Line) Totals {
	untaxed := decimal.Zero
	tax := decimal.Zero
	for _, line := range lines {
		untaxed = untaxed.Add(line.Amount())
		tax = tax.Add(line.TaxAmount())
	}
	return Totals{
		Untaxed: untaxed,
		Tax:     tax,
		Total:   untaxed.Add(tax),
	}
}
