package kernel

import "github.com/shopspring/decimal"

// AbsQuantity returns the non-negative form of q. Line quantities may be
// negative (returns) while move quantities never are.
func AbsQuantity(q decimal.Decimal) decimal.Decimal {
	return q.Abs()
}

// RoundAmount rounds a monetary amount to two decimal places, half away from zero.
func RoundAmount(a decimal.Decimal) decimal.Decimal {
	return a.Round(2)
}

// DecimalPtr returns a pointer to a copy of d.
func DecimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
