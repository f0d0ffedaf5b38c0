package services

import (
	"context"

	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/core/domain/model/sale"
	"saleedit/internal/core/domain/model/stock"

	"github.com/shopspring/decimal"
)

type updateAmountsKey struct{}

// WithUpdateAmounts marks ctx so that shipment writes made with it refresh the
// shipment amounts.
func WithUpdateAmounts(ctx context.Context) context.Context {
	return context.WithValue(ctx, updateAmountsKey{}, true)
}

// UpdateAmountsRequested reports whether ctx was marked by WithUpdateAmounts.
func UpdateAmountsRequested(ctx context.Context) bool {
	v, _ := ctx.Value(updateAmountsKey{}).(bool)
	return v
}

// AmountCalculator computes the amounts of a shipment.
type AmountCalculator interface {
	CalculateAmounts(shipment *stock.Shipment, order *sale.Order) (stock.Amounts, error)
}

// LineAmountCalculator prices each line move of a shipment with the discount
// and tax rate of the order line it comes from.
type LineAmountCalculator struct{}

func (LineAmountCalculator) CalculateAmounts(shipment *stock.Shipment, order *sale.Order) (stock.Amounts, error) {
	if err := shipment.Validate(); err != nil {
		return stock.Amounts{}, err
	}
	if err := order.Validate(); err != nil {
		return stock.Amounts{}, err
	}

	untaxed := decimal.Zero
	tax := decimal.Zero
	one := decimal.NewFromInt(1)
	for _, move := range shipment.Moves() {
		origin := move.OriginLine()
		if origin == nil {
			continue
		}
		line, ok := order.Line(*origin)
		if !ok {
			continue
		}
		amount := kernel.RoundAmount(move.Quantity().Mul(move.UnitPrice()).Mul(one.Sub(line.Discount())))
		untaxed = untaxed.Add(amount)
		tax = tax.Add(kernel.RoundAmount(amount.Mul(line.TaxRate())))
	}

	return stock.Amounts{Untaxed: untaxed, Tax: tax, Total: untaxed.Add(tax)}, nil
}

// ShipmentAmountRefresher merges freshly computed amounts into shipment writes.
// A nil calculator disables the refresh.
type ShipmentAmountRefresher struct {
	calculator AmountCalculator
}

func NewShipmentAmountRefresher(calculator AmountCalculator) ShipmentAmountRefresher {
	return ShipmentAmountRefresher{calculator: calculator}
}

// Prepare returns the values to write on shipment. When ctx requests it and
// the shipment is not done or cancelled, the computed amounts replace any
// amounts in values. values itself is never modified.
func (r ShipmentAmountRefresher) Prepare(
	ctx context.Context,
	shipment *stock.Shipment,
	order *sale.Order,
	values stock.ShipmentValues,
) (stock.ShipmentValues, error) {
	if r.calculator == nil || !UpdateAmountsRequested(ctx) || shipment.State().IsTerminal() {
		return values, nil
	}

	amounts, err := r.calculator.CalculateAmounts(shipment, order)
	if err != nil {
		return stock.ShipmentValues{}, err
	}

	values.Amounts = &amounts
	return values, nil
}
