package services_test

import (
	"testing"

	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/core/domain/model/sale"
	"saleedit/internal/core/domain/model/stock"
	"saleedit/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func lineParams(qty int64) sale.NewLineParams {
	return sale.NewLineParams{
		Type:      sale.LineTypeLine,
		Product:   "widget",
		Unit:      "unit",
		Quantity:  decimal.NewFromInt(qty),
		UnitPrice: decimal.NewFromInt(10),
		TaxRate:   decimal.RequireFromString("0.2"),
	}
}

// processedOrder returns a processing order with one line of quantity 5,
// fulfilled by a waiting outbound shipment.
func processedOrder(t *testing.T, method sale.InvoiceMethod) (*sale.Order, []*stock.Shipment) {
	t.Helper()

	o, err := sale.NewOrder(kernel.NewUUID(), "SO-1", "ACME", method)
	require.NoError(t, err)
	_, err = o.Apply(sale.OrderValues{
		Lines: &sale.LineActions{Create: []sale.NewLineParams{lineParams(5)}},
	}, nil)
	require.NoError(t, err)
	require.NoError(t, o.Quote())
	require.NoError(t, o.Confirm())
	require.NoError(t, o.Process())

	result, err := services.NewFulfillment().Process(o, nil)
	require.NoError(t, err)
	require.Len(t, result.Created, 1)

	return o, result.Created
}

func extraOutShipment(t *testing.T, o *sale.Order) *stock.Shipment {
	t.Helper()

	s, err := stock.NewShipment(kernel.NewUUID(), stock.ShipmentKindOut, o.ID(), "SO-1/OUT/2")
	require.NoError(t, err)
	return s
}
