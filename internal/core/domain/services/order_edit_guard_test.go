package services_test

import (
	"testing"

	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/core/domain/model/sale"
	"saleedit/internal/core/domain/model/stock"
	"saleedit/internal/core/domain/services"
	"saleedit/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireKind(t *testing.T, err error, kind string) {
	t.Helper()

	var editErr *errs.EditNotAllowedError
	require.ErrorAs(t, err, &editErr)
	assert.Equal(t, kind, editErr.Kind)
}

func TestOrderEditGuard_Check(t *testing.T) {
	guard := services.NewOrderEditGuard(services.DefaultEditPolicy())

	t.Run("should not guard orders outside processing", func(t *testing.T) {
		o, err := sale.NewOrder(kernel.NewUUID(), "SO-1", "ACME", sale.InvoiceMethodOrder)
		require.NoError(t, err)

		plan, err := guard.Check(o, nil, sale.OrderValues{
			Lines: &sale.LineActions{Delete: []kernel.UUID{kernel.NewUUID()}},
		})

		require.NoError(t, err)
		assert.Empty(t, plan.ShipmentWrites)
		assert.False(t, plan.Reprocess)
	})

	t.Run("should reject line deletion first", func(t *testing.T) {
		o, shipments := processedOrder(t, sale.InvoiceMethodShipment)
		shipments = append(shipments, extraOutShipment(t, o))

		_, err := guard.Check(o, shipments, sale.OrderValues{
			Lines: &sale.LineActions{Delete: []kernel.UUID{o.Lines()[0].ID()}},
		})

		requireKind(t, err, errs.KindDeleteNotAllowed)
	})

	t.Run("should reject line change on partially shipped order", func(t *testing.T) {
		o, shipments := processedOrder(t, sale.InvoiceMethodShipment)
		shipments = append(shipments, extraOutShipment(t, o))

		_, err := guard.Check(o, shipments, sale.OrderValues{
			Lines: &sale.LineActions{Create: []sale.NewLineParams{lineParams(1)}},
		})

		requireKind(t, err, errs.KindPartiallyShipped)
	})

	t.Run("should reject line change when a move is not draft", func(t *testing.T) {
		o, shipments := processedOrder(t, sale.InvoiceMethodOrder)
		require.NoError(t, shipments[0].Assign())

		_, err := guard.Check(o, shipments, sale.OrderValues{
			Lines: &sale.LineActions{Create: []sale.NewLineParams{lineParams(1)}},
		})

		requireKind(t, err, errs.KindMoveNotEditable)
	})

	t.Run("should plan reprocessing on line creation", func(t *testing.T) {
		o, shipments := processedOrder(t, sale.InvoiceMethodOrder)

		plan, err := guard.Check(o, shipments, sale.OrderValues{
			Lines: &sale.LineActions{Create: []sale.NewLineParams{lineParams(1)}},
		})

		require.NoError(t, err)
		assert.True(t, plan.Reprocess)
		assert.True(t, plan.LinesChanged)
	})

	t.Run("should reject locked field on invoiced order", func(t *testing.T) {
		o, shipments := processedOrder(t, sale.InvoiceMethodOrder)
		inv, err := sale.NewInvoice(kernel.NewUUID(), "INV-1", decimal.NewFromInt(60))
		require.NoError(t, err)
		require.NoError(t, o.AddInvoice(inv))

		_, err = guard.Check(o, shipments, sale.OrderValues{PaymentTerm: strPtr("30 days")})

		requireKind(t, err, errs.KindAlreadyInvoiced)
		assert.Contains(t, err.Error(), "field-locked-post-invoice")
		assert.Contains(t, err.Error(), "already invoiced: payment_term")
	})

	t.Run("should allow mirrored field on invoiced order", func(t *testing.T) {
		o, shipments := processedOrder(t, sale.InvoiceMethodOrder)
		inv, _ := sale.NewInvoice(kernel.NewUUID(), "INV-1", decimal.NewFromInt(60))
		require.NoError(t, o.AddInvoice(inv))

		plan, err := guard.Check(o, shipments, sale.OrderValues{
			ShipmentAddress: strPtr("Main St 1"),
			ShipmentParty:   strPtr("ACME Logistics"),
		})

		require.NoError(t, err)
		require.Len(t, plan.ShipmentWrites, 1)
		write := plan.ShipmentWrites[0]
		assert.Equal(t, shipments[0], write.Shipment)
		require.NotNil(t, write.Values.DeliveryAddress)
		assert.Equal(t, "Main St 1", *write.Values.DeliveryAddress)
		require.NotNil(t, write.Values.Customer)
		assert.Equal(t, "ACME Logistics", *write.Values.Customer)
		assert.False(t, plan.Reprocess)
	})

	t.Run("should mirror only on outbound shipments", func(t *testing.T) {
		o, shipments := processedOrder(t, sale.InvoiceMethodOrder)
		ret, err := stock.NewShipment(kernel.NewUUID(), stock.ShipmentKindReturn, o.ID(), "SO-1/RET/1")
		require.NoError(t, err)

		plan, err := guard.Check(o, append(shipments, ret), sale.OrderValues{ShipmentAddress: strPtr("Main St 1")})

		require.NoError(t, err)
		require.Len(t, plan.ShipmentWrites, 1)
		assert.Equal(t, stock.ShipmentKindOut, plan.ShipmentWrites[0].Shipment.Kind())
	})
}

func TestValidateInvoiceMethod(t *testing.T) {
	t.Run("should reject several shipments when invoicing on order", func(t *testing.T) {
		o, shipments := processedOrder(t, sale.InvoiceMethodOrder)

		err := services.ValidateInvoiceMethod(o, append(shipments, extraOutShipment(t, o)))

		requireKind(t, err, errs.KindInvoiceMethodMismatch)
	})

	t.Run("should accept several shipments when invoicing on shipment", func(t *testing.T) {
		o, shipments := processedOrder(t, sale.InvoiceMethodShipment)

		require.NoError(t, services.ValidateInvoiceMethod(o, append(shipments, extraOutShipment(t, o))))
	})

	t.Run("should accept a single shipment", func(t *testing.T) {
		o, shipments := processedOrder(t, sale.InvoiceMethodOrder)

		require.NoError(t, services.ValidateInvoiceMethod(o, shipments))
	})
}

func TestEditPolicy_ReturnsCopies(t *testing.T) {
	policy := services.DefaultEditPolicy()

	locked := policy.LockedAfterInvoice()
	locked[0] = sale.OrderFieldReference

	assert.Equal(t, sale.OrderFieldDescription, policy.LockedAfterInvoice()[0])
	assert.Len(t, policy.RelaxedOrderFields(), 7)
}
