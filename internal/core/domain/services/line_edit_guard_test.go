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

func TestLineEditGuard_Check(t *testing.T) {
	guard := services.NewLineEditGuard(services.DefaultEditPolicy())

	t.Run("should update move and cycle waiting shipment on quantity change", func(t *testing.T) {
		o, shipments := processedOrder(t, sale.InvoiceMethodOrder)
		line := o.Lines()[0]
		values := sale.LineValues{Quantity: decPtr(7)}
		require.True(t, o.CachedTotals().HasAny())

		plan, err := guard.Check(o, line, shipments, values)

		require.NoError(t, err)
		require.True(t, plan.Guarded())
		assert.Equal(t, services.CycleDraftWait, plan.Cycle)
		assert.True(t, plan.InvalidateTotals)
		require.NotNil(t, plan.MoveValues.Quantity)
		assert.Equal(t, "7", plan.MoveValues.Quantity.String())

		require.NoError(t, line.Apply(values))
		require.NoError(t, plan.Move.Apply(plan.MoveValues))
		require.NoError(t, plan.Cycle.Run(plan.Shipment))

		assert.Equal(t, stock.ShipmentStateWaiting, plan.Shipment.State())
		inventory := plan.Shipment.InventoryMoves()
		require.Len(t, inventory, 1)
		assert.Equal(t, "7", inventory[0].Quantity().String())
	})

	t.Run("should mirror absolute quantity and allow-listed fields", func(t *testing.T) {
		o, shipments := processedOrder(t, sale.InvoiceMethodOrder)
		price := decimal.NewFromInt(12)

		plan, err := guard.Check(o, o.Lines()[0], shipments, sale.LineValues{
			Quantity:    decPtr(-3),
			UnitPrice:   &price,
			Unit:        strPtr("box"),
			Description: strPtr("not mirrored"),
		})

		require.NoError(t, err)
		assert.Equal(t, "3", plan.MoveValues.Quantity.String())
		assert.True(t, plan.MoveValues.UnitPrice.Equal(price))
		assert.Equal(t, "box", *plan.MoveValues.UOM)
		assert.Nil(t, plan.MoveValues.Product)
	})

	t.Run("should cycle draft shipment through wait", func(t *testing.T) {
		o, shipments := processedOrder(t, sale.InvoiceMethodOrder)
		require.NoError(t, shipments[0].Draft())

		plan, err := guard.Check(o, o.Lines()[0], shipments, sale.LineValues{Quantity: decPtr(6)})

		require.NoError(t, err)
		assert.Equal(t, services.CycleWaitDraft, plan.Cycle)
		require.NoError(t, plan.Cycle.Run(plan.Shipment))
		assert.Equal(t, stock.ShipmentStateDraft, plan.Shipment.State())
	})

	t.Run("should bypass guard for housekeeping fields", func(t *testing.T) {
		o, shipments := processedOrder(t, sale.InvoiceMethodOrder)
		require.NoError(t, shipments[0].Assign())
		recreated := true

		plan, err := guard.Check(o, o.Lines()[0], shipments, sale.LineValues{MoveRecreated: &recreated})

		require.NoError(t, err)
		assert.False(t, plan.Guarded())
		assert.False(t, plan.InvalidateTotals)
	})

	t.Run("should reject line with several moves", func(t *testing.T) {
		o, shipments := processedOrder(t, sale.InvoiceMethodOrder)
		line := o.Lines()[0]
		lineID := line.ID()
		extra, err := stock.NewMove(stock.MoveParams{
			ID: kernel.NewUUID(), Kind: stock.MoveKindOutgoing, OriginLine: &lineID,
			ShipmentID: shipments[0].ID(), Product: "widget", UOM: "unit",
			Quantity: decimal.NewFromInt(1),
		})
		require.NoError(t, err)
		require.NoError(t, shipments[0].AddMove(extra))

		_, err = guard.Check(o, line, shipments, sale.LineValues{Quantity: decPtr(7)})

		requireKind(t, err, errs.KindMultiMoveConflict)
	})

	t.Run("should reject when the shipment has a non draft move", func(t *testing.T) {
		o, shipments := processedOrder(t, sale.InvoiceMethodOrder)
		require.NoError(t, shipments[0].Assign())

		_, err := guard.Check(o, o.Lines()[0], shipments, sale.LineValues{Quantity: decPtr(7)})

		requireKind(t, err, errs.KindMoveNotEditable)
	})

	t.Run("should reject type change", func(t *testing.T) {
		o, shipments := processedOrder(t, sale.InvoiceMethodOrder)
		lineType := sale.LineTypeComment

		_, err := guard.Check(o, o.Lines()[0], shipments, sale.LineValues{Type: &lineType})

		requireKind(t, err, errs.KindFieldLocked)
	})

	t.Run("should not guard lines without moves", func(t *testing.T) {
		o, shipments := processedOrder(t, sale.InvoiceMethodOrder)
		lineType := sale.LineTypeComment

		plan, err := guard.Check(o, o.Lines()[0], nil, sale.LineValues{Type: &lineType})

		require.NoError(t, err)
		assert.False(t, plan.Guarded())
		assert.NotEmpty(t, shipments)
	})

	t.Run("should invalidate totals on draft orders with a cache", func(t *testing.T) {
		o, err := sale.NewOrder(kernel.NewUUID(), "SO-2", "ACME", sale.InvoiceMethodOrder)
		require.NoError(t, err)
		line, err := o.AddLine(lineParams(1))
		require.NoError(t, err)

		plan, err := guard.Check(o, line, nil, sale.LineValues{Quantity: decPtr(2)})
		require.NoError(t, err)
		assert.False(t, plan.InvalidateTotals)

		o.StoreTotals()
		discount := decimal.RequireFromString("0.1")
		plan, err = guard.Check(o, line, nil, sale.LineValues{Discount: &discount})
		require.NoError(t, err)
		assert.True(t, plan.InvalidateTotals)
	})
	t.Run("should reject writes on lines of finished orders", func(t *testing.T) {
		o, shipments := processedOrder(t, sale.InvoiceMethodOrder)
		require.NoError(t, shipments[0].Assign())
		require.NoError(t, shipments[0].Pack())
		require.NoError(t, shipments[0].Done())
		require.NoError(t, o.Done())
		line := o.Lines()[0]

		_, err := guard.Check(o, line, shipments, sale.LineValues{Quantity: decPtr(99)})
		requireKind(t, err, errs.KindFieldLocked)

		lineType := sale.LineTypeComment
		_, err = guard.Check(o, line, shipments, sale.LineValues{Type: &lineType})
		requireKind(t, err, errs.KindFieldLocked)

		assert.Equal(t, "5", line.Quantity().String())
		assert.Equal(t, "5", shipments[0].Moves()[0].Quantity().String())
	})

	t.Run("should reject writes on lines of cancelled orders", func(t *testing.T) {
		o, err := sale.NewOrder(kernel.NewUUID(), "SO-3", "ACME", sale.InvoiceMethodOrder)
		require.NoError(t, err)
		line, err := o.AddLine(lineParams(1))
		require.NoError(t, err)
		require.NoError(t, o.Cancel())

		_, err = guard.Check(o, line, nil, sale.LineValues{Description: strPtr("late")})

		requireKind(t, err, errs.KindFieldLocked)
	})

	t.Run("should allow housekeeping writes on finished orders", func(t *testing.T) {
		o, shipments := processedOrder(t, sale.InvoiceMethodOrder)
		require.NoError(t, o.Done())
		ignored := true

		plan, err := guard.Check(o, o.Lines()[0], shipments, sale.LineValues{MoveIgnored: &ignored})

		require.NoError(t, err)
		assert.False(t, plan.Guarded())
	})

	t.Run("should guard lines of confirmed orders with a move", func(t *testing.T) {
		o, err := sale.NewOrder(kernel.NewUUID(), "SO-4", "ACME", sale.InvoiceMethodOrder)
		require.NoError(t, err)
		line, err := o.AddLine(lineParams(5))
		require.NoError(t, err)
		require.NoError(t, o.Quote())
		require.NoError(t, o.Confirm())
		result, err := services.NewFulfillment().Process(o, nil)
		require.NoError(t, err)
		shipments := result.Created
		require.Len(t, shipments, 1)

		plan, err := guard.Check(o, line, shipments, sale.LineValues{Quantity: decPtr(8)})
		require.NoError(t, err)
		require.True(t, plan.Guarded())
		assert.Equal(t, services.CycleDraftWait, plan.Cycle)
		assert.Equal(t, "8", plan.MoveValues.Quantity.String())

		lineType := sale.LineTypeTitle
		_, err = guard.Check(o, line, shipments, sale.LineValues{Type: &lineType})
		requireKind(t, err, errs.KindFieldLocked)

		require.NoError(t, shipments[0].Assign())
		_, err = guard.Check(o, line, shipments, sale.LineValues{Quantity: decPtr(8)})
		requireKind(t, err, errs.KindMoveNotEditable)
	})
}

func TestLineDeleteGuard_Check(t *testing.T) {
	t.Run("should reject deleting lines of processing order", func(t *testing.T) {
		o, _ := processedOrder(t, sale.InvoiceMethodOrder)

		_, err := services.LineDeleteGuard{}.Check(o, o.Lines()[0])

		requireKind(t, err, errs.KindDeleteNotAllowed)
	})

	t.Run("should clear cache of confirmed order", func(t *testing.T) {
		o, err := sale.NewOrder(kernel.NewUUID(), "SO-2", "ACME", sale.InvoiceMethodOrder)
		require.NoError(t, err)
		line, _ := o.AddLine(lineParams(1))
		require.NoError(t, o.Quote())
		require.NoError(t, o.Confirm())

		invalidate, err := services.LineDeleteGuard{}.Check(o, line)

		require.NoError(t, err)
		assert.True(t, invalidate)
	})
}
