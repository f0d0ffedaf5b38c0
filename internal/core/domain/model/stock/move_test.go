package stock_test

import (
	"testing"

	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/core/domain/model/stock"
	"saleedit/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outgoingMove(t *testing.T, shipmentID, lineID kernel.UUID, qty int64) *stock.Move {
	t.Helper()

	m, err := stock.NewMove(stock.MoveParams{
		ID:         kernel.NewUUID(),
		Kind:       stock.MoveKindOutgoing,
		OriginLine: &lineID,
		ShipmentID: shipmentID,
		Product:    "widget",
		UOM:        "unit",
		Quantity:   decimal.NewFromInt(qty),
		UnitPrice:  decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	return m
}

func TestNewMove(t *testing.T) {
	t.Run("should create draft line move", func(t *testing.T) {
		lineID := kernel.NewUUID()

		m := outgoingMove(t, kernel.NewUUID(), lineID, 5)

		assert.Equal(t, stock.MoveStateDraft, m.State())
		assert.True(t, m.IsOf(lineID))
		assert.False(t, m.IsOf(kernel.NewUUID()))
	})

	t.Run("should reject negative quantity", func(t *testing.T) {
		lineID := kernel.NewUUID()

		_, err := stock.NewMove(stock.MoveParams{
			ID: kernel.NewUUID(), Kind: stock.MoveKindOutgoing, OriginLine: &lineID,
			ShipmentID: kernel.NewUUID(), Product: "widget", UOM: "unit",
			Quantity: decimal.NewFromInt(-1),
		})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should require origin line on line moves", func(t *testing.T) {
		_, err := stock.NewMove(stock.MoveParams{
			ID: kernel.NewUUID(), Kind: stock.MoveKindIncoming,
			ShipmentID: kernel.NewUUID(), Product: "widget", UOM: "unit",
		})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject origin line on inventory moves", func(t *testing.T) {
		lineID := kernel.NewUUID()

		_, err := stock.NewMove(stock.MoveParams{
			ID: kernel.NewUUID(), Kind: stock.MoveKindInventory, OriginLine: &lineID,
			ShipmentID: kernel.NewUUID(), Product: "widget", UOM: "unit",
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "inventory moves have no origin line")
	})
}

func TestMove_Apply(t *testing.T) {
	t.Run("should change draft move", func(t *testing.T) {
		m := outgoingMove(t, kernel.NewUUID(), kernel.NewUUID(), 5)
		qty := decimal.NewFromInt(7)
		uom := "box"

		require.NoError(t, m.Apply(stock.MoveValues{Quantity: &qty, UOM: &uom}))

		assert.Equal(t, "7", m.Quantity().String())
		assert.Equal(t, "box", m.UOM())
	})

	t.Run("should refuse non draft move", func(t *testing.T) {
		lineID := kernel.NewUUID()
		m, err := stock.RestoreMove(stock.MoveParams{
			ID: kernel.NewUUID(), Kind: stock.MoveKindOutgoing, OriginLine: &lineID,
			ShipmentID: kernel.NewUUID(), Product: "widget", UOM: "unit",
			Quantity: decimal.NewFromInt(1), State: stock.MoveStateAssigned,
		})
		require.NoError(t, err)
		qty := decimal.NewFromInt(2)

		err = m.Apply(stock.MoveValues{Quantity: &qty})

		var editErr *errs.EditNotAllowedError
		require.ErrorAs(t, err, &editErr)
		assert.Equal(t, errs.KindMoveNotEditable, editErr.Kind)
		assert.Equal(t, "1", m.Quantity().String())
	})

	t.Run("empty values are a no-op on any state", func(t *testing.T) {
		lineID := kernel.NewUUID()
		m, _ := stock.RestoreMove(stock.MoveParams{
			ID: kernel.NewUUID(), Kind: stock.MoveKindOutgoing, OriginLine: &lineID,
			ShipmentID: kernel.NewUUID(), Product: "widget", UOM: "unit",
			State: stock.MoveStateDone,
		})

		require.NoError(t, m.Apply(stock.MoveValues{}))
	})
}
