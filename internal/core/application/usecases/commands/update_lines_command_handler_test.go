package commands_test

import (
	"context"
	"testing"

	"saleedit/internal/core/application/usecases/commands"
	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/core/domain/model/sale"
	"saleedit/internal/core/domain/model/stock"
	"saleedit/internal/core/domain/services"
	"saleedit/internal/pkg/errs"
	"saleedit/internal/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUpdateLinesHandler(factory commands.UoWFactory) commands.UpdateLinesCommandHandler {
	return commands.NewUpdateLinesCommandHandler(factory, services.DefaultEditPolicy(), logger.Nop())
}

func TestUpdateLinesCommand_LineIDs(t *testing.T) {
	a, b := kernel.NewUUID(), kernel.NewUUID()

	cmd, err := commands.NewUpdateLinesCommand([]commands.LineWrite{
		{IDs: []kernel.UUID{a, b}},
		{IDs: []kernel.UUID{b}},
	})

	require.NoError(t, err)
	assert.Equal(t, []kernel.UUID{a, b}, cmd.LineIDs())
}

func TestUpdateLinesCommandHandler_QuantityChangeFollowsOnMoves(t *testing.T) {
	ctx := context.Background()
	order, shipments := processedOrder(t, sale.InvoiceMethodOrder)
	line := order.Lines()[0]
	require.True(t, order.CachedTotals().HasAny())

	cmd, _ := commands.NewUpdateLinesCommand([]commands.LineWrite{{
		IDs:    []kernel.UUID{line.ID()},
		Values: sale.LineValues{Quantity: decPtr(7)},
	}})

	orders := new(MockOrderRepository)
	shipmentRepo := new(MockShipmentRepository)
	uow, factory, _ := newUoW(orders, shipmentRepo)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orders.On("GetByLineIDs", ctx, []kernel.UUID{line.ID()}).Return([]*sale.Order{order}, nil).Once(),
		shipmentRepo.On("GetByOrder", ctx, order.ID()).Return(shipments, nil).Once(),
		shipmentRepo.On("Update", ctx, shipments[0]).Return(nil).Once(),
		orders.On("Update", ctx, order).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	err := newUpdateLinesHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "7", line.Quantity().String())
	move := shipments[0].MovesOfLine(line.ID())[0]
	assert.Equal(t, "7", move.Quantity().String())
	assert.Equal(t, stock.ShipmentStateWaiting, shipments[0].State())
	inventory := shipments[0].InventoryMoves()
	require.Len(t, inventory, 1)
	assert.Equal(t, "7", inventory[0].Quantity().String())
	assert.False(t, order.CachedTotals().HasAny())
	orders.AssertExpectations(t)
	shipmentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateLinesCommandHandler_HousekeepingOnlySkipsMoves(t *testing.T) {
	ctx := context.Background()
	order, shipments := processedOrder(t, sale.InvoiceMethodOrder)
	require.NoError(t, shipments[0].Assign())
	line := order.Lines()[0]
	recreated := true

	cmd, _ := commands.NewUpdateLinesCommand([]commands.LineWrite{{
		IDs:    []kernel.UUID{line.ID()},
		Values: sale.LineValues{MoveRecreated: &recreated},
	}})

	orders := new(MockOrderRepository)
	shipmentRepo := new(MockShipmentRepository)
	uow, factory, _ := newUoW(orders, shipmentRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	orders.On("GetByLineIDs", ctx, []kernel.UUID{line.ID()}).Return([]*sale.Order{order}, nil).Once()
	shipmentRepo.On("GetByOrder", ctx, order.ID()).Return(shipments, nil).Once()
	orders.On("Update", ctx, order).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	err := newUpdateLinesHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, line.MoveRecreated())
	assert.True(t, order.CachedTotals().HasAny())
	shipmentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateLinesCommandHandler_RejectsMultiMoveLine(t *testing.T) {
	ctx := context.Background()
	order, shipments := processedOrder(t, sale.InvoiceMethodOrder)
	line := order.Lines()[0]
	lineID := line.ID()
	extra, err := stock.NewMove(stock.MoveParams{
		ID: kernel.NewUUID(), Kind: stock.MoveKindOutgoing, OriginLine: &lineID,
		ShipmentID: shipments[0].ID(), Product: "widget", UOM: "unit", Quantity: decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	require.NoError(t, shipments[0].AddMove(extra))

	cmd, _ := commands.NewUpdateLinesCommand([]commands.LineWrite{{
		IDs:    []kernel.UUID{lineID},
		Values: sale.LineValues{Quantity: decPtr(7)},
	}})

	orders := new(MockOrderRepository)
	shipmentRepo := new(MockShipmentRepository)
	uow, factory, _ := newUoW(orders, shipmentRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	orders.On("GetByLineIDs", ctx, []kernel.UUID{lineID}).Return([]*sale.Order{order}, nil).Once()
	shipmentRepo.On("GetByOrder", ctx, order.ID()).Return(shipments, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	err = newUpdateLinesHandler(factory).Handle(ctx, cmd)

	var editErr *errs.EditNotAllowedError
	require.ErrorAs(t, err, &editErr)
	assert.Equal(t, errs.KindMultiMoveConflict, editErr.Kind)
	assert.Equal(t, "5", line.Quantity().String())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestUpdateLinesCommandHandler_ValidatesInvoiceMethod(t *testing.T) {
	ctx := context.Background()
	order, shipments := processedOrder(t, sale.InvoiceMethodOrder)
	extra, err := stock.NewShipment(kernel.NewUUID(), stock.ShipmentKindOut, order.ID(), "SO-1/OUT/2")
	require.NoError(t, err)
	shipments = append(shipments, extra)
	line := order.Lines()[0]

	cmd, _ := commands.NewUpdateLinesCommand([]commands.LineWrite{{
		IDs:    []kernel.UUID{line.ID()},
		Values: sale.LineValues{Description: strPtr("blue")},
	}})

	orders := new(MockOrderRepository)
	shipmentRepo := new(MockShipmentRepository)
	uow, factory, _ := newUoW(orders, shipmentRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	orders.On("GetByLineIDs", ctx, []kernel.UUID{line.ID()}).Return([]*sale.Order{order}, nil).Once()
	shipmentRepo.On("GetByOrder", ctx, order.ID()).Return(shipments, nil).Once()
	shipmentRepo.On("Update", ctx, shipments[0]).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	err = newUpdateLinesHandler(factory).Handle(ctx, cmd)

	var editErr *errs.EditNotAllowedError
	require.ErrorAs(t, err, &editErr)
	assert.Equal(t, errs.KindInvoiceMethodMismatch, editErr.Kind)
	orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateLinesCommandHandler_UnknownLine(t *testing.T) {
	ctx := context.Background()
	order, _ := processedOrder(t, sale.InvoiceMethodOrder)
	unknown := kernel.NewUUID()

	cmd, _ := commands.NewUpdateLinesCommand([]commands.LineWrite{{
		IDs:    []kernel.UUID{unknown},
		Values: sale.LineValues{Quantity: decPtr(1)},
	}})

	orders := new(MockOrderRepository)
	uow, factory, _ := newUoW(orders, new(MockShipmentRepository))
	uow.On("Begin", ctx).Return(nil).Once()
	orders.On("GetByLineIDs", ctx, []kernel.UUID{unknown}).Return([]*sale.Order{order}, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	err := newUpdateLinesHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestUpdateLinesCommandHandler_RejectsLinesOfDoneOrder(t *testing.T) {
	ctx := context.Background()
	order, shipments := processedOrder(t, sale.InvoiceMethodOrder)
	require.NoError(t, shipments[0].Assign())
	require.NoError(t, shipments[0].Pack())
	require.NoError(t, shipments[0].Done())
	require.NoError(t, order.Done())
	line := order.Lines()[0]
	totals := order.CachedTotals()

	cmd, _ := commands.NewUpdateLinesCommand([]commands.LineWrite{{
		IDs:    []kernel.UUID{line.ID()},
		Values: sale.LineValues{Quantity: decPtr(99)},
	}})

	orders := new(MockOrderRepository)
	shipmentRepo := new(MockShipmentRepository)
	uow, factory, _ := newUoW(orders, shipmentRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	orders.On("GetByLineIDs", ctx, []kernel.UUID{line.ID()}).Return([]*sale.Order{order}, nil).Once()
	shipmentRepo.On("GetByOrder", ctx, order.ID()).Return(shipments, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	err := newUpdateLinesHandler(factory).Handle(ctx, cmd)

	var editErr *errs.EditNotAllowedError
	require.ErrorAs(t, err, &editErr)
	assert.Equal(t, errs.KindFieldLocked, editErr.Kind)
	assert.Equal(t, "5", line.Quantity().String())
	assert.Equal(t, "5", shipments[0].Moves()[0].Quantity().String())
	assert.Equal(t, totals, order.CachedTotals())
	orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
