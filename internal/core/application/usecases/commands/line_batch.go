package commands

import (
	"context"

	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/core/domain/model/sale"
	"saleedit/internal/core/domain/model/stock"
	"saleedit/internal/core/ports"
	"saleedit/internal/pkg/errs"
)

// lineBatch indexes the orders owning a set of lines together with their
// shipments, loaded once per transaction.
type lineBatch struct {
	orders       []*sale.Order
	orderOfLine  map[kernel.UUID]*sale.Order
	shipments    map[kernel.UUID][]*stock.Shipment
	shipmentRepo ports.ShipmentRepository
}

func loadLineBatch(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	shipmentRepo ports.ShipmentRepository,
	lineIDs []kernel.UUID,
) (*lineBatch, error) {
	orders, err := orderRepo.GetByLineIDs(ctx, lineIDs)
	if err != nil {
		return nil, err
	}

	b := &lineBatch{
		orders:       orders,
		orderOfLine:  map[kernel.UUID]*sale.Order{},
		shipments:    map[kernel.UUID][]*stock.Shipment{},
		shipmentRepo: shipmentRepo,
	}
	for _, o := range orders {
		for _, line := range o.Lines() {
			b.orderOfLine[line.ID()] = o
		}
	}
	return b, nil
}

// line returns a line and its order.
func (b *lineBatch) line(id kernel.UUID) (*sale.Order, *sale.Line, error) {
	order, ok := b.orderOfLine[id]
	if !ok {
		return nil, nil, errs.NewObjectNotFoundError("line", id)
	}
	line, ok := order.Line(id)
	if !ok {
		return nil, nil, errs.NewObjectNotFoundErrorWithCause("line", id, sale.ErrLineNotFound)
	}
	return order, line, nil
}

// shipmentsOf loads the shipments of order on first use.
func (b *lineBatch) shipmentsOf(ctx context.Context, order *sale.Order) ([]*stock.Shipment, error) {
	if shipments, ok := b.shipments[order.ID()]; ok {
		return shipments, nil
	}
	shipments, err := b.shipmentRepo.GetByOrder(ctx, order.ID())
	if err != nil {
		return nil, err
	}
	b.shipments[order.ID()] = shipments
	return shipments, nil
}
