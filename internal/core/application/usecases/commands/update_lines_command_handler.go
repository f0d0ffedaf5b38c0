package commands

import (
	"context"

	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/core/domain/model/sale"
	"saleedit/internal/core/domain/model/stock"
	"saleedit/internal/core/domain/services"
	"saleedit/internal/pkg/logger"
)

// UpdateLinesCommandHandler writes lines and carries the change over to their
// moves. For each guarded line the single move is updated and its outbound
// shipment is cycled so that the inventory moves follow. Orders whose amounts
// changed lose their totals cache once the batch is written.
type UpdateLinesCommandHandler struct {
	uowFactory UoWFactory
	guard      services.LineEditGuard
	log        *logger.Logger
}

func NewUpdateLinesCommandHandler(
	uowFactory UoWFactory,
	policy services.EditPolicy,
	log *logger.Logger,
) UpdateLinesCommandHandler {
	return UpdateLinesCommandHandler{
		uowFactory: uowFactory,
		guard:      services.NewLineEditGuard(policy),
		log:        log,
	}
}

func (h UpdateLinesCommandHandler) Handle(ctx context.Context, cmd UpdateLinesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	shipmentRepo := uow.ShipmentRepository()
	batch, err := loadLineBatch(ctx, orderRepo, shipmentRepo, cmd.LineIDs())
	if err != nil {
		return err
	}

	var (
		cycled     []*stock.Shipment
		invalidate = map[kernel.UUID]*sale.Order{}
	)
	for _, write := range cmd.Writes() {
		for _, id := range write.IDs {
			order, line, err := batch.line(id)
			if err != nil {
				return err
			}
			shipments, err := batch.shipmentsOf(ctx, order)
			if err != nil {
				return err
			}

			plan, err := h.guard.Check(order, line, shipments, write.Values)
			if err != nil {
				return err
			}

			if err = line.Apply(write.Values); err != nil {
				return err
			}

			if plan.Guarded() {
				if err = plan.Move.Apply(plan.MoveValues); err != nil {
					return err
				}
				if err = plan.Cycle.Run(plan.Shipment); err != nil {
					return err
				}
				cycled = appendShipment(cycled, plan.Shipment)
			}

			if plan.InvalidateTotals {
				invalidate[order.ID()] = order
			}
		}
	}

	for _, shipment := range cycled {
		if err = shipmentRepo.Update(ctx, shipment); err != nil {
			return err
		}
	}

	for _, order := range batch.orders {
		if _, ok := invalidate[order.ID()]; ok {
			order.ClearTotals()
		}

		shipments, err := batch.shipmentsOf(ctx, order)
		if err != nil {
			return err
		}
		if err = services.ValidateInvoiceMethod(order, shipments); err != nil {
			return err
		}

		if err = orderRepo.Update(ctx, order); err != nil {
			return err
		}
	}

	h.log.Debug().
		Int("orders", len(batch.orders)).
		Int("shipments_cycled", len(cycled)).
		Int("caches_cleared", len(invalidate)).
		Msg("lines written")

	return uow.Commit(ctx)
}

func appendShipment(shipments []*stock.Shipment, shipment *stock.Shipment) []*stock.Shipment {
	for _, s := range shipments {
		if s == shipment {
			return shipments
		}
	}
	return append(shipments, shipment)
}
