package commands

import (
	"context"
	"fmt"

	"saleedit/internal/core/domain/model/sale"
	"saleedit/internal/core/domain/services"
	"saleedit/internal/core/ports"
	"saleedit/internal/pkg/logger"
)

// UpdateOrdersCommandHandler writes orders and cascades the change to their
// shipments. For every order, in this order:
//   - the order edit guard validates the write and plans the side effects
//   - the base write is applied
//   - mirrored fields are written on the outbound shipments
//   - new lines are processed
//   - totals are recomputed
//   - the invoice method invariant is validated
//
// Everything is committed at once; any failure rolls the whole batch back.
type UpdateOrdersCommandHandler struct {
	uowFactory  UoWFactory
	policy      services.EditPolicy
	guard       services.OrderEditGuard
	refresher   services.ShipmentAmountRefresher
	fulfillment services.Fulfillment
	log         *logger.Logger
}

func NewUpdateOrdersCommandHandler(
	uowFactory UoWFactory,
	policy services.EditPolicy,
	refresher services.ShipmentAmountRefresher,
	fulfillment services.Fulfillment,
	log *logger.Logger,
) UpdateOrdersCommandHandler {
	return UpdateOrdersCommandHandler{
		uowFactory:  uowFactory,
		policy:      policy,
		guard:       services.NewOrderEditGuard(policy),
		refresher:   refresher,
		fulfillment: fulfillment,
		log:         log,
	}
}

func (h UpdateOrdersCommandHandler) Handle(ctx context.Context, cmd UpdateOrdersCommand) error {
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

	for _, write := range cmd.Writes() {
		for _, id := range write.IDs {
			order, err := uow.OrderRepository().Get(ctx, id)
			if err != nil {
				return err
			}
			if err = h.write(ctx, uow, order, write.Values); err != nil {
				return err
			}
		}
	}

	return uow.Commit(ctx)
}

func (h UpdateOrdersCommandHandler) write(ctx context.Context, uow UoW, order *sale.Order, values sale.OrderValues) error {
	shipmentRepo := uow.ShipmentRepository()
	shipments, err := shipmentRepo.GetByOrder(ctx, order.ID())
	if err != nil {
		return err
	}

	plan, err := h.guard.Check(order, shipments, values)
	if err != nil {
		return err
	}

	created, err := order.Apply(values, h.policy.RelaxedOrderFields())
	if err != nil {
		return err
	}

	for _, sw := range plan.ShipmentWrites {
		if err = h.writeShipment(ctx, shipmentRepo, order, sw); err != nil {
			return err
		}
	}

	if plan.Reprocess {
		result, err := h.fulfillment.Process(order, shipments)
		if err != nil {
			return err
		}
		if err = saveFulfillment(ctx, shipmentRepo, result); err != nil {
			return err
		}
		shipments = append(shipments, result.Created...)
	}

	switch {
	case plan.LinesChanged:
		order.ClearTotals()
		order.StoreTotals()
	case len(created) > 0 && order.State().In(sale.StateConfirmed, sale.StateProcessing):
		order.ClearTotals()
	}

	if err = services.ValidateInvoiceMethod(order, shipments); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, order); err != nil {
		return fmt.Errorf("update order %s: %w", order.Number(), err)
	}

	h.log.Debug().
		Str("order", order.Number()).
		Int("shipment_writes", len(plan.ShipmentWrites)).
		Bool("reprocessed", plan.Reprocess).
		Int("created_lines", len(created)).
		Msg("order written")

	return nil
}

func (h UpdateOrdersCommandHandler) writeShipment(
	ctx context.Context,
	repo ports.ShipmentRepository,
	order *sale.Order,
	sw services.ShipmentWrite,
) error {
	values, err := h.refresher.Prepare(ctx, sw.Shipment, order, sw.Values)
	if err != nil {
		return err
	}
	if err = sw.Shipment.Apply(values); err != nil {
		return err
	}
	return repo.Update(ctx, sw.Shipment)
}
