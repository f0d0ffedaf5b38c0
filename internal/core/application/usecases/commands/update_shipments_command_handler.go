package commands

import (
	"context"

	"saleedit/internal/core/domain/services"
)

// UpdateShipmentsCommandHandler writes shipments. Each write goes through the
// amount refresher, so a context built with services.WithUpdateAmounts stores
// fresh amounts on every shipment that is not done or cancelled.
type UpdateShipmentsCommandHandler struct {
	uowFactory UoWFactory
	refresher  services.ShipmentAmountRefresher
}

func NewUpdateShipmentsCommandHandler(
	uowFactory UoWFactory,
	refresher services.ShipmentAmountRefresher,
) UpdateShipmentsCommandHandler {
	return UpdateShipmentsCommandHandler{
		uowFactory: uowFactory,
		refresher:  refresher,
	}
}

func (h UpdateShipmentsCommandHandler) Handle(ctx context.Context, cmd UpdateShipmentsCommand) error {
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

	shipmentRepo := uow.ShipmentRepository()
	orderRepo := uow.OrderRepository()

	for _, write := range cmd.Writes() {
		for _, id := range write.IDs {
			shipment, err := shipmentRepo.Get(ctx, id)
			if err != nil {
				return err
			}
			order, err := orderRepo.Get(ctx, shipment.OrderID())
			if err != nil {
				return err
			}

			values, err := h.refresher.Prepare(ctx, shipment, order, write.Values)
			if err != nil {
				return err
			}
			if err = shipment.Apply(values); err != nil {
				return err
			}
			if err = shipmentRepo.Update(ctx, shipment); err != nil {
				return err
			}
		}
	}

	return uow.Commit(ctx)
}
