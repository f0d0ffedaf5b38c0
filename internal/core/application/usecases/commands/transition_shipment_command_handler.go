package commands

import (
	"context"
	"fmt"

	"saleedit/internal/core/domain/model/stock"
)

// TransitionShipmentCommandHandler runs shipment workflow steps.
type TransitionShipmentCommandHandler struct {
	uowFactory UoWFactory
}

func NewTransitionShipmentCommandHandler(uowFactory UoWFactory) TransitionShipmentCommandHandler {
	return TransitionShipmentCommandHandler{uowFactory: uowFactory}
}

func (h TransitionShipmentCommandHandler) Handle(ctx context.Context, cmd TransitionShipmentCommand) error {
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
	shipment, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	if err = transitionShipment(shipment, cmd.Transition()); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, shipment); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func transitionShipment(shipment *stock.Shipment, t ShipmentTransition) error {
	switch t {
	case ShipmentTransitionDraft:
		return shipment.Draft()
	case ShipmentTransitionWait:
		return shipment.Wait()
	case ShipmentTransitionAssign:
		return shipment.Assign()
	case ShipmentTransitionPack:
		return shipment.Pack()
	case ShipmentTransitionDone:
		return shipment.Done()
	case ShipmentTransitionCancel:
		return shipment.Cancel()
	default:
		return fmt.Errorf("unknown shipment transition %q", t)
	}
}
