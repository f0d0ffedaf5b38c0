package commands

import (
	"context"
	"fmt"

	"saleedit/internal/core/domain/model/sale"
	"saleedit/internal/core/domain/services"
	"saleedit/internal/pkg/logger"
)

// TransitionOrderCommandHandler runs order workflow steps. Processing an order
// creates the shipments and moves of its lines.
type TransitionOrderCommandHandler struct {
	uowFactory  UoWFactory
	fulfillment services.Fulfillment
	log         *logger.Logger
}

func NewTransitionOrderCommandHandler(
	uowFactory UoWFactory,
	fulfillment services.Fulfillment,
	log *logger.Logger,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory:  uowFactory,
		fulfillment: fulfillment,
		log:         log,
	}
}

func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
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
	order, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = transition(order, cmd.Transition()); err != nil {
		return err
	}

	if cmd.Transition() == OrderTransitionProcess {
		if err = h.process(ctx, uow, order); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, order); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h TransitionOrderCommandHandler) process(ctx context.Context, uow UoW, order *sale.Order) error {
	shipmentRepo := uow.ShipmentRepository()
	shipments, err := shipmentRepo.GetByOrder(ctx, order.ID())
	if err != nil {
		return err
	}

	result, err := h.fulfillment.Process(order, shipments)
	if err != nil {
		return err
	}
	if err = saveFulfillment(ctx, shipmentRepo, result); err != nil {
		return err
	}

	h.log.Debug().
		Str("order", order.Number()).
		Int("created", len(result.Created)).
		Int("updated", len(result.Updated)).
		Msg("order processed")

	return services.ValidateInvoiceMethod(order, append(shipments, result.Created...))
}

func transition(order *sale.Order, t OrderTransition) error {
	switch t {
	case OrderTransitionDraft:
		return order.Draft()
	case OrderTransitionQuote:
		return order.Quote()
	case OrderTransitionConfirm:
		return order.Confirm()
	case OrderTransitionProcess:
		return order.Process()
	case OrderTransitionDone:
		return order.Done()
	case OrderTransitionCancel:
		return order.Cancel()
	default:
		return fmt.Errorf("unknown order transition %q", t)
	}
}
