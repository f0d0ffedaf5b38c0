package commands

import (
	"context"

	"saleedit/internal/core/domain/model/sale"
)

// CreateOrderCommandHandler creates draft orders.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle builds the order with its lines and persists it.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	params := cmd.Params()
	order, err := sale.NewOrder(cmd.OrderID(), params.Number, params.Party, params.InvoiceMethod)
	if err != nil {
		return err
	}
	if _, err = order.Apply(cmd.Values(), nil); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, order); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
