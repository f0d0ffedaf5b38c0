package commands

import (
	"context"

	"saleedit/internal/core/domain/model/sale"
)

// InvoiceOrderCommandHandler attaches an invoice to an order. Once invoiced,
// the fields locked after invoicing can no longer change.
type InvoiceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewInvoiceOrderCommandHandler(uowFactory OrderUoWFactory) InvoiceOrderCommandHandler {
	return InvoiceOrderCommandHandler{uowFactory: uowFactory}
}

func (h InvoiceOrderCommandHandler) Handle(ctx context.Context, cmd InvoiceOrderCommand) error {
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

	invoice, err := sale.NewInvoice(cmd.InvoiceID(), cmd.Number(), order.Totals().Total)
	if err != nil {
		return err
	}
	if err = order.AddInvoice(invoice); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, order); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
