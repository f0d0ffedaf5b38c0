package commands

import (
	"context"

	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/core/domain/model/sale"
	"saleedit/internal/core/domain/services"
	"saleedit/internal/pkg/errs"
)

// DeleteLinesCommandHandler deletes lines. Lines of processing, done and
// cancelled orders cannot be deleted; deleting a line clears the totals cache
// of its order.
type DeleteLinesCommandHandler struct {
	uowFactory OrderUoWFactory
	guard      services.LineDeleteGuard
}

func NewDeleteLinesCommandHandler(uowFactory OrderUoWFactory) DeleteLinesCommandHandler {
	return DeleteLinesCommandHandler{uowFactory: uowFactory}
}

func (h DeleteLinesCommandHandler) Handle(ctx context.Context, cmd DeleteLinesCommand) error {
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
	orders, err := orderRepo.GetByLineIDs(ctx, cmd.LineIDs())
	if err != nil {
		return err
	}

	orderOfLine := map[kernel.UUID]*sale.Order{}
	for _, o := range orders {
		for _, line := range o.Lines() {
			orderOfLine[line.ID()] = o
		}
	}

	for _, id := range cmd.LineIDs() {
		order, ok := orderOfLine[id]
		if !ok {
			return errs.NewObjectNotFoundError("line", id)
		}
		line, ok := order.Line(id)
		if !ok {
			// deleted twice in the same command
			continue
		}

		invalidate, err := h.guard.Check(order, line)
		if err != nil {
			return err
		}
		if err = order.RemoveLine(id); err != nil {
			return err
		}
		if invalidate {
			order.ClearTotals()
		}
	}

	for _, order := range orders {
		if err = orderRepo.Update(ctx, order); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
