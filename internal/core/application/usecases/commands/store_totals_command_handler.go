package commands

import (
	"context"

	"saleedit/internal/core/domain/model/sale"
	"saleedit/internal/pkg/logger"
)

// StoreTotalsCommandHandler recomputes and stores the totals of confirmed,
// processing and done orders whose cache is empty.
type StoreTotalsCommandHandler struct {
	uowFactory OrderUoWFactory
	log        *logger.Logger
}

func NewStoreTotalsCommandHandler(uowFactory OrderUoWFactory, log *logger.Logger) StoreTotalsCommandHandler {
	return StoreTotalsCommandHandler{
		uowFactory: uowFactory,
		log:        log,
	}
}

func (h StoreTotalsCommandHandler) Handle(ctx context.Context, cmd StoreTotalsCommand) error {
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
	orders, err := orderRepo.ListWithoutTotals(ctx,
		[]sale.State{sale.StateConfirmed, sale.StateProcessing, sale.StateDone}, cmd.BatchSize())
	if err != nil {
		return err
	}

	for _, order := range orders {
		order.StoreTotals()
		if err = orderRepo.Update(ctx, order); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if len(orders) > 0 {
		h.log.Info().Int("orders", len(orders)).Msg("totals cache stored")
	}
	return nil
}
