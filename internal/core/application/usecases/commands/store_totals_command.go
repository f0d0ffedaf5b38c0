package commands

import (
	"errors"
	"fmt"

	"saleedit/internal/pkg/errs"
	"saleedit/internal/pkg/guard"
)

var ErrStoreTotalsCommandIsNotConstructed = errors.New(
	"StoreTotalsCommand must be created via NewStoreTotalsCommand constructor",
)

// StoreTotalsCommand fills the totals cache of orders that lost it.
//
// Example:
//
//	cmd, _ := NewStoreTotalsCommand(100)
//	handler := NewStoreTotalsCommandHandler(uowFactory, log)
//
//	// Run periodically from the totals cache job
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Error().Err(err).Msg("store totals failed")
//	}
type StoreTotalsCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

func NewStoreTotalsCommand(batchSize int) (StoreTotalsCommand, error) {
	if batchSize <= 0 {
		return StoreTotalsCommand{}, errs.NewValueIsInvalidErrorWithCause("batch size",
			fmt.Errorf("%d is not greater than 0", batchSize))
	}

	return StoreTotalsCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c StoreTotalsCommand) Validate() error {
	return c.guard.Validate(ErrStoreTotalsCommandIsNotConstructed)
}

func (c StoreTotalsCommand) BatchSize() int {
	return c.batchSize
}
