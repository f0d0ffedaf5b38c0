package commands

import (
	"errors"

	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/core/domain/model/sale"
	"saleedit/internal/pkg/guard"
)

var (
	ErrUpdateOrdersCommandIsNotConstructed = errors.New(
		"UpdateOrdersCommand must be created via NewUpdateOrdersCommand constructor",
	)
	ErrNoWrites   = errors.New("at least one write is required")
	ErrNoRecordID = errors.New("every write needs at least one id")
)

// OrderWrite applies Values to every order in IDs.
type OrderWrite struct {
	IDs    []kernel.UUID
	Values sale.OrderValues
}

// UpdateOrdersCommand is a batch of order writes applied in one transaction.
type UpdateOrdersCommand struct { //nolint:recvcheck //using for validation
	writes []OrderWrite

	guard guard.ConstructorGuard
}

func NewUpdateOrdersCommand(writes []OrderWrite) (UpdateOrdersCommand, error) {
	if len(writes) == 0 {
		return UpdateOrdersCommand{}, ErrNoWrites
	}
	for _, w := range writes {
		if err := validateIDs(w.IDs); err != nil {
			return UpdateOrdersCommand{}, err
		}
	}

	return UpdateOrdersCommand{
		writes: append([]OrderWrite(nil), writes...),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrdersCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrdersCommandIsNotConstructed)
}

func (c UpdateOrdersCommand) Writes() []OrderWrite {
	return append([]OrderWrite(nil), c.writes...)
}

func validateIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return ErrNoRecordID
	}
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	return nil
}
