package commands

import (
	"errors"

	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/pkg/guard"
)

var ErrDeleteLinesCommandIsNotConstructed = errors.New(
	"DeleteLinesCommand must be created via NewDeleteLinesCommand constructor",
)

// DeleteLinesCommand removes lines from their orders.
type DeleteLinesCommand struct { //nolint:recvcheck //using for validation
	lineIDs []kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteLinesCommand(lineIDs []kernel.UUID) (DeleteLinesCommand, error) {
	if err := validateIDs(lineIDs); err != nil {
		return DeleteLinesCommand{}, err
	}

	return DeleteLinesCommand{
		lineIDs: append([]kernel.UUID(nil), lineIDs...),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteLinesCommand) Validate() error {
	return c.guard.Validate(ErrDeleteLinesCommandIsNotConstructed)
}

func (c DeleteLinesCommand) LineIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.lineIDs...)
}
