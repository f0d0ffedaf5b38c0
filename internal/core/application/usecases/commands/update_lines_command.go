package commands

import (
	"errors"

	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/core/domain/model/sale"
	"saleedit/internal/pkg/guard"
)

var ErrUpdateLinesCommandIsNotConstructed = errors.New(
	"UpdateLinesCommand must be created via NewUpdateLinesCommand constructor",
)

// LineWrite applies Values to every line in IDs.
type LineWrite struct {
	IDs    []kernel.UUID
	Values sale.LineValues
}

// UpdateLinesCommand is a batch of line writes applied in one transaction.
type UpdateLinesCommand struct { //nolint:recvcheck //using for validation
	writes []LineWrite

	guard guard.ConstructorGuard
}

func NewUpdateLinesCommand(writes []LineWrite) (UpdateLinesCommand, error) {
	if len(writes) == 0 {
		return UpdateLinesCommand{}, ErrNoWrites
	}
	for _, w := range writes {
		if err := validateIDs(w.IDs); err != nil {
			return UpdateLinesCommand{}, err
		}
	}

	return UpdateLinesCommand{
		writes: append([]LineWrite(nil), writes...),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateLinesCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLinesCommandIsNotConstructed)
}

func (c UpdateLinesCommand) Writes() []LineWrite {
	return append([]LineWrite(nil), c.writes...)
}

// LineIDs returns every line id of the batch, each once.
func (c UpdateLinesCommand) LineIDs() []kernel.UUID {
	var ids []kernel.UUID
	seen := map[kernel.UUID]bool{}
	for _, w := range c.writes {
		for _, id := range w.IDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}
