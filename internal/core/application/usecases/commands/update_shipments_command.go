package commands

import (
	"errors"

	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/core/domain/model/stock"
	"saleedit/internal/pkg/guard"
)

var ErrUpdateShipmentsCommandIsNotConstructed = errors.New(
	"UpdateShipmentsCommand must be created via NewUpdateShipmentsCommand constructor",
)

// ShipmentWrite applies Values to every shipment in IDs.
type ShipmentWrite struct {
	IDs    []kernel.UUID
	Values stock.ShipmentValues
}

// UpdateShipmentsCommand is a batch of shipment writes. Whether amounts are
// refreshed is decided by the context the command is handled with.
type UpdateShipmentsCommand struct { //nolint:recvcheck //using for validation
	writes []ShipmentWrite

	guard guard.ConstructorGuard
}

func NewUpdateShipmentsCommand(writes []ShipmentWrite) (UpdateShipmentsCommand, error) {
	if len(writes) == 0 {
		return UpdateShipmentsCommand{}, ErrNoWrites
	}
	for _, w := range writes {
		if err := validateIDs(w.IDs); err != nil {
			return UpdateShipmentsCommand{}, err
		}
	}

	return UpdateShipmentsCommand{
		writes: append([]ShipmentWrite(nil), writes...),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateShipmentsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShipmentsCommandIsNotConstructed)
}

func (c UpdateShipmentsCommand) Writes() []ShipmentWrite {
	return append([]ShipmentWrite(nil), c.writes...)
}
