package commands

import (
	"errors"
	"fmt"

	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/pkg/errs"
	"saleedit/internal/pkg/guard"
)

var ErrTransitionShipmentCommandIsNotConstructed = errors.New(
	"TransitionShipmentCommand must be created via NewTransitionShipmentCommand constructor",
)

// ShipmentTransition names a workflow step of a shipment.
type ShipmentTransition string

const (
	ShipmentTransitionDraft  ShipmentTransition = "draft"
	ShipmentTransitionWait   ShipmentTransition = "wait"
	ShipmentTransitionAssign ShipmentTransition = "assign"
	ShipmentTransitionPack   ShipmentTransition = "pack"
	ShipmentTransitionDone   ShipmentTransition = "done"
	ShipmentTransitionCancel ShipmentTransition = "cancel"
)

func ParseShipmentTransition(s string) (ShipmentTransition, error) {
	t := ShipmentTransition(s)
	switch t {
	case ShipmentTransitionDraft, ShipmentTransitionWait, ShipmentTransitionAssign,
		ShipmentTransitionPack, ShipmentTransitionDone, ShipmentTransitionCancel:
		return t, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("transition", fmt.Errorf("%q is not a shipment transition", s))
	}
}

// TransitionShipmentCommand moves a shipment through its workflow.
type TransitionShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	transition ShipmentTransition

	guard guard.ConstructorGuard
}

func NewTransitionShipmentCommand(shipmentID kernel.UUID, transition string) (TransitionShipmentCommand, error) {
	if err := shipmentID.Validate(); err != nil {
		return TransitionShipmentCommand{}, err
	}
	t, err := ParseShipmentTransition(transition)
	if err != nil {
		return TransitionShipmentCommand{}, err
	}

	return TransitionShipmentCommand{
		shipmentID: shipmentID,
		transition: t,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionShipmentCommand) Validate() error {
	return c.guard.Validate(ErrTransitionShipmentCommandIsNotConstructed)
}

func (c TransitionShipmentCommand) ShipmentID() kernel.UUID        { return c.shipmentID }
func (c TransitionShipmentCommand) Transition() ShipmentTransition { return c.transition }
