package stock

import (
	"fmt"

	"saleedit/internal/pkg/errs"
)

// ShipmentState is the lifecycle state of a shipment.
type ShipmentState string

const (
	ShipmentStateDraft     ShipmentState = "draft"
	ShipmentStateWaiting   ShipmentState = "waiting"
	ShipmentStateAssigned  ShipmentState = "assigned"
	ShipmentStatePacked    ShipmentState = "packed"
	ShipmentStateDone      ShipmentState = "done"
	ShipmentStateCancelled ShipmentState = "cancelled"
	ShipmentStateException ShipmentState = "exception"
)

func ParseShipmentState(s string) (ShipmentState, error) {
	st := ShipmentState(s)
	if err := st.Validate(); err != nil {
		return "", err
	}
	return st, nil
}

func (s ShipmentState) Validate() error {
	switch s {
	case ShipmentStateDraft, ShipmentStateWaiting, ShipmentStateAssigned, ShipmentStatePacked,
		ShipmentStateDone, ShipmentStateCancelled, ShipmentStateException:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("shipment state", fmt.Errorf("%q is not a valid shipment state", string(s)))
	}
}

// IsTerminal reports whether the shipment is done or cancelled.
func (s ShipmentState) IsTerminal() bool {
	return s == ShipmentStateDone || s == ShipmentStateCancelled
}

func (s ShipmentState) String() string {
	return string(s)
}

func (s ShipmentState) in(states ...ShipmentState) bool {
	for _, other := range states {
		if s == other {
			return true
		}
	}
	return false
}

// ShipmentKind separates outbound shipments from returns.
type ShipmentKind string

const (
	ShipmentKindOut    ShipmentKind = "out"
	ShipmentKindReturn ShipmentKind = "return"
)

func ParseShipmentKind(s string) (ShipmentKind, error) {
	k := ShipmentKind(s)
	switch k {
	case ShipmentKindOut, ShipmentKindReturn:
		return k, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("shipment kind", fmt.Errorf("%q is not a valid shipment kind", s))
	}
}

// LineMoveKind is the kind of the moves that fulfil order lines in a shipment of kind k.
func (k ShipmentKind) LineMoveKind() MoveKind {
	if k == ShipmentKindReturn {
		return MoveKindIncoming
	}
	return MoveKindOutgoing
}
