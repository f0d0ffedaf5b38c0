package commands

import (
	"errors"
	"fmt"

	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/pkg/errs"
	"saleedit/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// OrderTransition names a workflow step of an order.
type OrderTransition string

const (
	OrderTransitionDraft   OrderTransition = "draft"
	OrderTransitionQuote   OrderTransition = "quote"
	OrderTransitionConfirm OrderTransition = "confirm"
	OrderTransitionProcess OrderTransition = "process"
	OrderTransitionDone    OrderTransition = "done"
	OrderTransitionCancel  OrderTransition = "cancel"
)

func ParseOrderTransition(s string) (OrderTransition, error) {
	t := OrderTransition(s)
	switch t {
	case OrderTransitionDraft, OrderTransitionQuote, OrderTransitionConfirm,
		OrderTransitionProcess, OrderTransitionDone, OrderTransitionCancel:
		return t, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("transition", fmt.Errorf("%q is not an order transition", s))
	}
}

// TransitionOrderCommand moves an order through its workflow.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	transition OrderTransition

	guard guard.ConstructorGuard
}

func NewTransitionOrderCommand(orderID kernel.UUID, transition string) (TransitionOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return TransitionOrderCommand{}, err
	}
	t, err := ParseOrderTransition(transition)
	if err != nil {
		return TransitionOrderCommand{}, err
	}

	return TransitionOrderCommand{
		orderID:    orderID,
		transition: t,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) OrderID() kernel.UUID        { return c.orderID }
func (c TransitionOrderCommand) Transition() OrderTransition { return c.transition }
