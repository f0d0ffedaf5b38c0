package sale

import (
	"fmt"

	"saleedit/internal/pkg/errs"
)

// State is the lifecycle state of an order.
//
//	draft ──> quotation ──> confirmed ──> processing ──> done
//	  │  <──────┘               │
//	  └──────────┴──> cancelled ┘ (cancel only before processing)
type State int

const (
	StateUnknown State = iota
	StateDraft
	StateQuotation
	StateConfirmed
	StateProcessing
	StateDone
	StateCancelled
)

func getStateStrings() map[State]string {
	return map[State]string{
		StateUnknown:    "unknown",
		StateDraft:      "draft",
		StateQuotation:  "quotation",
		StateConfirmed:  "confirmed",
		StateProcessing: "processing",
		StateDone:       "done",
		StateCancelled:  "cancelled",
	}
}

// ParseState converts the persisted or API representation back to a State.
func ParseState(s string) (State, error) {
	for state, str := range getStateStrings() {
		if str == s && state != StateUnknown {
			return state, nil
		}
	}
	return StateUnknown, errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%q is not a valid state", s))
}

// Validate returns an error for StateUnknown and out-of-range values.
func (s State) Validate() error {
	if s <= StateUnknown || s > StateCancelled {
		return errs.NewValueIsInvalidErrorWithCause("state is invalid", fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// In reports whether s is one of states.
func (s State) In(states ...State) bool {
	for _, other := range states {
		if s == other {
			return true
		}
	}
	return false
}

// IsFinal reports whether no further edit or transition is possible.
func (s State) IsFinal() bool {
	return s == StateDone || s == StateCancelled
}

func (s State) transition(to State, from ...State) (State, error) {
	if !s.In(from...) {
		return StateUnknown, errs.NewValueIsInvalidErrorWithCause(
			"state is invalid",
			fmt.Errorf("cannot go from %s to %s", s, to),
		)
	}
	return to, nil
}

// Quote moves a draft order to quotation.
func (s State) Quote() (State, error) {
	return s.transition(StateQuotation, StateDraft)
}

// Draft moves a quotation or cancelled order back to draft.
func (s State) Draft() (State, error) {
	return s.transition(StateDraft, StateQuotation, StateCancelled)
}

// Confirm moves a quotation to confirmed.
func (s State) Confirm() (State, error) {
	return s.transition(StateConfirmed, StateQuotation)
}

// Process moves a confirmed order to processing. Processing an order that is
// already processing is allowed: it regenerates missing moves.
func (s State) Process() (State, error) {
	return s.transition(StateProcessing, StateConfirmed, StateProcessing)
}

// Done moves a processing order to done.
func (s State) Done() (State, error) {
	return s.transition(StateDone, StateProcessing)
}

// Cancel cancels an order that has not been confirmed yet.
func (s State) Cancel() (State, error) {
	return s.transition(StateCancelled, StateDraft, StateQuotation)
}
