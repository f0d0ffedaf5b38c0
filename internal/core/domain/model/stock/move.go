package stock

import (
	"errors"
	"fmt"
	"strings"

	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/pkg/errs"
	"saleedit/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrMoveIsNotConstructed = errors.New("Move must be created via NewMove or RestoreMove constructor")

// MoveKind tells where a move goes.
type MoveKind string

const (
	// MoveKindOutgoing goes from the warehouse output to the customer.
	MoveKindOutgoing MoveKind = "outgoing"
	// MoveKindIncoming comes back from the customer.
	MoveKindIncoming MoveKind = "incoming"
	// MoveKindInventory goes from storage to the warehouse output.
	MoveKindInventory MoveKind = "inventory"
)

func ParseMoveKind(s string) (MoveKind, error) {
	k := MoveKind(s)
	switch k {
	case MoveKindOutgoing, MoveKindIncoming, MoveKindInventory:
		return k, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("move kind", fmt.Errorf("%q is not a valid move kind", s))
	}
}

// MoveState is the lifecycle state of a move.
type MoveState string

const (
	MoveStateDraft     MoveState = "draft"
	MoveStateAssigned  MoveState = "assigned"
	MoveStateDone      MoveState = "done"
	MoveStateCancelled MoveState = "cancelled"
)

func ParseMoveState(s string) (MoveState, error) {
	st := MoveState(s)
	switch st {
	case MoveStateDraft, MoveStateAssigned, MoveStateDone, MoveStateCancelled:
		return st, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("move state", fmt.Errorf("%q is not a valid move state", s))
	}
}

// MoveField names a writable field of a move.
type MoveField string

const (
	MoveFieldProduct   MoveField = "product"
	MoveFieldUOM       MoveField = "uom"
	MoveFieldQuantity  MoveField = "quantity"
	MoveFieldUnitPrice MoveField = "unit_price"
)

// MoveValues is the change set of a move write. A nil field is left untouched.
type MoveValues struct {
	Product   *string
	UOM       *string
	Quantity  *decimal.Decimal
	UnitPrice *decimal.Decimal
}

func (v MoveValues) IsEmpty() bool {
	return v.Product == nil && v.UOM == nil && v.Quantity == nil && v.UnitPrice == nil
}

// Move is a stock move.
type Move struct {
	id         kernel.UUID
	kind       MoveKind
	originLine *kernel.UUID
	shipmentID kernel.UUID
	product    string
	uom        string
	quantity   decimal.Decimal
	unitPrice  decimal.Decimal
	state      MoveState

	guard guard.ConstructorGuard
}

// MoveParams carries the complete state of a move.
type MoveParams struct {
	ID         kernel.UUID
	Kind       MoveKind
	OriginLine *kernel.UUID
	ShipmentID kernel.UUID
	Product    string
	UOM        string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	State      MoveState
}

// NewMove creates a draft move.
func NewMove(p MoveParams) (*Move, error) {
	p.State = MoveStateDraft
	return RestoreMove(p)
}

// RestoreMove rebuilds a move from persistence.
//
// Business rules:
//   - Line moves (outgoing, incoming) carry their origin line; inventory moves do not
//   - Quantity is never negative
//   - Product and unit of measure are required
func RestoreMove(p MoveParams) (*Move, error) {
	m := &Move{
		id:         p.ID,
		kind:       p.Kind,
		shipmentID: p.ShipmentID,
		product:    p.Product,
		uom:        p.UOM,
		unitPrice:  p.UnitPrice,
		state:      p.State,
		guard:      guard.NewConstructorGuard(),
	}
	if p.OriginLine != nil {
		line := *p.OriginLine
		m.originLine = &line
	}

	var errList []error
	errList = append(errList, p.ID.Validate(), p.ShipmentID.Validate())
	if _, err := ParseMoveKind(string(p.Kind)); err != nil {
		errList = append(errList, err)
	}
	if _, err := ParseMoveState(string(p.State)); err != nil {
		errList = append(errList, err)
	}
	if p.Kind == MoveKindInventory && p.OriginLine != nil {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("origin line",
			errors.New("inventory moves have no origin line")))
	}
	if p.Kind != MoveKindInventory && p.OriginLine == nil {
		errList = append(errList, errs.NewValueIsRequiredError("origin line"))
	}
	errList = append(errList, m.setQuantity(p.Quantity), m.checkProduct())
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Move) Validate() error {
	if m == nil {
		return ErrMoveIsNotConstructed
	}
	return m.guard.Validate(ErrMoveIsNotConstructed)
}

func (m *Move) ID() kernel.UUID            { return m.id }
func (m *Move) Kind() MoveKind             { return m.kind }
func (m *Move) ShipmentID() kernel.UUID    { return m.shipmentID }
func (m *Move) Product() string            { return m.product }
func (m *Move) UOM() string                { return m.uom }
func (m *Move) Quantity() decimal.Decimal  { return m.quantity }
func (m *Move) UnitPrice() decimal.Decimal { return m.unitPrice }
func (m *Move) State() MoveState           { return m.state }

// OriginLine returns the order line the move fulfils, nil for inventory moves.
func (m *Move) OriginLine() *kernel.UUID {
	if m.originLine == nil {
		return nil
	}
	line := *m.originLine
	return &line
}

// IsOf reports whether the move originates from the given line.
func (m *Move) IsOf(lineID kernel.UUID) bool {
	return m.originLine != nil && m.originLine.IsEqual(lineID)
}

func (m *Move) IsDraft() bool {
	return m.state == MoveStateDraft
}

func (m *Move) RecName() string {
	return fmt.Sprintf("%s %s %s (%s)", m.quantity, m.uom, m.product, m.id)
}

// Apply changes a draft move. Any other state yields move-not-editable.
func (m *Move) Apply(v MoveValues) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if v.IsEmpty() {
		return nil
	}
	if !m.IsDraft() {
		return errs.NewEditNotAllowedErrorWithDetail(errs.KindMoveNotEditable, m.RecName(), string(m.state))
	}

	next := *m
	var errList []error
	if v.Product != nil {
		next.product = *v.Product
	}
	if v.UOM != nil {
		next.uom = *v.UOM
	}
	if v.Quantity != nil {
		errList = append(errList, next.setQuantity(*v.Quantity))
	}
	if v.UnitPrice != nil {
		next.unitPrice = *v.UnitPrice
	}
	errList = append(errList, next.checkProduct())
	if err := errors.Join(errList...); err != nil {
		return err
	}

	*m = next
	return nil
}

func (m *Move) setState(state MoveState) {
	m.state = state
}

func (m *Move) setQuantity(q decimal.Decimal) error {
	if q.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("move quantity", fmt.Errorf("%s is negative", q))
	}
	m.quantity = q
	return nil
}

func (m *Move) checkProduct() error {
	if strings.TrimSpace(m.product) == "" {
		return errs.NewValueIsRequiredError("move product")
	}
	if strings.TrimSpace(m.uom) == "" {
		return errs.NewValueIsRequiredError("move uom")
	}
	return nil
}
