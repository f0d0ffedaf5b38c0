package stock

import (
	"errors"
	"fmt"

	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/pkg/errs"
	"saleedit/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment constructor")

	// ErrMoveNotInShipment is returned when a move does not belong to the shipment.
	ErrMoveNotInShipment = errors.New("move does not belong to shipment")
)

// Amounts are the monetary values of a shipment.
type Amounts struct {
	Untaxed decimal.Decimal
	Tax     decimal.Decimal
	Total   decimal.Decimal
}

// ShipmentField names a writable field of a shipment.
type ShipmentField string

const (
	ShipmentFieldDeliveryAddress ShipmentField = "delivery_address"
	ShipmentFieldCustomer        ShipmentField = "customer"
	ShipmentFieldReference       ShipmentField = "reference"
	ShipmentFieldAmounts         ShipmentField = "amounts"
)

// ShipmentValues is the change set of a shipment write. A nil field is left untouched.
type ShipmentValues struct {
	DeliveryAddress *string
	Customer        *string
	Reference       *string
	Amounts         *Amounts
}

// SetString sets a string field. It is a no-op for non-string fields.
func (v *ShipmentValues) SetString(f ShipmentField, value string) {
	switch f {
	case ShipmentFieldDeliveryAddress:
		v.DeliveryAddress = &value
	case ShipmentFieldCustomer:
		v.Customer = &value
	case ShipmentFieldReference:
		v.Reference = &value
	case ShipmentFieldAmounts:
	}
}

func (v ShipmentValues) IsEmpty() bool {
	return v.DeliveryAddress == nil && v.Customer == nil && v.Reference == nil && v.Amounts == nil
}

// Shipment is the aggregate root of a shipment and its moves.
//
// Business rules:
//   - Line moves are outgoing for kind out and incoming for kind return
//   - Inventory moves exist only on outbound shipments and only while they are
//     not draft; Wait regenerates them from the outgoing moves, Draft drops them
//   - Moves follow the shipment state
type Shipment struct {
	id              kernel.UUID
	kind            ShipmentKind
	orderID         kernel.UUID
	number          string
	state           ShipmentState
	deliveryAddress string
	customer        string
	reference       string

	moves          []*Move
	inventoryMoves []*Move

	// amounts is nil until computed
	amounts *Amounts

	guard guard.ConstructorGuard
}

// ShipmentParams carries the complete state of a shipment.
type ShipmentParams struct {
	ID              kernel.UUID
	Kind            ShipmentKind
	OrderID         kernel.UUID
	Number          string
	State           ShipmentState
	DeliveryAddress string
	Customer        string
	Reference       string
	Moves           []*Move
	InventoryMoves  []*Move
	Amounts         *Amounts
}

// NewShipment creates an empty draft shipment for an order.
func NewShipment(id kernel.UUID, kind ShipmentKind, orderID kernel.UUID, number string) (*Shipment, error) {
	return RestoreShipment(ShipmentParams{
		ID:      id,
		Kind:    kind,
		OrderID: orderID,
		Number:  number,
		State:   ShipmentStateDraft,
	})
}

// RestoreShipment rebuilds a shipment from persistence.
func RestoreShipment(p ShipmentParams) (*Shipment, error) {
	s := &Shipment{
		id:              p.ID,
		kind:            p.Kind,
		orderID:         p.OrderID,
		number:          p.Number,
		state:           p.State,
		deliveryAddress: p.DeliveryAddress,
		customer:        p.Customer,
		reference:       p.Reference,
		guard:           guard.NewConstructorGuard(),
	}
	if p.Amounts != nil {
		amounts := *p.Amounts
		s.amounts = &amounts
	}

	var errList []error
	errList = append(errList, p.ID.Validate(), p.OrderID.Validate(), p.State.Validate())
	if _, err := ParseShipmentKind(string(p.Kind)); err != nil {
		errList = append(errList, err)
	}
	if p.Number == "" {
		errList = append(errList, errs.NewValueIsRequiredError("shipment number"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	for _, m := range p.Moves {
		if err := s.attach(m, s.kind.LineMoveKind()); err != nil {
			return nil, err
		}
		s.moves = append(s.moves, m)
	}
	for _, m := range p.InventoryMoves {
		if err := s.attach(m, MoveKindInventory); err != nil {
			return nil, err
		}
		s.inventoryMoves = append(s.inventoryMoves, m)
	}

	return s, nil
}

func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

func (s *Shipment) ID() kernel.UUID         { return s.id }
func (s *Shipment) Kind() ShipmentKind      { return s.kind }
func (s *Shipment) OrderID() kernel.UUID    { return s.orderID }
func (s *Shipment) Number() string          { return s.number }
func (s *Shipment) State() ShipmentState    { return s.state }
func (s *Shipment) DeliveryAddress() string { return s.deliveryAddress }
func (s *Shipment) Customer() string        { return s.customer }
func (s *Shipment) Reference() string       { return s.reference }

func (s *Shipment) RecName() string {
	return s.number
}

// Amounts returns the stored amounts, nil when never computed.
func (s *Shipment) Amounts() *Amounts {
	if s.amounts == nil {
		return nil
	}
	amounts := *s.amounts
	return &amounts
}

// Moves returns the line moves of the shipment.
func (s *Shipment) Moves() []*Move {
	moves := make([]*Move, len(s.moves))
	copy(moves, s.moves)
	return moves
}

// InventoryMoves returns the generated inventory moves.
func (s *Shipment) InventoryMoves() []*Move {
	moves := make([]*Move, len(s.inventoryMoves))
	copy(moves, s.inventoryMoves)
	return moves
}

// AllMoves returns the line moves followed by the inventory moves.
func (s *Shipment) AllMoves() []*Move {
	moves := make([]*Move, 0, len(s.moves)+len(s.inventoryMoves))
	moves = append(moves, s.moves...)
	return append(moves, s.inventoryMoves...)
}

// MovesOfLine returns the line moves that originate from lineID.
func (s *Shipment) MovesOfLine(lineID kernel.UUID) []*Move {
	var moves []*Move
	for _, m := range s.moves {
		if m.IsOf(lineID) {
			moves = append(moves, m)
		}
	}
	return moves
}

// Move returns the line move with the given id.
func (s *Shipment) Move(id kernel.UUID) (*Move, bool) {
	for _, m := range s.moves {
		if m.ID().IsEqual(id) {
			return m, true
		}
	}
	return nil, false
}

// AllMovesDraft reports whether every line and inventory move is draft.
func (s *Shipment) AllMovesDraft() bool {
	for _, m := range s.AllMoves() {
		if !m.IsDraft() {
			return false
		}
	}
	return true
}

// AddMove adds a line move. Moves can only be added to draft or waiting shipments.
func (s *Shipment) AddMove(m *Move) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if !s.state.in(ShipmentStateDraft, ShipmentStateWaiting) {
		return errs.NewValueIsInvalidErrorWithCause("shipment state",
			fmt.Errorf("cannot add moves to a %s shipment", s.state))
	}
	if err := s.attach(m, s.kind.LineMoveKind()); err != nil {
		return err
	}
	s.moves = append(s.moves, m)
	return nil
}

// Apply writes shipment values. Amounts are replaced as a whole.
func (s *Shipment) Apply(v ShipmentValues) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if v.DeliveryAddress != nil {
		s.deliveryAddress = *v.DeliveryAddress
	}
	if v.Customer != nil {
		s.customer = *v.Customer
	}
	if v.Reference != nil {
		s.reference = *v.Reference
	}
	if v.Amounts != nil {
		amounts := *v.Amounts
		s.amounts = &amounts
	}
	return nil
}

// Draft resets the shipment to draft: line moves go back to draft and inventory
// moves are dropped.
func (s *Shipment) Draft() error {
	if err := s.transition(ShipmentStateDraft, ShipmentStateDraft, ShipmentStateWaiting, ShipmentStateCancelled); err != nil {
		return err
	}
	s.setMoveStates(MoveStateDraft)
	s.inventoryMoves = nil
	return nil
}

// Wait moves the shipment to waiting. For outbound shipments the inventory
// moves are rebuilt from the outgoing moves.
func (s *Shipment) Wait() error {
	if err := s.transition(ShipmentStateWaiting, ShipmentStateDraft, ShipmentStateWaiting, ShipmentStateAssigned); err != nil {
		return err
	}
	s.setMoveStates(MoveStateDraft)
	if s.kind != ShipmentKindOut {
		return nil
	}

	inventory := make([]*Move, 0, len(s.moves))
	for _, m := range s.moves {
		inv, err := NewMove(MoveParams{
			ID:         kernel.NewUUID(),
			Kind:       MoveKindInventory,
			ShipmentID: s.id,
			Product:    m.Product(),
			UOM:        m.UOM(),
			Quantity:   m.Quantity(),
			UnitPrice:  m.UnitPrice(),
		})
		if err != nil {
			return err
		}
		inventory = append(inventory, inv)
	}
	s.inventoryMoves = inventory
	return nil
}

// Assign reserves the goods.
func (s *Shipment) Assign() error {
	if err := s.transition(ShipmentStateAssigned, ShipmentStateWaiting); err != nil {
		return err
	}
	s.setMoveStates(MoveStateAssigned)
	return nil
}

// Pack marks an assigned outbound shipment as packed.
func (s *Shipment) Pack() error {
	if s.kind != ShipmentKindOut {
		return errs.NewValueIsInvalidErrorWithCause("shipment kind", errors.New("only outbound shipments are packed"))
	}
	return s.transition(ShipmentStatePacked, ShipmentStateAssigned)
}

// Done completes the shipment. Outbound shipments must be packed, returns
// must be waiting.
func (s *Shipment) Done() error {
	from := ShipmentStatePacked
	if s.kind == ShipmentKindReturn {
		from = ShipmentStateWaiting
	}
	if err := s.transition(ShipmentStateDone, from); err != nil {
		return err
	}
	s.setMoveStates(MoveStateDone)
	return nil
}

// Cancel cancels a shipment that is not done.
func (s *Shipment) Cancel() error {
	if err := s.transition(ShipmentStateCancelled,
		ShipmentStateDraft, ShipmentStateWaiting, ShipmentStateAssigned, ShipmentStateException); err != nil {
		return err
	}
	s.setMoveStates(MoveStateCancelled)
	return nil
}

func (s *Shipment) transition(to ShipmentState, from ...ShipmentState) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if !s.state.in(from...) {
		return errs.NewValueIsInvalidErrorWithCause("shipment state",
			fmt.Errorf("cannot go from %s to %s", s.state, to))
	}
	s.state = to
	return nil
}

func (s *Shipment) setMoveStates(state MoveState) {
	for _, m := range s.AllMoves() {
		m.setState(state)
	}
}

func (s *Shipment) attach(m *Move, kind MoveKind) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if m.Kind() != kind || !m.ShipmentID().IsEqual(s.id) {
		return errs.NewValueIsInvalidErrorWithCause("move",
			fmt.Errorf("%s %s: %w", m.Kind(), m.ID(), ErrMoveNotInShipment))
	}
	return nil
}
