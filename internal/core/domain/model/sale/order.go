package sale

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/pkg/errs"
	"saleedit/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrLineNotFound is returned when a line id does not belong to the order.
	ErrLineNotFound = errors.New("line does not belong to order")
)

// Order is the sale order aggregate root. It owns its lines and invoices and
// keeps a nullable cache of its totals.
//
// Order follows these invariants:
//   - Must have a valid unique identifier, a number and a party
//   - Invoice method is one of manual, order, shipment
//   - State transitions follow the rules of State
//   - Done and cancelled orders are read-only
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id            kernel.UUID
	number        string
	party         string
	state         State
	invoiceMethod InvoiceMethod

	description     string
	reference       string
	paymentTerm     string
	paymentType     string
	invoiceAddress  string
	shipmentAddress string
	shipmentParty   string

	lines    []*Line
	invoices []*Invoice

	// totals is the stored copy of the computed totals, nil values when invalidated
	totals CachedTotals

	guard guard.ConstructorGuard
}

// OrderParams carries the complete state of a persisted order.
type OrderParams struct {
	ID              kernel.UUID
	Number          string
	Party           string
	State           State
	InvoiceMethod   InvoiceMethod
	Description     string
	Reference       string
	PaymentTerm     string
	PaymentType     string
	InvoiceAddress  string
	ShipmentAddress string
	ShipmentParty   string
	Lines           []*Line
	Invoices        []*Invoice
	Totals          CachedTotals
}

// NewOrder creates a draft order without lines.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - number: Business number shown to users (required)
//   - party: Customer the order is sold to (required)
//   - method: When invoices are created (manual, order or shipment)
//
// Example:
//
//	o, err := sale.NewOrder(kernel.NewUUID(), "SO-0001", "ACME", sale.InvoiceMethodOrder)
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(id kernel.UUID, number, party string, method InvoiceMethod) (*Order, error) {
	return RestoreOrder(OrderParams{
		ID:            id,
		Number:        number,
		Party:         party,
		State:         StateDraft,
		InvoiceMethod: method,
	})
}

// RestoreOrder rebuilds an order from persistence. Lines must belong to the
// order; they are kept sorted by sequence.
func RestoreOrder(p OrderParams) (*Order, error) {
	o := &Order{
		description:     p.Description,
		reference:       p.Reference,
		paymentTerm:     p.PaymentTerm,
		paymentType:     p.PaymentType,
		invoiceAddress:  p.InvoiceAddress,
		shipmentAddress: p.ShipmentAddress,
		shipmentParty:   p.ShipmentParty,
		totals:          p.Totals,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setNumber(p.Number),
		o.setParty(p.Party),
		o.setState(p.State),
		o.setInvoiceMethod(p.InvoiceMethod),
	); err != nil {
		return nil, err
	}

	for _, line := range p.Lines {
		if err := line.Validate(); err != nil {
			return nil, err
		}
		if !line.OrderID().IsEqual(o.id) {
			return nil, errs.NewValueIsInvalidErrorWithCause("line",
				fmt.Errorf("line %s belongs to order %s", line.ID(), line.OrderID()))
		}
		o.lines = append(o.lines, line)
	}
	o.sortLines()

	for _, inv := range p.Invoices {
		if err := inv.Validate(); err != nil {
			return nil, err
		}
		o.invoices = append(o.invoices, inv)
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID              { return o.id }
func (o *Order) Number() string               { return o.number }
func (o *Order) Party() string                { return o.party }
func (o *Order) State() State                 { return o.state }
func (o *Order) InvoiceMethod() InvoiceMethod { return o.invoiceMethod }
func (o *Order) Description() string          { return o.description }
func (o *Order) Reference() string            { return o.reference }
func (o *Order) PaymentTerm() string          { return o.paymentTerm }
func (o *Order) PaymentType() string          { return o.paymentType }
func (o *Order) InvoiceAddress() string       { return o.invoiceAddress }
func (o *Order) ShipmentAddress() string      { return o.shipmentAddress }
func (o *Order) ShipmentParty() string        { return o.shipmentParty }

// RecName is the human readable name used in error messages.
func (o *Order) RecName() string {
	return o.number
}

// Lines returns the order lines sorted by sequence. The slice is a copy; the
// lines themselves are shared with the order.
func (o *Order) Lines() []*Line {
	lines := make([]*Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// Line returns the line with the given id.
func (o *Order) Line(id kernel.UUID) (*Line, bool) {
	for _, line := range o.lines {
		if line.ID().IsEqual(id) {
			return line, true
		}
	}
	return nil, false
}

// Invoices returns a copy of the invoice list.
func (o *Order) Invoices() []*Invoice {
	invoices := make([]*Invoice, len(o.invoices))
	copy(invoices, o.invoices)
	return invoices
}

// HasInvoices reports whether at least one invoice was issued for the order.
func (o *Order) HasInvoices() bool {
	return len(o.invoices) > 0
}

// Apply performs the base write of an order.
//
// Field permissions depend on the state:
//   - draft accepts every field
//   - quotation, confirmed and processing accept only the fields in relaxed
//   - done and cancelled accept nothing
//
// A forbidden field yields an EditNotAllowedError of kind field-locked.
// Apply returns the lines it created, in creation order.
func (o *Order) Apply(v OrderValues, relaxed []OrderField) ([]*Line, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := o.checkWritable(v.Fields(), relaxed); err != nil {
		return nil, err
	}

	for _, f := range v.Fields() {
		if value, ok := v.StringValue(f); ok {
			o.setString(f, value)
		}
	}

	if v.Lines == nil {
		return nil, nil
	}

	for _, id := range v.Lines.Delete {
		if err := o.RemoveLine(id); err != nil {
			return nil, err
		}
	}

	created := make([]*Line, 0, len(v.Lines.Create))
	for _, params := range v.Lines.Create {
		line, err := o.AddLine(params)
		if err != nil {
			return nil, err
		}
		created = append(created, line)
	}

	return created, nil
}

// AddLine appends a new line after the last one.
func (o *Order) AddLine(params NewLineParams) (*Line, error) {
	line, err := NewLine(kernel.NewUUID(), o.id, o.nextSequence(), params)
	if err != nil {
		return nil, err
	}
	o.lines = append(o.lines, line)
	return line, nil
}

// RemoveLine drops a line from the order. State rules are enforced by the caller.
func (o *Order) RemoveLine(id kernel.UUID) error {
	for i, line := range o.lines {
		if line.ID().IsEqual(id) {
			o.lines = append(o.lines[:i], o.lines[i+1:]...)
			return nil
		}
	}
	return errs.NewObjectNotFoundErrorWithCause("line", id, ErrLineNotFound)
}

// Quote moves the order from draft to quotation.
func (o *Order) Quote() error {
	return o.changeState(o.state.Quote)
}

// Draft moves the order back to draft.
func (o *Order) Draft() error {
	return o.changeState(o.state.Draft)
}

// Confirm moves the order from quotation to confirmed.
func (o *Order) Confirm() error {
	if err := o.changeState(o.state.Confirm); err != nil {
		return err
	}
	o.StoreTotals()
	return nil
}

// Process moves the order to processing. Creating moves and shipments is the
// job of the fulfillment service.
func (o *Order) Process() error {
	if err := o.changeState(o.state.Process); err != nil {
		return err
	}
	o.StoreTotals()
	return nil
}

// Done marks the order as done.
func (o *Order) Done() error {
	return o.changeState(o.state.Done)
}

// Cancel cancels the order.
func (o *Order) Cancel() error {
	return o.changeState(o.state.Cancel)
}

// AddInvoice attaches an invoice. Only confirmed, processing and done orders
// can be invoiced.
func (o *Order) AddInvoice(inv *Invoice) error {
	if err := inv.Validate(); err != nil {
		return err
	}
	if !o.state.In(StateConfirmed, StateProcessing, StateDone) {
		return errs.NewValueIsInvalidErrorWithCause("state is invalid",
			fmt.Errorf("cannot invoice a %s order", o.state))
	}
	o.invoices = append(o.invoices, inv)
	return nil
}

// Totals computes the totals from the current lines, ignoring the cache.
func (o *Order) Totals() Totals {
	return ComputeTotals(o.lines)
}

// CachedTotals returns the stored totals.
func (o *Order) CachedTotals() CachedTotals {
	return o.totals
}

// StoreTotals recomputes the totals and stores them in the cache.
func (o *Order) StoreTotals() {
	o.totals = cacheOf(o.Totals())
}

// ClearTotals invalidates the cache and reports whether anything was cleared.
func (o *Order) ClearTotals() bool {
	if !o.totals.HasAny() {
		return false
	}
	o.totals = CachedTotals{}
	return true
}

func (o *Order) checkWritable(fields []OrderField, relaxed []OrderField) error {
	if len(fields) == 0 || o.state == StateDraft {
		return nil
	}

	var locked []string
	for _, f := range fields {
		if o.state.IsFinal() || !ContainsOrderField(relaxed, f) {
			locked = append(locked, string(f))
		}
	}
	if len(locked) == 0 {
		return nil
	}

	return errs.NewEditNotAllowedErrorWithDetail(
		errs.KindFieldLocked,
		o.RecName(),
		fmt.Sprintf("%s order: %s", o.state, strings.Join(locked, ", ")),
	)
}

func (o *Order) changeState(next func() (State, error)) error {
	if err := o.Validate(); err != nil {
		return err
	}
	state, err := next()
	if err != nil {
		return err
	}
	o.state = state
	return nil
}

func (o *Order) setString(f OrderField, value string) {
	switch f {
	case OrderFieldDescription:
		o.description = value
	case OrderFieldReference:
		o.reference = value
	case OrderFieldPaymentTerm:
		o.paymentTerm = value
	case OrderFieldPaymentType:
		o.paymentType = value
	case OrderFieldInvoiceAddress:
		o.invoiceAddress = value
	case OrderFieldShipmentAddress:
		o.shipmentAddress = value
	case OrderFieldShipmentParty:
		o.shipmentParty = value
	case OrderFieldLines:
	}
}

func (o *Order) nextSequence() int {
	next := 1
	for _, line := range o.lines {
		if line.Sequence() >= next {
			next = line.Sequence() + 1
		}
	}
	return next
}

func (o *Order) sortLines() {
	sort.SliceStable(o.lines, func(i, j int) bool {
		return o.lines[i].Sequence() < o.lines[j].Sequence()
	})
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return errs.NewValueIsRequiredError("number")
	}
	o.number = number
	return nil
}

func (o *Order) setParty(party string) error {
	if strings.TrimSpace(party) == "" {
		return errs.NewValueIsRequiredError("party")
	}
	o.party = party
	return nil
}

func (o *Order) setState(state State) error {
	if err := state.Validate(); err != nil {
		return err
	}
	o.state = state
	return nil
}

func (o *Order) setInvoiceMethod(method InvoiceMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.invoiceMethod = method
	return nil
}
