package sale

import (
	"errors"
	"fmt"

	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/pkg/errs"
	"saleedit/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrLineIsNotConstructed is returned when a Line was not created through NewLine or RestoreLine.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine or RestoreLine constructor")

// Line is an order line. Product lines carry quantity and prices; title and
// comment lines only carry a description and never produce moves.
//
// Quantity may be negative: a negative product line is a return and is
// fulfilled by a return shipment.
type Line struct {
	id       kernel.UUID
	orderID  kernel.UUID
	sequence int
	lineType LineType

	product   string
	unit      string
	quantity  decimal.Decimal
	unitPrice decimal.Decimal
	discount  decimal.Decimal
	taxRate   decimal.Decimal

	description string

	// moveRecreated and moveIgnored are housekeeping flags maintained by the
	// fulfillment process.
	moveRecreated bool
	moveIgnored   bool

	guard guard.ConstructorGuard
}

// LineParams carries the complete state of a persisted line.
type LineParams struct {
	ID            kernel.UUID
	OrderID       kernel.UUID
	Sequence      int
	Type          LineType
	Product       string
	Unit          string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	Discount      decimal.Decimal
	TaxRate       decimal.Decimal
	Description   string
	MoveRecreated bool
	MoveIgnored   bool
}

// NewLine creates a line of the given order.
//
// Business rules:
//   - Type must be valid
//   - Product lines need a product and a unit
//   - Discount is a ratio in [0, 1]
//   - Unit price and tax rate are non-negative
func NewLine(id, orderID kernel.UUID, sequence int, params NewLineParams) (*Line, error) {
	return RestoreLine(LineParams{
		ID:          id,
		OrderID:     orderID,
		Sequence:    sequence,
		Type:        params.Type,
		Product:     params.Product,
		Unit:        params.Unit,
		Quantity:    params.Quantity,
		UnitPrice:   params.UnitPrice,
		Discount:    params.Discount,
		TaxRate:     params.TaxRate,
		Description: params.Description,
	})
}

// RestoreLine rebuilds a line from persistence, enforcing the same rules as NewLine.
func RestoreLine(p LineParams) (*Line, error) {
	line := &Line{
		sequence:      p.Sequence,
		description:   p.Description,
		moveRecreated: p.MoveRecreated,
		moveIgnored:   p.MoveIgnored,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		line.setID(p.ID),
		line.setOrderID(p.OrderID),
		line.setType(p.Type),
		line.setUnitPrice(p.UnitPrice),
		line.setDiscount(p.Discount),
		line.setTaxRate(p.TaxRate),
	); err != nil {
		return nil, err
	}

	line.product = p.Product
	line.unit = p.Unit
	line.quantity = p.Quantity

	if err := line.checkProduct(); err != nil {
		return nil, err
	}

	return line, nil
}

// Validate ensures the line was built through a constructor.
func (l *Line) Validate() error {
	if l == nil {
		return ErrLineIsNotConstructed
	}
	return l.guard.Validate(ErrLineIsNotConstructed)
}

func (l *Line) ID() kernel.UUID            { return l.id }
func (l *Line) OrderID() kernel.UUID       { return l.orderID }
func (l *Line) Sequence() int              { return l.sequence }
func (l *Line) Type() LineType             { return l.lineType }
func (l *Line) Product() string            { return l.product }
func (l *Line) Unit() string               { return l.unit }
func (l *Line) Quantity() decimal.Decimal  { return l.quantity }
func (l *Line) UnitPrice() decimal.Decimal { return l.unitPrice }
func (l *Line) Discount() decimal.Decimal  { return l.discount }
func (l *Line) TaxRate() decimal.Decimal   { return l.taxRate }
func (l *Line) Description() string        { return l.description }
func (l *Line) MoveRecreated() bool        { return l.moveRecreated }
func (l *Line) MoveIgnored() bool          { return l.moveIgnored }

// RecName is the human readable name used in error messages.
func (l *Line) RecName() string {
	if l.product != "" {
		return fmt.Sprintf("%s (%s)", l.product, l.id)
	}
	return l.id.String()
}

// IsProductLine reports whether the line is a product line with a product.
func (l *Line) IsProductLine() bool {
	return l.lineType == LineTypeLine && l.product != ""
}

// Amount is quantity * unit price * (1 - discount), rounded to cents.
// Title and comment lines have no amount.
func (l *Line) Amount() decimal.Decimal {
	if l.lineType != LineTypeLine {
		return decimal.Zero
	}
	gross := l.quantity.Mul(l.unitPrice)
	return kernel.RoundAmount(gross.Mul(decimal.NewFromInt(1).Sub(l.discount)))
}

// TaxAmount is Amount * tax rate, rounded to cents.
func (l *Line) TaxAmount() decimal.Decimal {
	return kernel.RoundAmount(l.Amount().Mul(l.taxRate))
}

// Apply performs the base write of a line. Field permissions are checked by the
// caller; Apply only enforces the value rules.
func (l *Line) Apply(v LineValues) error {
	if err := l.Validate(); err != nil {
		return err
	}

	next := *l
	var errList []error
	if v.Type != nil {
		errList = append(errList, next.setType(*v.Type))
	}
	if v.Product != nil {
		next.product = *v.Product
	}
	if v.Unit != nil {
		next.unit = *v.Unit
	}
	if v.Quantity != nil {
		next.quantity = *v.Quantity
	}
	if v.UnitPrice != nil {
		errList = append(errList, next.setUnitPrice(*v.UnitPrice))
	}
	if v.Discount != nil {
		errList = append(errList, next.setDiscount(*v.Discount))
	}
	if v.TaxRate != nil {
		errList = append(errList, next.setTaxRate(*v.TaxRate))
	}
	if v.Description != nil {
		next.description = *v.Description
	}
	if v.MoveRecreated != nil {
		next.moveRecreated = *v.MoveRecreated
	}
	if v.MoveIgnored != nil {
		next.moveIgnored = *v.MoveIgnored
	}

	errList = append(errList, next.checkProduct())
	if err := errors.Join(errList...); err != nil {
		return err
	}

	*l = next
	return nil
}

func (l *Line) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Line) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.orderID = id
	return nil
}

func (l *Line) setType(t LineType) error {
	if err := t.Validate(); err != nil {
		return err
	}
	l.lineType = t
	return nil
}

func (l *Line) setUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unit price", fmt.Errorf("%s is negative", price))
	}
	l.unitPrice = price
	return nil
}

func (l *Line) setDiscount(discount decimal.Decimal) error {
	if discount.IsNegative() || discount.GreaterThan(decimal.NewFromInt(1)) {
		return errs.NewValueIsOutOfRangeError("discount", discount.String(), 0, 1)
	}
	l.discount = discount
	return nil
}

func (l *Line) setTaxRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("tax rate", fmt.Errorf("%s is negative", rate))
	}
	l.taxRate = rate
	return nil
}

func (l *Line) checkProduct() error {
	if l.lineType != LineTypeLine {
		return nil
	}
	if l.product == "" {
		return errs.NewValueIsRequiredError("product")
	}
	if l.unit == "" {
		return errs.NewValueIsRequiredError("unit")
	}
	return nil
}
