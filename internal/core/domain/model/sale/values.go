package sale

import (
	"saleedit/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// OrderValues is the change set of an order write. A nil field is left untouched.
type OrderValues struct {
	Description     *string
	Reference       *string
	PaymentTerm     *string
	PaymentType     *string
	InvoiceAddress  *string
	ShipmentAddress *string
	ShipmentParty   *string
	Lines           *LineActions
}

// LineActions describes changes to the line collection of an order.
type LineActions struct {
	Create []NewLineParams
	Delete []kernel.UUID
}

// NewLineParams carries the values of a line to create.
type NewLineParams struct {
	Type        LineType
	Product     string
	Unit        string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	TaxRate     decimal.Decimal
	Description string
}

// Fields lists the fields set in v, in declaration order.
func (v OrderValues) Fields() []OrderField {
	var fields []OrderField
	add := func(set bool, f OrderField) {
		if set {
			fields = append(fields, f)
		}
	}

	add(v.Description != nil, OrderFieldDescription)
	add(v.Reference != nil, OrderFieldReference)
	add(v.PaymentTerm != nil, OrderFieldPaymentTerm)
	add(v.PaymentType != nil, OrderFieldPaymentType)
	add(v.InvoiceAddress != nil, OrderFieldInvoiceAddress)
	add(v.ShipmentAddress != nil, OrderFieldShipmentAddress)
	add(v.ShipmentParty != nil, OrderFieldShipmentParty)
	add(v.Lines != nil, OrderFieldLines)

	return fields
}

// IsEmpty reports whether v changes nothing.
func (v OrderValues) IsEmpty() bool {
	return len(v.Fields()) == 0
}

// StringValue returns the value of a string field and whether it is set.
// OrderFieldLines is not a string field and always reports false.
func (v OrderValues) StringValue(f OrderField) (string, bool) {
	var p *string
	switch f {
	case OrderFieldDescription:
		p = v.Description
	case OrderFieldReference:
		p = v.Reference
	case OrderFieldPaymentTerm:
		p = v.PaymentTerm
	case OrderFieldPaymentType:
		p = v.PaymentType
	case OrderFieldInvoiceAddress:
		p = v.InvoiceAddress
	case OrderFieldShipmentAddress:
		p = v.ShipmentAddress
	case OrderFieldShipmentParty:
		p = v.ShipmentParty
	case OrderFieldLines:
	}
	if p == nil {
		return "", false
	}
	return *p, true
}

// CreatesLines reports whether v adds lines.
func (v OrderValues) CreatesLines() bool {
	return v.Lines != nil && len(v.Lines.Create) > 0
}

// DeletesLines reports whether v removes lines.
func (v OrderValues) DeletesLines() bool {
	return v.Lines != nil && len(v.Lines.Delete) > 0
}

// LineValues is the change set of a line write. A nil field is left untouched.
type LineValues struct {
	Type          *LineType
	Product       *string
	Unit          *string
	Quantity      *decimal.Decimal
	UnitPrice     *decimal.Decimal
	Discount      *decimal.Decimal
	TaxRate       *decimal.Decimal
	Description   *string
	MoveRecreated *bool
	MoveIgnored   *bool
}

// Fields lists the fields set in v, in declaration order.
func (v LineValues) Fields() []LineField {
	var fields []LineField
	add := func(set bool, f LineField) {
		if set {
			fields = append(fields, f)
		}
	}

	add(v.Type != nil, LineFieldType)
	add(v.Product != nil, LineFieldProduct)
	add(v.Unit != nil, LineFieldUnit)
	add(v.Quantity != nil, LineFieldQuantity)
	add(v.UnitPrice != nil, LineFieldUnitPrice)
	add(v.Discount != nil, LineFieldDiscount)
	add(v.TaxRate != nil, LineFieldTaxRate)
	add(v.Description != nil, LineFieldDescription)
	add(v.MoveRecreated != nil, LineFieldMoveRecreated)
	add(v.MoveIgnored != nil, LineFieldMoveIgnored)

	return fields
}

// Has reports whether f is set in v.
func (v LineValues) Has(f LineField) bool {
	return ContainsLineField(v.Fields(), f)
}

// HasAny reports whether at least one of fields is set in v.
func (v LineValues) HasAny(fields ...LineField) bool {
	for _, f := range fields {
		if v.Has(f) {
			return true
		}
	}
	return false
}

// TouchesOnly reports whether every field set in v belongs to allowed.
// An empty change set touches nothing and reports true.
func (v LineValues) TouchesOnly(allowed []LineField) bool {
	for _, f := range v.Fields() {
		if !ContainsLineField(allowed, f) {
			return false
		}
	}
	return true
}
