package sale

// OrderField names a writable field of an order.
type OrderField string

const (
	OrderFieldDescription     OrderField = "description"
	OrderFieldReference       OrderField = "reference"
	OrderFieldPaymentTerm     OrderField = "payment_term"
	OrderFieldPaymentType     OrderField = "payment_type"
	OrderFieldInvoiceAddress  OrderField = "invoice_address"
	OrderFieldShipmentAddress OrderField = "shipment_address"
	OrderFieldShipmentParty   OrderField = "shipment_party"
	OrderFieldLines           OrderField = "lines"
)

// LineField names a writable field of a line.
type LineField string

const (
	LineFieldType          LineField = "type"
	LineFieldProduct       LineField = "product"
	LineFieldUnit          LineField = "unit"
	LineFieldQuantity      LineField = "quantity"
	LineFieldUnitPrice     LineField = "unit_price"
	LineFieldDiscount      LineField = "discount"
	LineFieldTaxRate       LineField = "tax_rate"
	LineFieldDescription   LineField = "description"
	LineFieldMoveRecreated LineField = "move_recreated"
	LineFieldMoveIgnored   LineField = "move_ignored"
)

// ContainsOrderField reports whether f is in fields.
func ContainsOrderField(fields []OrderField, f OrderField) bool {
	for _, field := range fields {
		if field == f {
			return true
		}
	}
	return false
}

// ContainsLineField reports whether f is in fields.
func ContainsLineField(fields []LineField, f LineField) bool {
	for _, field := range fields {
		if field == f {
			return true
		}
	}
	return false
}
