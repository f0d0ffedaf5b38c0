package services

import (
	"saleedit/internal/core/domain/model/sale"
	"saleedit/internal/core/domain/model/stock"
)

// FieldMirror maps an order field onto the shipment field that follows it.
type FieldMirror struct {
	Order    sale.OrderField
	Shipment stock.ShipmentField
}

// MoveMirror maps a line field onto the move field that follows it.
type MoveMirror struct {
	Line sale.LineField
	Move stock.MoveField
}

// EditPolicy holds the field lists used by the edit guards. It is built once
// and never changes; accessors return copies.
type EditPolicy struct {
	lockedAfterInvoice []sale.OrderField
	shipmentMirrors    []FieldMirror
	moveMirrors        []MoveMirror
	housekeeping       []sale.LineField
	lockedLineFields   []sale.LineField
	totalsAffecting    []sale.LineField
}

// DefaultEditPolicy returns the policy of the sale edit service.
func DefaultEditPolicy() EditPolicy {
	return EditPolicy{
		lockedAfterInvoice: []sale.OrderField{
			sale.OrderFieldDescription,
			sale.OrderFieldPaymentTerm,
			sale.OrderFieldInvoiceAddress,
			sale.OrderFieldLines,
			sale.OrderFieldPaymentType,
		},
		shipmentMirrors: []FieldMirror{
			{Order: sale.OrderFieldShipmentAddress, Shipment: stock.ShipmentFieldDeliveryAddress},
			{Order: sale.OrderFieldShipmentParty, Shipment: stock.ShipmentFieldCustomer},
		},
		moveMirrors: []MoveMirror{
			{Line: sale.LineFieldProduct, Move: stock.MoveFieldProduct},
			{Line: sale.LineFieldUnit, Move: stock.MoveFieldUOM},
			{Line: sale.LineFieldQuantity, Move: stock.MoveFieldQuantity},
			{Line: sale.LineFieldUnitPrice, Move: stock.MoveFieldUnitPrice},
		},
		housekeeping:     []sale.LineField{sale.LineFieldMoveRecreated, sale.LineFieldMoveIgnored},
		lockedLineFields: []sale.LineField{sale.LineFieldType},
		totalsAffecting:  []sale.LineField{sale.LineFieldQuantity, sale.LineFieldUnitPrice, sale.LineFieldDiscount},
	}
}

// LockedAfterInvoice lists the order fields that cannot change once the order has invoices.
func (p EditPolicy) LockedAfterInvoice() []sale.OrderField {
	return append([]sale.OrderField(nil), p.lockedAfterInvoice...)
}

// ShipmentMirrors lists the order fields copied onto outbound shipments.
func (p EditPolicy) ShipmentMirrors() []FieldMirror {
	return append([]FieldMirror(nil), p.shipmentMirrors...)
}

// MoveMirrors lists the line fields copied onto the line's move.
func (p EditPolicy) MoveMirrors() []MoveMirror {
	return append([]MoveMirror(nil), p.moveMirrors...)
}

// Housekeeping lists the line fields whose edit never triggers the line guard.
func (p EditPolicy) Housekeeping() []sale.LineField {
	return append([]sale.LineField(nil), p.housekeeping...)
}

// LockedLineFields lists the line fields that cannot change on a guarded line.
func (p EditPolicy) LockedLineFields() []sale.LineField {
	return append([]sale.LineField(nil), p.lockedLineFields...)
}

// TotalsAffecting lists the line fields whose change invalidates the order totals cache.
func (p EditPolicy) TotalsAffecting() []sale.LineField {
	return append([]sale.LineField(nil), p.totalsAffecting...)
}

// RelaxedOrderFields are the order fields writable after the draft state: the
// locked set plus the mirrored fields.
func (p EditPolicy) RelaxedOrderFields() []sale.OrderField {
	fields := p.LockedAfterInvoice()
	for _, m := range p.shipmentMirrors {
		fields = append(fields, m.Order)
	}
	return fields
}
