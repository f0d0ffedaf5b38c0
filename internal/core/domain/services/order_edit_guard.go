package services

import (
	"strings"

	"saleedit/internal/core/domain/model/sale"
	"saleedit/internal/core/domain/model/stock"
	"saleedit/internal/pkg/errs"
)

// ShipmentWrite is a planned write of one shipment.
type ShipmentWrite struct {
	Shipment *stock.Shipment
	Values   stock.ShipmentValues
}

// OrderEditPlan lists what has to happen around the base write of an order.
type OrderEditPlan struct {
	// ShipmentWrites mirror order fields on the outbound shipments
	ShipmentWrites []ShipmentWrite

	// Reprocess is set when new lines need moves
	Reprocess bool

	// LinesChanged is set when the totals must be recomputed
	LinesChanged bool
}

// OrderEditGuard checks writes on processing orders.
//
// Rules, checked in this order:
//   - Line deletion is rejected (delete-not-allowed)
//   - A line change needs at most one outbound shipment and one return (partially-shipped)
//   - A line change needs every move of those shipments to be draft (move-not-editable)
//   - Fields locked after invoicing cannot change once the order has invoices (field-locked-post-invoice)
//
// Orders in any other state are not guarded and get an empty plan.
type OrderEditGuard struct {
	policy EditPolicy
}

func NewOrderEditGuard(policy EditPolicy) OrderEditGuard {
	return OrderEditGuard{policy: policy}
}

// Check validates values against order and returns the side effects to apply.
// shipments are all the shipments and returns linked to the order.
func (g OrderEditGuard) Check(order *sale.Order, shipments []*stock.Shipment, values sale.OrderValues) (OrderEditPlan, error) {
	if err := order.Validate(); err != nil {
		return OrderEditPlan{}, err
	}
	if order.State() != sale.StateProcessing {
		return OrderEditPlan{}, nil
	}

	if values.DeletesLines() {
		return OrderEditPlan{}, errs.NewEditNotAllowedErrorWithDetail(
			errs.KindDeleteNotAllowed, order.RecName(), "lines of a processing order cannot be deleted")
	}

	linesChanged := values.Lines != nil
	if linesChanged {
		if err := g.checkShipments(order, shipments); err != nil {
			return OrderEditPlan{}, err
		}
	}

	if order.HasInvoices() {
		if locked := g.lockedFields(values); len(locked) > 0 {
			return OrderEditPlan{}, errs.NewEditNotAllowedErrorWithDetail(
				errs.KindAlreadyInvoiced, order.RecName(), "already invoiced: "+strings.Join(locked, ", "))
		}
	}

	return OrderEditPlan{
		ShipmentWrites: g.mirror(shipments, values),
		Reprocess:      values.CreatesLines(),
		LinesChanged:   linesChanged,
	}, nil
}

func (g OrderEditGuard) checkShipments(order *sale.Order, shipments []*stock.Shipment) error {
	outs := filterShipments(shipments, stock.ShipmentKindOut)
	returns := filterShipments(shipments, stock.ShipmentKindReturn)
	if len(outs) > 1 || len(returns) > 1 {
		return errs.NewEditNotAllowedError(errs.KindPartiallyShipped, order.RecName())
	}

	for _, shipment := range shipments {
		for _, move := range shipment.AllMoves() {
			if !move.IsDraft() {
				return errs.NewEditNotAllowedErrorWithDetail(
					errs.KindMoveNotEditable, move.RecName(), string(move.State()))
			}
		}
	}
	return nil
}

func (g OrderEditGuard) lockedFields(values sale.OrderValues) []string {
	var locked []string
	for _, f := range values.Fields() {
		if sale.ContainsOrderField(g.policy.lockedAfterInvoice, f) {
			locked = append(locked, string(f))
		}
	}
	return locked
}

func (g OrderEditGuard) mirror(shipments []*stock.Shipment, values sale.OrderValues) []ShipmentWrite {
	var mirrored stock.ShipmentValues
	for _, m := range g.policy.shipmentMirrors {
		if value, ok := values.StringValue(m.Order); ok && value != "" {
			mirrored.SetString(m.Shipment, value)
		}
	}
	if mirrored.IsEmpty() {
		return nil
	}

	var writes []ShipmentWrite
	for _, shipment := range filterShipments(shipments, stock.ShipmentKindOut) {
		writes = append(writes, ShipmentWrite{Shipment: shipment, Values: mirrored})
	}
	return writes
}

// ValidateInvoiceMethod checks that a processing order invoiced on order has
// a single outbound shipment. Manual and on-shipment orders can have several.
func ValidateInvoiceMethod(order *sale.Order, shipments []*stock.Shipment) error {
	if order.State() != sale.StateProcessing {
		return nil
	}
	switch order.InvoiceMethod() {
	case sale.InvoiceMethodShipment, sale.InvoiceMethodManual:
		return nil
	case sale.InvoiceMethodOrder:
	}
	if len(filterShipments(shipments, stock.ShipmentKindOut)) > 1 {
		return errs.NewEditNotAllowedErrorWithDetail(
			errs.KindInvoiceMethodMismatch, order.RecName(), "invoice method is not on shipment")
	}
	return nil
}

func filterShipments(shipments []*stock.Shipment, kind stock.ShipmentKind) []*stock.Shipment {
	var filtered []*stock.Shipment
	for _, s := range shipments {
		if s.Kind() == kind {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
