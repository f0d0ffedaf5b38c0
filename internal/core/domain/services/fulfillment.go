package services

import (
	"fmt"

	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/core/domain/model/sale"
	"saleedit/internal/core/domain/model/stock"
)

// FulfillmentResult lists the shipments touched by Process.
type FulfillmentResult struct {
	Created []*stock.Shipment
	Updated []*stock.Shipment
}

// IsEmpty reports whether Process changed nothing.
func (r FulfillmentResult) IsEmpty() bool {
	return len(r.Created) == 0 && len(r.Updated) == 0
}

// Fulfillment creates the moves of order lines that have none.
//
// Business rules:
//   - Only product lines with a non-zero quantity get a move; ignored lines are skipped
//   - Positive quantities go to the open outbound shipment, which is created if
//     needed and left waiting with fresh inventory moves
//   - Negative quantities go to the draft return shipment, created if needed
//   - Lines that already have a move in any shipment are left alone
type Fulfillment struct{}

func NewFulfillment() Fulfillment {
	return Fulfillment{}
}

// Process runs fulfillment for a processing order. shipments are the existing
// shipments and returns of the order.
func (Fulfillment) Process(order *sale.Order, shipments []*stock.Shipment) (FulfillmentResult, error) {
	if err := order.Validate(); err != nil {
		return FulfillmentResult{}, err
	}

	var (
		result  FulfillmentResult
		out     *stock.Shipment
		ret     *stock.Shipment
		touched = map[*stock.Shipment]bool{}
	)

	for _, line := range order.Lines() {
		if !line.IsProductLine() || line.MoveIgnored() || line.Quantity().IsZero() {
			continue
		}
		if moves, _ := movesOfLine(line.ID(), shipments); len(moves) > 0 {
			continue
		}

		kind := stock.ShipmentKindOut
		target := &out
		if line.Quantity().IsNegative() {
			kind = stock.ShipmentKindReturn
			target = &ret
		}

		if *target == nil {
			shipment, created, err := openShipment(order, shipments, kind)
			if err != nil {
				return FulfillmentResult{}, err
			}
			if created {
				result.Created = append(result.Created, shipment)
				shipments = append(shipments, shipment)
			}
			*target = shipment
		}

		lineID := line.ID()
		move, err := stock.NewMove(stock.MoveParams{
			ID:         kernel.NewUUID(),
			Kind:       kind.LineMoveKind(),
			OriginLine: &lineID,
			ShipmentID: (*target).ID(),
			Product:    line.Product(),
			UOM:        line.Unit(),
			Quantity:   kernel.AbsQuantity(line.Quantity()),
			UnitPrice:  line.UnitPrice(),
		})
		if err != nil {
			return FulfillmentResult{}, err
		}
		if err := (*target).AddMove(move); err != nil {
			return FulfillmentResult{}, err
		}
		touched[*target] = true
	}

	if out != nil && touched[out] {
		if err := out.Wait(); err != nil {
			return FulfillmentResult{}, err
		}
	}

	for _, shipment := range []*stock.Shipment{out, ret} {
		if shipment != nil && touched[shipment] && !containsShipment(result.Created, shipment) {
			result.Updated = append(result.Updated, shipment)
		}
	}

	return result, nil
}

// openShipment returns the shipment of kind that still accepts moves, or a new one.
func openShipment(order *sale.Order, shipments []*stock.Shipment, kind stock.ShipmentKind) (*stock.Shipment, bool, error) {
	count := 0
	for _, s := range shipments {
		if s.Kind() != kind {
			continue
		}
		count++
		if s.State() == stock.ShipmentStateDraft ||
			(kind == stock.ShipmentKindOut && s.State() == stock.ShipmentStateWaiting) {
			return s, false, nil
		}
	}

	prefix := "OUT"
	if kind == stock.ShipmentKindReturn {
		prefix = "RET"
	}
	shipment, err := stock.NewShipment(kernel.NewUUID(), kind, order.ID(),
		fmt.Sprintf("%s/%s/%d", order.Number(), prefix, count+1))
	if err != nil {
		return nil, false, err
	}

	var values stock.ShipmentValues
	customer := order.ShipmentParty()
	if customer == "" {
		customer = order.Party()
	}
	values.SetString(stock.ShipmentFieldCustomer, customer)
	values.SetString(stock.ShipmentFieldDeliveryAddress, order.ShipmentAddress())
	values.SetString(stock.ShipmentFieldReference, order.Reference())
	if err := shipment.Apply(values); err != nil {
		return nil, false, err
	}
	return shipment, true, nil
}

func containsShipment(shipments []*stock.Shipment, shipment *stock.Shipment) bool {
	for _, s := range shipments {
		if s == shipment {
			return true
		}
	}
	return false
}
