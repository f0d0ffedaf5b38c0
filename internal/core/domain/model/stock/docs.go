// Package stock models the downstream records an order produces once it is
// processed: shipments and their stock moves.
//
// The package includes:
//   - Shipment: An outbound shipment (kind out) or a shipment return (kind return).
//     It is the aggregate root for its moves.
//   - Move: A stock move. Line moves point back to the order line they fulfil;
//     inventory moves are generated from the outgoing moves when an outbound
//     shipment waits.
//   - ShipmentState, MoveState: lifecycle states
//   - ShipmentValues, MoveValues: change sets
//
// A move can only be changed while it is draft. Moves follow the state of their
// shipment.
package stock
