// Package services provides the domain services that decide whether a sale
// order can still be edited once it has produced shipments, and what has to
// happen downstream when it can.
//
// The package includes:
//   - EditPolicy: The immutable field lists the guards work with
//   - OrderEditGuard: Checks order writes and plans the shipment mirroring
//   - LineEditGuard: Checks line writes and plans the move update and shipment cycle
//   - ShipmentAmountRefresher: Merges computed amounts into shipment writes
//   - Fulfillment: Creates the moves and shipments of lines that have none
//
// Guards never touch persistence. They receive loaded aggregates, return a plan
// and leave the writes to the command handlers, which run the plan inside a
// unit of work.
package services
