// Package commands contains the operations that change orders, lines and
// shipments. Every handler validates its command, opens a unit of work, runs
// the guards, applies the writes in a fixed order and commits.
package commands

import (
	"context"

	"saleedit/internal/core/ports"
)

// Handlers depend on narrow views of ports.UnitOfWork.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// OrderUoW serves create, delete-lines, invoice and store-totals.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions across orders and shipments. Every guarded
	// edit uses it because an order change cascades to shipments and moves.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   shipmentRepo := uow.ShipmentRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		ShipmentRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
