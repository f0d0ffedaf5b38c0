package ports

import (
	"context"
)

// UnitOfWorkFactory hands out a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of one guarded edit. The guards read
// the order and its shipments and the cascade writes them back through the
// repositories returned here, so either every write lands or none does.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit fails when Begin was not called.
	Commit(ctx context.Context) error

	// Rollback after Commit returns an error that callers ignore.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	ShipmentRepository() ShipmentRepository
}
