// Package ports defines the repository and unit of work contracts of the sale
// edit service. Adapters implement them; command and query handlers depend on
// them only.
package ports

import (
	"context"

	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/core/domain/model/sale"
)

// OrderRepository defines the persistence contract for order aggregates.
// An order is stored together with its lines, invoices and cached totals.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *sale.Order) error

	// Update persists changes to an existing order aggregate. Lines missing
	// from the aggregate are deleted, new ones are inserted.
	Update(ctx context.Context, aggregate *sale.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*sale.Order, error)

	// GetByLineIDs retrieves the orders owning the given lines, each once.
	// Returns ObjectNotFoundError if a line does not exist.
	GetByLineIDs(ctx context.Context, lineIDs []kernel.UUID) ([]*sale.Order, error)

	// ListWithoutTotals retrieves the orders in one of states whose totals
	// cache is empty, at most limit of them.
	ListWithoutTotals(ctx context.Context, states []sale.State, limit int) ([]*sale.Order, error)
}
