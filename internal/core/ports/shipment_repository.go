package ports

import (
	"context"

	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/core/domain/model/stock"
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
// A shipment is stored together with its line moves and inventory moves.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate.
	Add(ctx context.Context, aggregate *stock.Shipment) error

	// Update persists changes to an existing shipment. Inventory moves are
	// replaced as a whole.
	Update(ctx context.Context, aggregate *stock.Shipment) error

	// Get retrieves a shipment aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*stock.Shipment, error)

	// GetByOrder retrieves every shipment and return of an order.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*stock.Shipment, error)
}
