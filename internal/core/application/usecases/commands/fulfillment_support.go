package commands

import (
	"context"

	"saleedit/internal/core/domain/services"
	"saleedit/internal/core/ports"
)

func saveFulfillment(ctx context.Context, repo ports.ShipmentRepository, result services.FulfillmentResult) error {
	for _, shipment := range result.Created {
		if err := repo.Add(ctx, shipment); err != nil {
			return err
		}
	}
	for _, shipment := range result.Updated {
		if err := repo.Update(ctx, shipment); err != nil {
			return err
		}
	}
	return nil
}
