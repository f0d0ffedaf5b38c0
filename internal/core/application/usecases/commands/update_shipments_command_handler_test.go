package commands_test

import (
	"context"
	"testing"

	"saleedit/internal/core/application/usecases/commands"
	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/core/domain/model/sale"
	"saleedit/internal/core/domain/model/stock"
	"saleedit/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateShipmentsCommandHandler_Handle(t *testing.T) {
	tests := []struct {
		name        string
		flag        bool
		wantAmounts bool
	}{
		{name: "should refresh amounts when requested", flag: true, wantAmounts: true},
		{name: "should keep amounts without the flag", flag: false, wantAmounts: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.flag {
				ctx = services.WithUpdateAmounts(ctx)
			}
			order, shipments := processedOrder(t, sale.InvoiceMethodOrder)
			shipment := shipments[0]
			cmd, err := commands.NewUpdateShipmentsCommand([]commands.ShipmentWrite{{
				IDs:    []kernel.UUID{shipment.ID()},
				Values: stock.ShipmentValues{Reference: strPtr("PO-7")},
			}})
			require.NoError(t, err)

			orders := new(MockOrderRepository)
			shipmentRepo := new(MockShipmentRepository)
			uow, factory, _ := newUoW(orders, shipmentRepo)
			mock.InOrder(
				uow.On("Begin", ctx).Return(nil).Once(),
				shipmentRepo.On("Get", ctx, shipment.ID()).Return(shipment, nil).Once(),
				orders.On("Get", ctx, order.ID()).Return(order, nil).Once(),
				shipmentRepo.On("Update", ctx, shipment).Return(nil).Once(),
				uow.On("Commit", ctx).Return(nil).Once(),
				uow.On("Rollback", ctx).Return(nil).Once(),
			)

			h := commands.NewUpdateShipmentsCommandHandler(factory,
				services.NewShipmentAmountRefresher(services.LineAmountCalculator{}))
			err = h.Handle(ctx, cmd)

			require.NoError(t, err)
			assert.Equal(t, "PO-7", shipment.Reference())
			if tt.wantAmounts {
				require.NotNil(t, shipment.Amounts())
				assert.Equal(t, "50", shipment.Amounts().Untaxed.String())
			} else {
				assert.Nil(t, shipment.Amounts())
			}
			uow.AssertExpectations(t)
		})
	}
}
