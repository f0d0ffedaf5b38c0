package commands_test

import (
	"context"
	"testing"

	"saleedit/internal/core/application/usecases/commands"
	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/core/domain/model/sale"
	"saleedit/internal/core/domain/model/stock"
	"saleedit/internal/core/domain/services"
	"saleedit/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *sale.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *sale.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*sale.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sale.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByLineIDs(ctx context.Context, ids []kernel.UUID) ([]*sale.Order, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sale.Order), args.Error(1)
}

func (m *MockOrderRepository) ListWithoutTotals(ctx context.Context, states []sale.State, limit int) ([]*sale.Order, error) {
	args := m.Called(ctx, states, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sale.Order), args.Error(1)
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *stock.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s *stock.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*stock.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*stock.Shipment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*stock.Shipment), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

// newUoW wires a MockUoW returning the given repositories any number of times.
func newUoW(orders *MockOrderRepository, shipments *MockShipmentRepository) (*MockUoW, *MockUoWFactory, *MockOrderUoWFactory) {
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orders).Maybe()
	uow.On("ShipmentRepository").Return(shipments).Maybe()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	orderFactory := new(MockOrderUoWFactory)
	orderFactory.On("Create").Return(uow).Once()

	return uow, factory, orderFactory
}

func lineParams(qty int64) sale.NewLineParams {
	return sale.NewLineParams{
		Type:      sale.LineTypeLine,
		Product:   "widget",
		Unit:      "unit",
		Quantity:  decimal.NewFromInt(qty),
		UnitPrice: decimal.NewFromInt(10),
		TaxRate:   decimal.RequireFromString("0.2"),
	}
}

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func strPtr(s string) *string { return &s }

// processedOrder returns a processing order with one line of quantity 5 and
// the waiting outbound shipment fulfilling it.
func processedOrder(t *testing.T, method sale.InvoiceMethod) (*sale.Order, []*stock.Shipment) {
	t.Helper()

	o, err := sale.NewOrder(kernel.NewUUID(), "SO-1", "ACME", method)
	require.NoError(t, err)
	_, err = o.AddLine(lineParams(5))
	require.NoError(t, err)
	require.NoError(t, o.Quote())
	require.NoError(t, o.Confirm())
	require.NoError(t, o.Process())

	result, err := services.NewFulfillment().Process(o, nil)
	require.NoError(t, err)
	return o, result.Created
}
