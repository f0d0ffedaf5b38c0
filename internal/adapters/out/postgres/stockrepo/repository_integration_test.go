package stockrepo_test

import (
	"context"
	"testing"
	"time"

	"saleedit/internal/adapters/out/postgres/stockrepo"
	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/core/domain/model/stock"
	"saleedit/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type ShipmentRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *stockrepo.GormShipmentRepository
	tracker    *MockAggregateTracker
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&stockrepo.ShipmentDTO{}, &stockrepo.MoveDTO{}))
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE stock_shipments, stock_moves").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return()
	suite.repository = stockrepo.NewGormShipmentRepository(suite.db, suite.tracker)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAdd_RoundTripsMovesAndInventoryMoves() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	shipment, lineID := suite.waitingShipment(orderID, "SO-1/OUT/1")

	suite.Require().NoError(suite.repository.Add(ctx, shipment))

	got, err := suite.repository.Get(ctx, shipment.ID())
	suite.Require().NoError(err)
	suite.Equal(stock.ShipmentKindOut, got.Kind())
	suite.Equal(stock.ShipmentStateWaiting, got.State())
	suite.Equal("Main street 1", got.DeliveryAddress())
	suite.Nil(got.Amounts())
	suite.Require().Len(got.Moves(), 1)
	suite.True(got.Moves()[0].IsOf(lineID))
	suite.True(got.Moves()[0].Quantity().Equal(decimal.NewFromInt(5)))
	suite.Require().Len(got.InventoryMoves(), 1)
	suite.Nil(got.InventoryMoves()[0].OriginLine())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_ReplacesMovesAndStoresAmounts() {
	ctx := context.Background()
	shipment, _ := suite.waitingShipment(kernel.NewUUID(), "SO-2/OUT/1")
	suite.Require().NoError(suite.repository.Add(ctx, shipment))

	suite.Require().NoError(shipment.Draft())
	suite.Require().NoError(shipment.Apply(stock.ShipmentValues{
		Reference: strPtr("PO-9"),
		Amounts: &stock.Amounts{
			Untaxed: decimal.NewFromInt(50),
			Tax:     decimal.NewFromInt(10),
			Total:   decimal.NewFromInt(60),
		},
	}))
	suite.Require().NoError(suite.repository.Update(ctx, shipment))

	got, err := suite.repository.Get(ctx, shipment.ID())
	suite.Require().NoError(err)
	suite.Equal(stock.ShipmentStateDraft, got.State())
	suite.Equal("PO-9", got.Reference())
	suite.Empty(got.InventoryMoves())
	suite.Require().NotNil(got.Amounts())
	suite.True(got.Amounts().Total.Equal(decimal.NewFromInt(60)))

	var moves int64
	suite.Require().NoError(suite.db.Model(&stockrepo.MoveDTO{}).Count(&moves).Error)
	suite.Equal(int64(1), moves)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGetByOrder_OrdersByNumber() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	second, _ := suite.waitingShipment(orderID, "SO-3/OUT/2")
	first, _ := suite.waitingShipment(orderID, "SO-3/OUT/1")
	unrelated, _ := suite.waitingShipment(kernel.NewUUID(), "SO-4/OUT/1")
	for _, s := range []*stock.Shipment{second, first, unrelated} {
		suite.Require().NoError(suite.repository.Add(ctx, s))
	}

	got, err := suite.repository.GetByOrder(ctx, orderID)

	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.Equal(first.ID(), got[0].ID())
	suite.Equal(second.ID(), got[1].ID())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) waitingShipment(orderID kernel.UUID, number string) (*stock.Shipment, kernel.UUID) {
	shipment, err := stock.NewShipment(kernel.NewUUID(), stock.ShipmentKindOut, orderID, number)
	suite.Require().NoError(err)
	suite.Require().NoError(shipment.Apply(stock.ShipmentValues{DeliveryAddress: strPtr("Main street 1")}))

	lineID := kernel.NewUUID()
	move, err := stock.NewMove(stock.MoveParams{
		ID:         kernel.NewUUID(),
		Kind:       stock.MoveKindOutgoing,
		OriginLine: &lineID,
		ShipmentID: shipment.ID(),
		Product:    "widget",
		UOM:        "unit",
		Quantity:   decimal.NewFromInt(5),
		UnitPrice:  decimal.NewFromInt(10),
	})
	suite.Require().NoError(err)
	suite.Require().NoError(shipment.AddMove(move))
	suite.Require().NoError(shipment.Wait())
	return shipment, lineID
}

func strPtr(s string) *string { return &s }

func TestShipmentRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ShipmentRepositoryIntegrationTestSuite))
}
