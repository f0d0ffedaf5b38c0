package cmd

import (
	httpin "saleedit/internal/adapters/in/http"
	"saleedit/internal/adapters/out/postgres"
	"saleedit/internal/core/application/usecases/commands"
	"saleedit/internal/core/application/usecases/queries"
	"saleedit/internal/core/domain/services"
	"saleedit/internal/jobs"
	"saleedit/internal/pkg/logger"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	log        *logger.Logger
	uowFactory postgres.GormUnitOfWorkFactory

	policy      services.EditPolicy
	refresher   services.ShipmentAmountRefresher
	fulfillment services.Fulfillment
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, log *logger.Logger) CompositionRoot {
	return CompositionRoot{
		cfg:         cfg,
		gormDB:      gormDB,
		log:         log,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		policy:      services.DefaultEditPolicy(),
		refresher:   services.NewShipmentAmountRefresher(services.LineAmountCalculator{}),
		fulfillment: services.NewFulfillment(),
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateOrdersCommandHandler() commands.UpdateOrdersCommandHandler {
	return commands.NewUpdateOrdersCommandHandler(
		c.uoWFactory(), c.policy, c.refresher, c.fulfillment, c.log.Component("update_orders"))
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(
		c.uoWFactory(), c.fulfillment, c.log.Component("transition_order"))
}

func (c *CompositionRoot) CreateInvoiceOrderCommandHandler() commands.InvoiceOrderCommandHandler {
	return commands.NewInvoiceOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateLinesCommandHandler() commands.UpdateLinesCommandHandler {
	return commands.NewUpdateLinesCommandHandler(c.uoWFactory(), c.policy, c.log.Component("update_lines"))
}

func (c *CompositionRoot) CreateDeleteLinesCommandHandler() commands.DeleteLinesCommandHandler {
	return commands.NewDeleteLinesCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateShipmentsCommandHandler() commands.UpdateShipmentsCommandHandler {
	return commands.NewUpdateShipmentsCommandHandler(c.uoWFactory(), c.refresher)
}

func (c *CompositionRoot) CreateTransitionShipmentCommandHandler() commands.TransitionShipmentCommandHandler {
	return commands.NewTransitionShipmentCommandHandler(c.uoWFactory())
}

func (c *CompositionRoot) CreateStoreTotalsCommandHandler() commands.StoreTotalsCommandHandler {
	return commands.NewStoreTotalsCommandHandler(c.orderUoWFactory(), c.log.Component("store_totals"))
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateStoreTotalsCommandHandler(), jobs.Config{
		TotalsSchedule:  c.cfg.TotalsCacheSchedule,
		TotalsBatchSize: c.cfg.TotalsCacheBatchSize,
	}, c.log)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:        c.CreateCreateOrderCommandHandler(),
		UpdateOrders:       c.CreateUpdateOrdersCommandHandler(),
		TransitionOrder:    c.CreateTransitionOrderCommandHandler(),
		InvoiceOrder:       c.CreateInvoiceOrderCommandHandler(),
		UpdateLines:        c.CreateUpdateLinesCommandHandler(),
		DeleteLines:        c.CreateDeleteLinesCommandHandler(),
		UpdateShipments:    c.CreateUpdateShipmentsCommandHandler(),
		TransitionShipment: c.CreateTransitionShipmentCommandHandler(),
		GetOrder:           c.CreateGetOrderQueryHandler(),
	}, c.cfg.ShipmentUpdateAmounts, c.log)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
