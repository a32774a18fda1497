package cmd

import (
	"mealroute/internal/adapters/out/postgres"
	"mealroute/internal/adapters/out/postgres/orderrepo"
	"mealroute/internal/core/application/usecases/commands"
	"mealroute/internal/core/application/usecases/queries"
	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/services"
	"mealroute/internal/core/ports"
	"mealroute/internal/pkg/clock"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      ports.Clock
	kitchen    kernel.GeoPoint
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB) (CompositionRoot, error) {
	kitchen, err := cfg.Kitchen()
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, cfg.RouteLockTimeout),
		clock:      clock.System{},
		kitchen:    kitchen,
	}, nil
}

func (c *CompositionRoot) Clock() ports.Clock {
	return c.clock
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateMarkOrderReadyCommandHandler() commands.MarkOrderReadyCommandHandler {
	return commands.NewMarkOrderReadyCommandHandler(c.orderUoWFactory(), c.clock, c.kitchen)
}

func (c *CompositionRoot) CreateStartDeliveryCommandHandler() commands.StartDeliveryCommandHandler {
	return commands.NewStartDeliveryCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	return commands.NewCompleteDeliveryCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRebuildRouteCommandHandler() commands.RebuildRouteCommandHandler {
	var f commands.RouteUoWFactory = FuncRouteUoWFactory(func() commands.RouteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRebuildRouteCommandHandler(f, services.NewRouteBuilder(), c.kitchen)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRouteQueryHandler() queries.GetRouteQueryHandler {
	return queries.NewGetRouteQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryStatsQueryHandler() queries.GetDeliveryStatsQueryHandler {
	return queries.NewGetDeliveryStatsQueryHandler(
		orderrepo.NewGormOrderRepository(c.gormDB, nil),
		services.NewDeliveryStatsAggregator(),
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncRouteUoWFactory func() commands.RouteUoW

func (f FuncRouteUoWFactory) Create() commands.RouteUoW {
	return f()
}
