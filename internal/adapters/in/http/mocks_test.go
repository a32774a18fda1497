package http_test

import (
	"context"

	"mealroute/internal/core/application/usecases/commands"
	"mealroute/internal/core/application/usecases/queries"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/core/domain/services"

	"github.com/stretchr/testify/mock"
)

type MockCommandHandler[C any] struct {
	mock.Mock
}

func (m *MockCommandHandler[C]) Handle(ctx context.Context, cmd C) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockTransitionHandler[C any] struct {
	mock.Mock
}

func (m *MockTransitionHandler[C]) Handle(ctx context.Context, cmd C) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockRebuildRouteHandler struct {
	mock.Mock
}

func (m *MockRebuildRouteHandler) Handle(ctx context.Context, cmd commands.RebuildRouteCommand) ([]services.TourStop, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.TourStop), args.Error(1)
}

type MockGetOrderHandler struct {
	mock.Mock
}

func (m *MockGetOrderHandler) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetOrderQueryResponse), args.Error(1)
}

type MockGetRouteHandler struct {
	mock.Mock
}

func (m *MockGetRouteHandler) Handle(ctx context.Context, query queries.GetRouteQuery) ([]queries.GetRouteQueryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.GetRouteQueryResponse), args.Error(1)
}

type MockGetDeliveryStatsHandler struct {
	mock.Mock
}

func (m *MockGetDeliveryStatsHandler) Handle(
	ctx context.Context,
	query queries.GetDeliveryStatsQuery,
) (services.DeliveryStats, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(services.DeliveryStats), args.Error(1)
}
