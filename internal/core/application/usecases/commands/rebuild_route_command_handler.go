package commands

import (
	"context"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/core/domain/services"
)

// RebuildRouteCommandHandler recomputes and persists the tour.
//
// The whole rebuild runs in one transaction that first takes the route lock
// and then locks every Ready row it reads. Concurrent rebuilds therefore run
// one after another, and a transition on a Ready order waits for the rebuild
// (or the rebuild waits for it). Persisted positions always come from exactly
// one rebuild.
type RebuildRouteCommandHandler struct {
	uowFactory RouteUoWFactory
	builder    services.RouteBuilder
	kitchen    kernel.GeoPoint
}

func NewRebuildRouteCommandHandler(
	uowFactory RouteUoWFactory,
	builder services.RouteBuilder,
	kitchen kernel.GeoPoint,
) RebuildRouteCommandHandler {
	return RebuildRouteCommandHandler{
		uowFactory: uowFactory,
		builder:    builder,
		kitchen:    kitchen,
	}
}

// Handle returns the committed tour in position order. A
// ports.ErrRouteRebuildConflict may be retried as is.
func (h *RebuildRouteCommandHandler) Handle(ctx context.Context, cmd RebuildRouteCommand) ([]services.TourStop, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.LockRoute(ctx); err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	orders, err := orderRepo.GetAllInStatusForUpdate(ctx, order.Ready)
	if err != nil {
		return nil, err
	}

	stops, err := h.builder.Build(orders, h.kitchen)
	if err != nil {
		return nil, err
	}

	for _, o := range orders {
		if err = orderRepo.Update(ctx, o); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return stops, nil
}
