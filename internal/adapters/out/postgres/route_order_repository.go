package postgres

import (
	"context"
	"time"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/core/ports"
)

// routeOrderRepository is handed out while the route lock is held. It maps
// lock and serialization failures to ports.ErrRouteRebuildConflict.
type routeOrderRepository struct {
	next ports.OrderRepository
}

func (r routeOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	return mapRouteError(r.next.Add(ctx, aggregate))
}

func (r routeOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	return mapRouteError(r.next.Update(ctx, aggregate))
}

func (r routeOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	o, err := r.next.Get(ctx, id)
	return o, mapRouteError(err)
}

func (r routeOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	o, err := r.next.GetForUpdate(ctx, id)
	return o, mapRouteError(err)
}

func (r routeOrderRepository) GetAllInStatus(ctx context.Context, statuses ...order.Status) ([]*order.Order, error) {
	orders, err := r.next.GetAllInStatus(ctx, statuses...)
	return orders, mapRouteError(err)
}

func (r routeOrderRepository) GetAllInStatusForUpdate(
	ctx context.Context,
	statuses ...order.Status,
) ([]*order.Order, error) {
	orders, err := r.next.GetAllInStatusForUpdate(ctx, statuses...)
	return orders, mapRouteError(err)
}

func (r routeOrderRepository) GetDeliveredBetween(ctx context.Context, from, to time.Time) ([]*order.Order, error) {
	orders, err := r.next.GetDeliveredBetween(ctx, from, to)
	return orders, mapRouteError(err)
}
