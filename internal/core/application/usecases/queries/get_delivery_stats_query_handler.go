package queries

import (
	"context"
	"time"

	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/core/domain/services"
)

// OrderReader is the read-only slice of ports.OrderRepository the stats
// query needs.
type OrderReader interface {
	GetAllInStatus(ctx context.Context, statuses ...order.Status) ([]*order.Order, error)
	GetDeliveredBetween(ctx context.Context, from, to time.Time) ([]*order.Order, error)
}

// GetDeliveryStatsQueryHandler loads the active orders and today's
// deliveries and runs the aggregator over them. Nothing is cached.
type GetDeliveryStatsQueryHandler struct {
	reader     OrderReader
	aggregator services.DeliveryStatsAggregator
}

func NewGetDeliveryStatsQueryHandler(
	reader OrderReader,
	aggregator services.DeliveryStatsAggregator,
) GetDeliveryStatsQueryHandler {
	return GetDeliveryStatsQueryHandler{reader: reader, aggregator: aggregator}
}

func (h GetDeliveryStatsQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryStatsQuery,
) (services.DeliveryStats, error) {
	if err := query.Validate(); err != nil {
		return services.DeliveryStats{}, err
	}

	active, err := h.reader.GetAllInStatus(ctx, order.Ready, order.OutForDelivery)
	if err != nil {
		return services.DeliveryStats{}, err
	}

	now := query.Now()
	dayStart, dayEnd := services.DayWindow(now)

	delivered, err := h.reader.GetDeliveredBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return services.DeliveryStats{}, err
	}

	return h.aggregator.Aggregate(append(active, delivered...), now), nil
}
