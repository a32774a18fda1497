package queries

import (
	"context"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRouteQueryHandler lists Ready orders that hold a tour position, nearest
// first.
type GetRouteQueryHandler struct {
	db *gorm.DB
}

func NewGetRouteQueryHandler(db *gorm.DB) GetRouteQueryHandler {
	return GetRouteQueryHandler{db: db}
}

func (h GetRouteQueryHandler) Handle(ctx context.Context, query GetRouteQuery) ([]GetRouteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stops := make([]GetRouteQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tour_position,
			distance_km,
			gps_lat,
			gps_lng
		FROM orders
		WHERE status = ? AND tour_position IS NOT NULL
		ORDER BY tour_position
	`, int(order.Ready)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			stop     GetRouteQueryResponse
			id       uuid.UUID
			distance *float64
		)

		if err = rows.Scan(&id, &stop.Position, &distance, &stop.Lat, &stop.Lng); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		stop.OrderID = orderID

		if distance != nil {
			stop.DistanceKm = *distance
		}

		stops = append(stops, stop)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stops, nil
}
