package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order row.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns *errs.ObjectNotFoundError when the order does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			plan,
			price_minor,
			created_at,
			gps_lat,
			gps_lng,
			gps_captured_at,
			distance_km,
			tour_position,
			estimated_delivery_at,
			actual_delivery_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		resp       GetOrderQueryResponse
		id         uuid.UUID
		status     int
		lat, lng   *float64
		capturedAt *time.Time
		position   *int64
	)

	err := row.Scan(
		&id,
		&status,
		&resp.Plan,
		&resp.PriceMinor,
		&resp.CreatedAt,
		&lat,
		&lng,
		&capturedAt,
		&resp.DistanceKm,
		&position,
		&resp.EstimatedDeliveryAt,
		&resp.ActualDeliveryAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.ID = orderID

	resp.Status = order.Status(status)
	if err = resp.Status.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	if lat != nil && lng != nil && capturedAt != nil {
		resp.Location = &Location{Lat: *lat, Lng: *lng, CapturedAt: *capturedAt}
	}
	if position != nil {
		p := int(*position)
		resp.TourPosition = &p
	}

	return resp, nil
}
