package queries

import (
	"errors"
	"time"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads a single order by id.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Location is a GPS fix as stored with the order.
type Location struct {
	Lat        float64
	Lng        float64
	CapturedAt time.Time
}

// GetOrderQueryResponse is the read model of one order.
type GetOrderQueryResponse struct {
	ID                  kernel.UUID
	Status              order.Status
	Plan                string
	PriceMinor          *int64
	CreatedAt           time.Time
	Location            *Location
	DistanceKm          *float64
	TourPosition        *int
	EstimatedDeliveryAt *time.Time
	ActualDeliveryAt    *time.Time
}

// NewGetOrderQueryResponse builds the read model from an aggregate, for
// writers that return the state they committed.
func NewGetOrderQueryResponse(o *order.Order) GetOrderQueryResponse {
	resp := GetOrderQueryResponse{
		ID:                  o.ID(),
		Status:              o.Status(),
		Plan:                o.Plan(),
		PriceMinor:          o.PriceMinor(),
		CreatedAt:           o.CreatedAt(),
		DistanceKm:          o.DistanceKm(),
		TourPosition:        o.TourPosition(),
		EstimatedDeliveryAt: o.EstimatedDeliveryAt(),
		ActualDeliveryAt:    o.ActualDeliveryAt(),
	}

	if fix := o.GPSFix(); fix != nil {
		resp.Location = &Location{
			Lat:        fix.Point().Lat(),
			Lng:        fix.Point().Lng(),
			CapturedAt: fix.CapturedAt(),
		}
	}

	return resp
}
