// Package orderrepo persists the order aggregate with GORM and maps between
// the domain model and the orders table.
package orderrepo

import (
	"time"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is one row of the orders table. The schema itself is owned by the
// migrations package; the gorm tags describe it for reads and writes only.
type OrderDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status              int       `gorm:"type:smallint;not null"`
	Plan                string    `gorm:"not null;default:''"`
	PriceMinor          *int64
	GPS                 GPSFixDTO `gorm:"embedded;embeddedPrefix:gps_"`
	DistanceKm          *float64
	TourPosition        *int
	EstimatedDeliveryAt *time.Time
	ActualDeliveryAt    *time.Time
	CreatedAt           time.Time `gorm:"not null"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// GPSFixDTO holds the readiness fix. All three columns are NULL together.
type GPSFixDTO struct {
	Lat        *float64
	Lng        *float64
	CapturedAt *time.Time
}

func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:                  o.ID().Bytes(),
		Status:              int(o.Status()),
		Plan:                o.Plan(),
		PriceMinor:          o.PriceMinor(),
		DistanceKm:          o.DistanceKm(),
		TourPosition:        o.TourPosition(),
		EstimatedDeliveryAt: o.EstimatedDeliveryAt(),
		ActualDeliveryAt:    o.ActualDeliveryAt(),
		CreatedAt:           o.CreatedAt(),
	}

	if fix := o.GPSFix(); fix != nil {
		lat, lng, at := fix.Point().Lat(), fix.Point().Lng(), fix.CapturedAt()
		dto.GPS = GPSFixDTO{Lat: &lat, Lng: &lng, CapturedAt: &at}
	}

	return dto
}

// toDomain rebuilds the aggregate through order.RestoreOrder, so a row that
// breaks an invariant is reported instead of loaded.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var fix *kernel.GPSFix
	if dto.GPS.Lat != nil && dto.GPS.Lng != nil && dto.GPS.CapturedAt != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.GPS.Lat, *dto.GPS.Lng)
		if pointErr != nil {
			return nil, pointErr
		}

		restored, fixErr := kernel.NewGPSFix(point, *dto.GPS.CapturedAt)
		if fixErr != nil {
			return nil, fixErr
		}
		fix = &restored
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                  id,
		Status:              order.Status(dto.Status),
		Plan:                dto.Plan,
		PriceMinor:          dto.PriceMinor,
		CreatedAt:           dto.CreatedAt,
		GPSFix:              fix,
		DistanceKm:          dto.DistanceKm,
		TourPosition:        dto.TourPosition,
		EstimatedDeliveryAt: dto.EstimatedDeliveryAt,
		ActualDeliveryAt:    dto.ActualDeliveryAt,
	})
}

func toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
