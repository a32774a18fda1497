// Package servers holds the wire models and the echo routing for the
// operations in api/openapi.yml. Names follow oapi-codegen conventions.
package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for OrderStatus.
const (
	PENDING        OrderStatus = "PENDING"
	CONFIRMED      OrderStatus = "CONFIRMED"
	READY          OrderStatus = "READY"
	OUTFORDELIVERY OrderStatus = "OUT_FOR_DELIVERY"
	DELIVERED      OrderStatus = "DELIVERED"
	CANCELLED      OrderStatus = "CANCELLED"
)

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	Id         *openapi_types.UUID `json:"id,omitempty"`
	Plan       *string             `json:"plan,omitempty"`
	PriceMinor *int64              `json:"priceMinor,omitempty"`
}

// OrderCreated defines model for OrderCreated.
type OrderCreated struct {
	Id openapi_types.UUID `json:"id"`
}

// ConfirmOrder defines model for ConfirmOrder.
type ConfirmOrder struct {
	EstimatedDeliveryAt *time.Time `json:"estimatedDeliveryAt,omitempty"`
}

// MarkReady defines model for MarkReady.
type MarkReady struct {
	CapturedAt *time.Time `json:"capturedAt,omitempty"`
	Lat        float64    `json:"lat"`
	Lng        float64    `json:"lng"`
}

// Location defines model for Location.
type Location struct {
	CapturedAt time.Time `json:"capturedAt"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
}

// OrderStatus defines model for OrderStatus.
type OrderStatus string

// Order defines model for Order.
type Order struct {
	ActualDeliveryAt    *time.Time         `json:"actualDeliveryAt,omitempty"`
	CreatedAt           time.Time          `json:"createdAt"`
	DistanceKm          *float64           `json:"distanceKm,omitempty"`
	EstimatedDeliveryAt *time.Time         `json:"estimatedDeliveryAt,omitempty"`
	Id                  openapi_types.UUID `json:"id"`
	Location            *Location          `json:"location,omitempty"`
	Plan                string             `json:"plan"`
	PriceMinor          *int64             `json:"priceMinor,omitempty"`
	Status              OrderStatus        `json:"status"`
	TourPosition        *int               `json:"tourPosition,omitempty"`
}

// TourStop defines model for TourStop.
type TourStop struct {
	DistanceKm float64            `json:"distanceKm"`
	Lat        *float64           `json:"lat,omitempty"`
	Lng        *float64           `json:"lng,omitempty"`
	OrderId    openapi_types.UUID `json:"orderId"`
	Position   int                `json:"position"`
}

// DeliveryStats defines model for DeliveryStats.
type DeliveryStats struct {
	AverageDistanceKm   float64 `json:"averageDistanceKm"`
	DeliveredToday      int     `json:"deliveredToday"`
	OutForDeliveryCount int     `json:"outForDeliveryCount"`
	ReadyCount          int     `json:"readyCount"`
	TotalDistanceKm     float64 `json:"totalDistanceKm"`
	TourLength          int     `json:"tourLength"`
}

// OrderId defines model for OrderId.
type OrderId = openapi_types.UUID

// GetDeliveryStatsParams defines parameters for GetDeliveryStats.
type GetDeliveryStatsParams struct {
	// Tz IANA zone that defines "today"; the server zone when omitted
	Tz *string `form:"tz,omitempty" json:"tz,omitempty"`
}

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = NewOrder

// ConfirmOrderJSONRequestBody defines body for ConfirmOrder for application/json ContentType.
type ConfirmOrderJSONRequestBody = ConfirmOrder

// MarkOrderReadyJSONRequestBody defines body for MarkOrderReady for application/json ContentType.
type MarkOrderReadyJSONRequestBody = MarkReady
