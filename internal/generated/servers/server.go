package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Place a new order
	// (POST /orders)
	CreateOrder(ctx echo.Context) error
	// Read one order
	// (GET /orders/{orderId})
	GetOrder(ctx echo.Context, orderId OrderId) error
	// PENDING to CONFIRMED
	// (POST /orders/{orderId}/confirm)
	ConfirmOrder(ctx echo.Context, orderId OrderId) error
	// CONFIRMED to READY with the customer GPS fix
	// (POST /orders/{orderId}/ready)
	MarkOrderReady(ctx echo.Context, orderId OrderId) error
	// READY to OUT_FOR_DELIVERY
	// (POST /orders/{orderId}/start)
	StartDelivery(ctx echo.Context, orderId OrderId) error
	// OUT_FOR_DELIVERY to DELIVERED
	// (POST /orders/{orderId}/complete)
	CompleteDelivery(ctx echo.Context, orderId OrderId) error
	// Cancel a non-terminal order
	// (POST /orders/{orderId}/cancel)
	CancelOrder(ctx echo.Context, orderId OrderId) error
	// The tour as persisted by the last rebuild
	// (GET /route)
	GetRoute(ctx echo.Context) error
	// Recompute and persist the tour
	// (POST /route/rebuild)
	RebuildRoute(ctx echo.Context) error
	// Delivery counters as of now
	// (GET /stats)
	GetDeliveryStats(ctx echo.Context, params GetDeliveryStatsParams) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderId)
}

// ConfirmOrder converts echo context to params.
func (w *ServerInterfaceWrapper) ConfirmOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ConfirmOrder(ctx, orderId)
}

// MarkOrderReady converts echo context to params.
func (w *ServerInterfaceWrapper) MarkOrderReady(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.MarkOrderReady(ctx, orderId)
}

// StartDelivery converts echo context to params.
func (w *ServerInterfaceWrapper) StartDelivery(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.StartDelivery(ctx, orderId)
}

// CompleteDelivery converts echo context to params.
func (w *ServerInterfaceWrapper) CompleteDelivery(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CompleteDelivery(ctx, orderId)
}

// CancelOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CancelOrder(ctx, orderId)
}

// GetRoute converts echo context to params.
func (w *ServerInterfaceWrapper) GetRoute(ctx echo.Context) error {
	return w.Handler.GetRoute(ctx)
}

// RebuildRoute converts echo context to params.
func (w *ServerInterfaceWrapper) RebuildRoute(ctx echo.Context) error {
	return w.Handler.RebuildRoute(ctx)
}

// GetDeliveryStats converts echo context to params.
func (w *ServerInterfaceWrapper) GetDeliveryStats(ctx echo.Context) error {
	var params GetDeliveryStatsParams

	err := runtime.BindQueryParameter("form", true, false, "tz", ctx.QueryParams(), &params.Tz)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter tz: %s", err))
	}

	return w.Handler.GetDeliveryStats(ctx, params)
}

func bindOrderID(ctx echo.Context) (openapi_types.UUID, error) {
	var orderId openapi_types.UUID

	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return orderId, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	return orderId, nil
}

// EchoRouter is the subset of echo routing used by RegisterHandlers. Both
// *echo.Echo and *echo.Group satisfy it.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the handlers, and prepends BaseURL to
// the paths, so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/orders/:orderId", wrapper.GetOrder)
	router.POST(baseURL+"/orders/:orderId/cancel", wrapper.CancelOrder)
	router.POST(baseURL+"/orders/:orderId/complete", wrapper.CompleteDelivery)
	router.POST(baseURL+"/orders/:orderId/confirm", wrapper.ConfirmOrder)
	router.POST(baseURL+"/orders/:orderId/ready", wrapper.MarkOrderReady)
	router.POST(baseURL+"/orders/:orderId/start", wrapper.StartDelivery)
	router.GET(baseURL+"/route", wrapper.GetRoute)
	router.POST(baseURL+"/route/rebuild", wrapper.RebuildRoute)
	router.GET(baseURL+"/stats", wrapper.GetDeliveryStats)
}
