package http

import (
	"context"
	"net/http"
	"time"

	"mealroute/internal/core/application/usecases/commands"
	"mealroute/internal/core/application/usecases/queries"
	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/core/domain/services"
	"mealroute/internal/core/ports"
	"mealroute/internal/generated/servers"
	"mealroute/internal/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Use-case contracts the transport depends on.
type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
	}
	ConfirmOrderHandler interface {
		Handle(ctx context.Context, cmd commands.ConfirmOrderCommand) (*order.Order, error)
	}
	MarkOrderReadyHandler interface {
		Handle(ctx context.Context, cmd commands.MarkOrderReadyCommand) (*order.Order, error)
	}
	StartDeliveryHandler interface {
		Handle(ctx context.Context, cmd commands.StartDeliveryCommand) (*order.Order, error)
	}
	CompleteDeliveryHandler interface {
		Handle(ctx context.Context, cmd commands.CompleteDeliveryCommand) (*order.Order, error)
	}
	CancelOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CancelOrderCommand) (*order.Order, error)
	}
	RebuildRouteHandler interface {
		Handle(ctx context.Context, cmd commands.RebuildRouteCommand) ([]services.TourStop, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
	}
	GetRouteHandler interface {
		Handle(ctx context.Context, query queries.GetRouteQuery) ([]queries.GetRouteQueryResponse, error)
	}
	GetDeliveryStatsHandler interface {
		Handle(ctx context.Context, query queries.GetDeliveryStatsQuery) (services.DeliveryStats, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder      CreateOrderHandler
	ConfirmOrder     ConfirmOrderHandler
	MarkOrderReady   MarkOrderReadyHandler
	StartDelivery    StartDeliveryHandler
	CompleteDelivery CompleteDeliveryHandler
	CancelOrder      CancelOrderHandler
	RebuildRoute     RebuildRouteHandler

	GetOrder         GetOrderHandler
	GetRoute         GetRouteHandler
	GetDeliveryStats GetDeliveryStatsHandler
}

// Server implements servers.ServerInterface on top of the use cases. It
// never calls the domain directly.
type Server struct {
	handlers Handlers
	clock    ports.Clock
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, clock ports.Clock, m *metrics.Metrics, logger *zap.Logger) *Server {
	return &Server{
		handlers: handlers,
		clock:    clock,
		metrics:  m,
		logger:   logger.Named("http"),
	}
}

// CreateOrder handles POST /api/v1/orders. The id is generated unless the
// caller supplies one.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	orderID := kernel.NewUUID()
	if body.Id != nil {
		parsed, err := kernel.UUIDFromBytes(body.Id[:])
		if err != nil {
			return s.writeError(ctx, err)
		}
		orderID = parsed
	}

	plan := ""
	if body.Plan != nil {
		plan = *body.Plan
	}

	cmd, err := commands.NewCreateOrderCommand(orderID, plan, body.PriceMinor)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.OrderCreated{Id: orderID.Bytes()})
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId servers.OrderId) error {
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.writeError(ctx, err)
	}

	o, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(o))
}

// ConfirmOrder handles POST /api/v1/orders/{orderId}/confirm.
func (s *Server) ConfirmOrder(ctx echo.Context, orderId servers.OrderId) error {
	var body servers.ConfirmOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	return s.transition(ctx, "confirm", orderId, func(c context.Context, id kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewConfirmOrderCommand(id, body.EstimatedDeliveryAt)
		if err != nil {
			return nil, err
		}
		return s.handlers.ConfirmOrder.Handle(c, cmd)
	})
}

// MarkOrderReady handles POST /api/v1/orders/{orderId}/ready. It does not
// rebuild the tour.
func (s *Server) MarkOrderReady(ctx echo.Context, orderId servers.OrderId) error {
	var body servers.MarkOrderReadyJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	return s.transition(ctx, "ready", orderId, func(c context.Context, id kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewMarkOrderReadyCommand(id, body.Lat, body.Lng, body.CapturedAt)
		if err != nil {
			return nil, err
		}
		return s.handlers.MarkOrderReady.Handle(c, cmd)
	})
}

// StartDelivery handles POST /api/v1/orders/{orderId}/start.
func (s *Server) StartDelivery(ctx echo.Context, orderId servers.OrderId) error {
	return s.transition(ctx, "start_delivery", orderId, func(c context.Context, id kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewStartDeliveryCommand(id)
		if err != nil {
			return nil, err
		}
		return s.handlers.StartDelivery.Handle(c, cmd)
	})
}

// CompleteDelivery handles POST /api/v1/orders/{orderId}/complete.
func (s *Server) CompleteDelivery(ctx echo.Context, orderId servers.OrderId) error {
	return s.transition(ctx, "complete_delivery", orderId, func(c context.Context, id kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewCompleteDeliveryCommand(id)
		if err != nil {
			return nil, err
		}
		return s.handlers.CompleteDelivery.Handle(c, cmd)
	})
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderId servers.OrderId) error {
	return s.transition(ctx, "cancel", orderId, func(c context.Context, id kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewCancelOrderCommand(id)
		if err != nil {
			return nil, err
		}
		return s.handlers.CancelOrder.Handle(c, cmd)
	})
}

// GetRoute handles GET /api/v1/route.
func (s *Server) GetRoute(ctx echo.Context) error {
	stops, err := s.handlers.GetRoute.Handle(ctx.Request().Context(), queries.NewGetRouteQuery())
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]servers.TourStop, len(stops))
	for i, stop := range stops {
		lat, lng := stop.Lat, stop.Lng
		response[i] = servers.TourStop{
			OrderId:    stop.OrderID.Bytes(),
			Position:   stop.Position,
			DistanceKm: stop.DistanceKm,
			Lat:        &lat,
			Lng:        &lng,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// RebuildRoute handles POST /api/v1/route/rebuild.
func (s *Server) RebuildRoute(ctx echo.Context) error {
	start := time.Now()
	stops, err := s.handlers.RebuildRoute.Handle(ctx.Request().Context(), commands.NewRebuildRouteCommand())
	s.metrics.RecordRouteRebuild(time.Since(start), len(stops), err)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]servers.TourStop, len(stops))
	for i, stop := range stops {
		response[i] = servers.TourStop{
			OrderId:    stop.OrderID.Bytes(),
			Position:   stop.Position,
			DistanceKm: stop.DistanceKm,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDeliveryStats handles GET /api/v1/stats.
func (s *Server) GetDeliveryStats(ctx echo.Context, params servers.GetDeliveryStatsParams) error {
	now := s.clock.Now()
	if params.Tz != nil && *params.Tz != "" {
		loc, err := time.LoadLocation(*params.Tz)
		if err != nil {
			return s.unprocessable(ctx, "Unknown time zone "+*params.Tz)
		}
		now = now.In(loc)
	}

	query, err := queries.NewGetDeliveryStatsQuery(now)
	if err != nil {
		return s.writeError(ctx, err)
	}

	stats, err := s.handlers.GetDeliveryStats.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.DeliveryStats{
		ReadyCount:          stats.ReadyCount,
		OutForDeliveryCount: stats.OutForDeliveryCount,
		DeliveredToday:      stats.DeliveredToday,
		AverageDistanceKm:   stats.AverageDistanceKm,
		TotalDistanceKm:     stats.TotalDistanceKm,
		TourLength:          stats.TourLength,
	})
}

func (s *Server) transition(
	ctx echo.Context,
	name string,
	orderId servers.OrderId,
	run func(c context.Context, id kernel.UUID) (*order.Order, error),
) error {
	var updated *order.Order

	id, err := kernel.UUIDFromBytes(orderId[:])
	if err == nil {
		updated, err = run(ctx.Request().Context(), id)
	}

	s.metrics.RecordTransition(name, err)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(queries.NewGetOrderQueryResponse(updated)))
}

func toOrder(o queries.GetOrderQueryResponse) servers.Order {
	resp := servers.Order{
		Id:                  o.ID.Bytes(),
		Status:              servers.OrderStatus(o.Status.String()),
		Plan:                o.Plan,
		PriceMinor:          o.PriceMinor,
		CreatedAt:           o.CreatedAt,
		DistanceKm:          o.DistanceKm,
		TourPosition:        o.TourPosition,
		EstimatedDeliveryAt: o.EstimatedDeliveryAt,
		ActualDeliveryAt:    o.ActualDeliveryAt,
	}

	if o.Location != nil {
		resp.Location = &servers.Location{
			Lat:        o.Location.Lat,
			Lng:        o.Location.Lng,
			CapturedAt: o.Location.CapturedAt,
		}
	}

	return resp
}
