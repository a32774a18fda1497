package http

import (
	"errors"
	"net/http"

	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/core/ports"
	"mealroute/internal/generated/servers"
	"mealroute/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// retryAfterSeconds is sent with 503 on a rebuild conflict.
const retryAfterSeconds = "1"

// statusFor maps use-case errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, ports.ErrRouteRebuildConflict):
		return http.StatusServiceUnavailable
	case errors.Is(err, order.ErrInvalidLocation),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(ctx echo.Context, err error) error {
	code := statusFor(err)

	message := err.Error()
	switch code {
	case http.StatusServiceUnavailable:
		ctx.Response().Header().Set("Retry-After", retryAfterSeconds)
	case http.StatusInternalServerError:
		s.logger.Error("request failed",
			zap.String("method", ctx.Request().Method),
			zap.String("path", ctx.Path()),
			zap.Error(err),
		)
		message = http.StatusText(http.StatusInternalServerError)
	}

	return ctx.JSON(code, servers.Error{Code: code, Message: message})
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{Code: http.StatusBadRequest, Message: message})
}

func (s *Server) unprocessable(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusUnprocessableEntity, servers.Error{Code: http.StatusUnprocessableEntity, Message: message})
}
