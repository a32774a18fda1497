package http

import (
	"errors"
	"net/http"
	"time"

	"mealroute/api"
	"mealroute/internal/generated/servers"
	"mealroute/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// BaseURL prefixes every API route.
const BaseURL = "/api/v1"

// RouterConfig tunes the middleware stack.
type RouterConfig struct {
	// RateLimitRPS is the per-client request rate; 0 disables limiting.
	RateLimitRPS float64
	// RateLimitBurst defaults to twice RateLimitRPS, and at least 1.
	RateLimitBurst int
}

// NewRouter builds the echo instance serving the API, /health, /metrics and
// /swagger/*.
func NewRouter(server *Server, m *metrics.Metrics, logger *zap.Logger, cfg RouterConfig) (*echo.Echo, error) {
	if err := api.RegisterSwagger(); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.ERROR)

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger.Named("access")))
	e.Use(instrument(m))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	group := e.Group(BaseURL)
	if cfg.RateLimitRPS > 0 {
		group.Use(rateLimiter(cfg))
	}
	servers.RegisterHandlers(group, server)

	return e, nil
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
			}
			if v.RequestID != "" {
				fields = append(fields, zap.String("request_id", v.RequestID))
			}

			if v.Error != nil {
				logger.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	})
}

func instrument(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Path() == "/metrics" {
				return next(c)
			}

			done := m.HTTPStarted()
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				var httpErr *echo.HTTPError
				if errors.As(err, &httpErr) {
					status = httpErr.Code
				} else if !c.Response().Committed {
					status = http.StatusInternalServerError
				}
			}

			done(c.Request().Method, c.Path(), status, time.Since(start))
			return err
		}
	}
}

func rateLimiter(cfg RouterConfig) echo.MiddlewareFunc {
	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = max(1, int(cfg.RateLimitRPS*2))
	}

	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(cfg.RateLimitRPS),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return c.JSON(http.StatusTooManyRequests, servers.Error{
				Code:    http.StatusTooManyRequests,
				Message: "Too many requests",
			})
		},
	})
}
