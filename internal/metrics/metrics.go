// Package metrics holds the Prometheus collectors of the service.
//
// The core never records metrics; the HTTP adapter and the jobs call the
// Record* methods after each use case returns.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/core/ports"
	"mealroute/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mealroute"

// Result labels.
const (
	ResultOK                = "ok"
	ResultNotFound          = "not_found"
	ResultInvalidTransition = "invalid_transition"
	ResultInvalidInput      = "invalid_input"
	ResultConflict          = "conflict"
	ResultError             = "error"
)

// Metrics owns a registry so tests and parallel servers do not share
// collectors.
type Metrics struct {
	Registry *prometheus.Registry

	transitions    *prometheus.CounterVec
	rebuilds       *prometheus.CounterVec
	rebuildSeconds prometheus.Histogram
	tourSize       prometheus.Gauge

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New creates and registers every collector. Process and Go runtime
// collectors are included when withRuntime is set.
func New(withRuntime bool) *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),

		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "orders",
				Name:      "transitions_total",
				Help:      "Order lifecycle transitions by transition and result.",
			},
			[]string{"transition", "result"},
		),

		rebuilds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "route",
				Name:      "rebuilds_total",
				Help:      "Route rebuilds by result.",
			},
			[]string{"result"},
		),

		rebuildSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "route",
				Name:      "rebuild_duration_seconds",
				Help:      "Duration of route rebuilds including lock waits.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
			},
		),

		tourSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "route",
				Name:      "tour_size",
				Help:      "Number of stops in the last committed tour.",
			},
		),

		httpInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "inflight_requests",
				Help:      "Current number of in-flight HTTP requests.",
			},
		),

		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled.",
			},
			[]string{"method", "route", "status"},
		),

		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
			},
			[]string{"method", "route"},
		),
	}

	m.Registry.MustRegister(
		m.transitions,
		m.rebuilds,
		m.rebuildSeconds,
		m.tourSize,
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
	)

	if withRuntime {
		m.Registry.MustRegister(
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewGoCollector(),
		)
	}

	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// RecordTransition counts one lifecycle operation, e.g. "confirm".
func (m *Metrics) RecordTransition(transition string, err error) {
	m.transitions.WithLabelValues(transition, Result(err)).Inc()
}

// RecordRouteRebuild counts a rebuild and, when it committed, publishes the
// tour size.
func (m *Metrics) RecordRouteRebuild(duration time.Duration, tourSize int, err error) {
	m.rebuilds.WithLabelValues(Result(err)).Inc()
	m.rebuildSeconds.Observe(duration.Seconds())
	if err == nil {
		m.tourSize.Set(float64(tourSize))
	}
}

// HTTPStarted marks a request in flight and returns the function that
// records its completion.
func (m *Metrics) HTTPStarted() func(method, route string, status int, duration time.Duration) {
	m.httpInFlight.Inc()
	return func(method, route string, status int, duration time.Duration) {
		m.httpInFlight.Dec()
		if route == "" {
			route = "unmatched"
		}
		method = strings.ToUpper(method)
		m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
	}
}

// Result classifies a use-case error into a low-cardinality label.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, errs.ErrObjectNotFound):
		return ResultNotFound
	case errors.Is(err, errs.ErrInvalidTransition):
		return ResultInvalidTransition
	case errors.Is(err, ports.ErrRouteRebuildConflict):
		return ResultConflict
	case errors.Is(err, order.ErrInvalidLocation),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return ResultInvalidInput
	default:
		return ResultError
	}
}
