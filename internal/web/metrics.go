package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Mr-Dark-debug/astview/internal/coordinator"
)

const namespace = "astview"

// Metrics holds the Prometheus registry for one server. Each server gets
// its own registry so tests can build several.
type Metrics struct {
	registry     *prometheus.Registry
	httpDuration *prometheus.HistogramVec
}

// NewMetrics registers HTTP metrics and trigger counters read from coord.
func NewMetrics(coord *coordinator.Coordinator) *Metrics {
	registry := prometheus.NewRegistry()

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
	registry.MustRegister(httpDuration)

	counter := func(name, help string, read func(coordinator.Stats) int64) prometheus.CounterFunc {
		return prometheus.NewCounterFunc(
			prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help},
			func() float64 { return float64(read(coord.Stats())) },
		)
	}
	registry.MustRegister(
		counter("triggers_total", "Total parse triggers",
			func(s coordinator.Stats) int64 { return s.Triggers }),
		counter("empty_inputs_total", "Triggers rejected for empty input",
			func(s coordinator.Stats) int64 { return s.Empty }),
		counter("trees_rendered_total", "Trees rendered successfully",
			func(s coordinator.Stats) int64 { return s.Rendered }),
		counter("parse_failures_total", "Triggers that ended in a diagnostic",
			func(s coordinator.Stats) int64 { return s.Failed }),
	)

	return &Metrics{registry: registry, httpDuration: httpDuration}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware observes request durations by route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		m.httpDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).
			Observe(time.Since(start).Seconds())
	})
}
