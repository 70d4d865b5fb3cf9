// Package metrics holds the Prometheus collectors of the checkout service.
// Collectors live on a private registry so that tests can build as many
// instances as they need.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Courier call outcomes.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Metrics is safe for concurrent use. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	requests       *prometheus.CounterVec
	latencyMS      *prometheus.HistogramVec
	courierCalls   *prometheus.CounterVec
	courierLatency prometheus.Histogram
	ordersPlaced   prometheus.Counter
	sessionsSwept  prometheus.Counter
	released       prometheus.Counter
}

// New registers the collectors under namespace "checkout" with the given
// subsystem, plus the Go and process collectors.
func New(subsystem string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "checkout",
			Subsystem: subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"route", "status"}),
		latencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "checkout",
			Subsystem: subsystem,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"route"}),
		courierCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "checkout",
			Subsystem: subsystem,
			Name:      "courier_calls_total",
			Help:      "Bulk-order calls to the courier by outcome.",
		}, []string{"outcome"}),
		courierLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "checkout",
			Subsystem: subsystem,
			Name:      "courier_call_duration_ms",
			Help:      "Courier call latency in milliseconds.",
			Buckets:   []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
		}),
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "checkout",
			Subsystem: subsystem,
			Name:      "orders_placed_total",
			Help:      "Orders accepted by the courier.",
		}),
		sessionsSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "checkout",
			Subsystem: subsystem,
			Name:      "sessions_swept_total",
			Help:      "Abandoned checkout sessions removed by the sweep job.",
		}),
		released: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "checkout",
			Subsystem: subsystem,
			Name:      "submissions_released_total",
			Help:      "Stuck submissions released to Failed by the sweep job.",
		}),
	}

	m.registry.MustRegister(
		m.requests, m.latencyMS, m.courierCalls, m.courierLatency, m.ordersPlaced, m.sessionsSwept, m.released,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveRequest(route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.latencyMS.WithLabelValues(route).Observe(float64(elapsed.Milliseconds()))
}

func (m *Metrics) ObserveCourierCall(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.courierCalls.WithLabelValues(outcome).Inc()
	m.courierLatency.Observe(float64(elapsed.Milliseconds()))
}

func (m *Metrics) OrderPlaced() {
	if m == nil {
		return
	}
	m.ordersPlaced.Inc()
}

func (m *Metrics) SessionsSwept(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.sessionsSwept.Add(float64(n))
}

func (m *Metrics) SubmissionsReleased(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.released.Add(float64(n))
}
