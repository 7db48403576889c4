package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Calculation outcomes used as the "result" label.
const (
	resultSuccess         = "success"
	resultValidationError = "validation_error"
	resultError           = "error"
)

// unmatchedRoute labels requests that resolved to no route (404 and 405).
const unmatchedRoute = "unmatched"

// Metrics holds the Prometheus collectors exposed on /metrics.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	CalculationsTotal *prometheus.CounterVec
	GrandTotalAmount  *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewMetrics creates the collectors and registers them with registry. A nil
// registry gets a fresh one.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "billing_calc_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "billing_calc_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		CalculationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "billing_calc_calculations_total",
				Help: "Total number of billing calculations by outcome",
			},
			[]string{"calculation", "result"},
		),
		GrandTotalAmount: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "billing_calc_grand_total_brl",
				Help:    "Grand total of successful calculations in BRL",
				Buckets: []float64{25, 50, 100, 200, 400, 800, 1600},
			},
			[]string{"calculation"},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.CalculationsTotal,
		m.GrandTotalAmount,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordCalculation counts one calculation and, on success, observes its grand total.
func (m *Metrics) RecordCalculation(calculation, result string, grandTotal float64) {
	m.CalculationsTotal.WithLabelValues(calculation, result).Inc()
	if result == resultSuccess {
		m.GrandTotalAmount.WithLabelValues(calculation).Observe(grandTotal)
	}
}

// Instrument wraps next, which serves router, and records every request,
// labelled by the matched path template or unmatchedRoute.
func (m *Metrics) Instrument(router *mux.Router, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		route := unmatchedRoute
		var match mux.RouteMatch
		if router.Match(r, &match) && match.MatchErr == nil && match.Route != nil {
			if tpl, err := match.Route.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rw.statusCode)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
