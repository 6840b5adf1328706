// Package metrics exposes Prometheus instrumentation for the HTTP layer and
// team sales recalculation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	TeamRecalculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "team_sales_recalculations_total",
			Help: "Total number of team sales recalculations",
		},
		[]string{"result"},
	)

	TeamRecalculationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "team_sales_recalculation_duration_seconds",
			Help:    "Duration of team sales recalculations in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordRecalculation records the outcome and duration of one team recalculation.
func RecordRecalculation(duration time.Duration, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	TeamRecalculations.WithLabelValues(result).Inc()
	TeamRecalculationDuration.Observe(duration.Seconds())
}

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
