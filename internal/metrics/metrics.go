// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "curriculo_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// Generations counts pipeline runs by outcome kind
	Generations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curriculo_generations_total",
			Help: "Number of curriculum generations by outcome",
		},
		[]string{"outcome"},
	)

	// RenderDuration tracks time spent in the PDF renderer
	RenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "curriculo_render_duration_seconds",
			Help:    "Duration of HTML to PDF rendering in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"status"},
	)

	// RenderAttempts counts renderer invocations, retries included
	RenderAttempts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "curriculo_render_attempts_total",
			Help: "Number of renderer invocations",
		},
	)
)
