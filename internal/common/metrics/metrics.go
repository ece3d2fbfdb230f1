// internal/common/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_predictions_total",
			Help: "Total number of prediction requests by outcome and assembly strategy",
		},
		[]string{"outcome", "strategy", "heuristic"},
	)

	PredictionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "career_prediction_duration_seconds",
			Help:    "Duration of the validate, assemble and infer pipeline in seconds",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		},
		[]string{"outcome"},
	)

	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_validation_failures_total",
			Help: "Total number of rejected payloads by error code",
		},
		[]string{"error_code"},
	)

	SchemaDriftTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_schema_drift_total",
			Help: "Total number of schema drift failures by reason",
		},
		[]string{"reason"},
	)

	ArtifactLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "career_artifact_load_duration_seconds",
			Help: "Duration of artifact fetch and decode at startup",
		},
		[]string{"artifact", "source"},
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
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"method", "route"},
	)

	HTTPRequestsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_active",
			Help: "Number of in-flight HTTP requests",
		},
	)
)

// RecordHTTPRequest records one completed request.
func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func TrackActiveRequest(start bool) {
	if start {
		HTTPRequestsActive.Inc()
		return
	}
	HTTPRequestsActive.Dec()
}
