package dispatch

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

const MetricsSubsystem = "dispatch"

// Metrics contains metrics exposed by the dispatch layer.
type Metrics struct {
	// Number of requests handled successfully.
	RequestsHandled metrics.Counter
	// Number of requests whose handler returned an error.
	RequestsFailed metrics.Counter
	// Number of requests rejected before the handler ran (unknown command
	// or schema violation).
	RequestsRejected metrics.Counter
	// Handler execution time.
	RequestDurationSeconds metrics.Histogram
}

// PrometheusMetrics returns Metrics built using the Prometheus client
// library. All metrics carry a "command" label.
func PrometheusMetrics(namespace string) *Metrics {
	labels := []string{"command"}
	return &Metrics{
		RequestsHandled: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "requests_handled",
			Help:      "Number of requests handled successfully.",
		}, labels),
		RequestsFailed: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "requests_failed",
			Help:      "Number of requests whose handler returned an error.",
		}, labels),
		RequestsRejected: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "requests_rejected",
			Help:      "Number of requests rejected before the handler ran.",
		}, labels),
		RequestDurationSeconds: prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "request_duration_seconds",
			Help:      "Handler execution time.",
			Buckets:   stdprometheus.ExponentialBuckets(0.001, 4, 8),
		}, labels),
	}
}

// NopMetrics returns no-op Metrics.
func NopMetrics() *Metrics {
	return &Metrics{
		RequestsHandled:        discard.NewCounter(),
		RequestsFailed:         discard.NewCounter(),
		RequestsRejected:       discard.NewCounter(),
		RequestDurationSeconds: discard.NewHistogram(),
	}
}
