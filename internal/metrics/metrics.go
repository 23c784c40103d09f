// Package metrics defines the Prometheus counters and histograms for HTTP
// requests and pair detections and registers them with the default
// registry. No code in this module updates them, so they stay at zero.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP request duration in seconds",
		},
		[]string{"method", "endpoint"},
	)

	DetectionCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "syntactic_detections_total",
			Help: "Total number of pair detections run",
		},
		[]string{"outcome"},
	)

	DetectionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name: "syntactic_detection_duration_seconds",
			Help: "Pair detection duration in seconds",
		},
	)

	BatchSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "syntactic_batch_size",
			Help:    "Number of files submitted per batch job",
			Buckets: prometheus.LinearBuckets(2, 10, 10),
		},
	)
)

// InitPrometheus registers every collector with the default registry.
func InitPrometheus() {
	prometheus.MustRegister(RequestCount)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DetectionCount)
	prometheus.MustRegister(DetectionDuration)
	prometheus.MustRegister(BatchSize)
}
