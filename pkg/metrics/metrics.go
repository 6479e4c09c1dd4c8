package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var initOnce sync.Once

var (
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	JobsScheduledTotal    *prometheus.CounterVec
	JobTransitionsTotal   *prometheus.CounterVec
	NormalizationsTotal   *prometheus.CounterVec
	NormalizationDuration *prometheus.HistogramVec
	RawDataQueueDepth     prometheus.Gauge
)

// Init registers the collectors once; repeated calls are no-ops so every
// entry point (and test binary) can call it unconditionally.
func Init() {
	initOnce.Do(initMetrics)
}

func initMetrics() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	JobsScheduledTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobs_scheduled_total",
			Help: "Total number of crawl jobs scheduled.",
		},
		[]string{"project", "spider"},
	)

	JobTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "job_transitions_total",
			Help: "Total number of job status transitions applied.",
		},
		[]string{"status"},
	)

	NormalizationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "normalizations_total",
			Help: "Total number of raw payloads normalized, by listing status.",
		},
		[]string{"domain", "status"},
	)

	NormalizationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "normalization_duration_seconds",
			Help:    "Duration of single-payload normalization.",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"domain"},
	)

	RawDataQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "raw_data_queue_depth",
			Help: "Current number of raw payloads waiting for normalization.",
		},
	)
}
