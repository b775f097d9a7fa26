package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Latency buckets in milliseconds
	latencyBuckets = []float64{
		5, 10, 25, // fast responses
		50, 100, 250, // normal responses
		500, 1000, 2500, // slow responses
		5000, 10000, 30000, // very slow / timing out
	}

	RequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamegate_requests_total",
			Help: "Total number of requests processed",
		},
		[]string{"method", "path", "status"},
	)

	RequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gamegate_latency_ms",
			Help:    "Request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"method", "path"},
	)

	UpstreamLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gamegate_upstream_latency_ms",
			Help:    "Upstream gateway latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"method", "path"},
	)

	UpstreamRetries = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamegate_upstream_retries_total",
			Help: "Retried requests against the upstream gateway",
		},
		[]string{"method", "path"},
	)
)

type MetricsConfig struct {
	EnableLatency         bool // request latency histograms
	EnableUpstreamLatency bool // upstream latency (higher cardinality)
}

func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		EnableLatency:         true,
		EnableUpstreamLatency: false,
	}
}

var Config MetricsConfig

func Initialize(cfg MetricsConfig) {
	Config = cfg
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
}
