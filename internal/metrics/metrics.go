package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Query agent metrics for production monitoring
var (
	// Query pipeline metrics
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kubeask_queries_total",
			Help: "Total number of natural-language queries dispatched",
		},
		[]string{"intent", "status"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kubeask_query_duration_seconds",
			Help:    "End-to-end query dispatch duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~1min
		},
		[]string{"intent"},
	)

	// Completion service metrics
	LLMRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kubeask_llm_requests_total",
			Help: "Total number of completion-service API requests",
		},
		[]string{"model", "status"},
	)

	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kubeask_llm_request_duration_seconds",
			Help:    "Completion-service request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"model"},
	)

	LLMTokensUsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kubeask_llm_tokens_total",
			Help: "Total number of completion-service tokens consumed",
		},
		[]string{"model", "type"}, // type: input/output
	)

	// Cluster API metrics
	ClusterRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kubeask_cluster_requests_total",
			Help: "Total number of Kubernetes API requests",
		},
		[]string{"operation", "status"},
	)

	// Circuit breaker metrics
	CircuitBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kubeask_cluster_circuit_breaker_state",
			Help: "Circuit breaker state for the cluster API (0=closed, 1=open, 2=half-open)",
		},
	)

	CircuitBreakerTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kubeask_cluster_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"from", "to"},
	)

	CircuitBreakerFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kubeask_cluster_circuit_breaker_failures_total",
			Help: "Total number of failures counted by the circuit breaker",
		},
	)

	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kubeask_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
)
