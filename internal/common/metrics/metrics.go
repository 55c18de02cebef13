package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Executor metrics

	// ExecutorCallsTotal counts calls admitted by the resilient executor
	ExecutorCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ledgerline",
			Subsystem: "resilience",
			Name:      "calls_total",
			Help:      "Total calls routed through the resilient executor",
		},
		[]string{"operation", "result"}, // result: success, failed, rejected
	)

	// ExecutorCallDuration tracks protected call duration
	ExecutorCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ledgerline",
			Subsystem: "resilience",
			Name:      "call_duration_seconds",
			Help:      "Duration of calls routed through the resilient executor",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	// ExecutorSlowOperations counts successful calls that exceeded the slow threshold
	ExecutorSlowOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ledgerline",
			Subsystem: "resilience",
			Name:      "slow_operations_total",
			Help:      "Total successful calls slower than the slow-operation threshold",
		},
		[]string{"operation"},
	)

	// CircuitBreakerState tracks circuit breaker state
	// 0 = closed (healthy), 1 = open (tripped), 2 = half-open (testing)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "ledgerline",
			Subsystem: "resilience",
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"name"},
	)

	// CircuitBreakerTrips tracks circuit breaker trip events
	CircuitBreakerTrips = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ledgerline",
			Subsystem: "resilience",
			Name:      "circuit_breaker_trips_total",
			Help:      "Total circuit breaker trip events",
		},
		[]string{"name"},
	)

	// Pool metrics

	// PoolTasksSubmitted counts submissions to the executor pool
	PoolTasksSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ledgerline",
			Subsystem: "pool",
			Name:      "tasks_submitted_total",
			Help:      "Total tasks submitted to the executor pool",
		},
		[]string{"pool", "result"}, // result: accepted, rejected, rate_limited
	)

	// PoolActiveWorkers tracks number of active workers
	PoolActiveWorkers = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "ledgerline",
			Subsystem: "pool",
			Name:      "active_workers",
			Help:      "Number of active workers in the pool",
		},
		[]string{"pool"},
	)

	// PoolQueueDepth tracks queue depth (pending tasks)
	PoolQueueDepth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "ledgerline",
			Subsystem: "pool",
			Name:      "queue_depth",
			Help:      "Number of tasks pending in the pool queue",
		},
		[]string{"pool"},
	)

	// Service metrics

	// ServiceFaults counts classified faults surfaced by services
	ServiceFaults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ledgerline",
			Subsystem: "service",
			Name:      "faults_total",
			Help:      "Total classified faults by category and source",
		},
		[]string{"category", "source"},
	)

	// ServiceOperationsTotal counts service operations by outcome
	ServiceOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ledgerline",
			Subsystem: "service",
			Name:      "operations_total",
			Help:      "Total service operations by outcome",
		},
		[]string{"entity", "operation", "outcome"},
	)

	// HTTP ops metrics

	// HTTPRequestsTotal tracks ops HTTP requests
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ledgerline",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total ops HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks ops HTTP request duration
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ledgerline",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Ops HTTP request duration",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// CircuitBreakerState constants
const (
	CircuitBreakerClosed   = 0
	CircuitBreakerOpen     = 1
	CircuitBreakerHalfOpen = 2
)

// Fault categories and execution signals recorded through the Sink
const (
	FaultCircuitOpen         = "circuit_open"
	FaultTimeout             = "timeout"
	FaultTransientConnection = "transient_connection"
	FaultResourceUnavailable = "resource_unavailable"
	FaultOperation           = "operation_error"
	FaultValidation          = "validation"
	FaultDataIntegrity       = "data_integrity"
	FaultBusinessRule        = "business_rule"
	FaultSystem              = "system_failure"
	FaultUnclassified        = "unclassified"

	SignalSlowOperation = "slow_operation"
)
