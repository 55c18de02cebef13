// Package resilience provides the protected execution layer for store
// operations: a shared circuit breaker with retry and timeout policies,
// running units of work on a bounded background pool. Services opt in per
// call site; an unconfigured executor degrades to direct execution.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"go.ledgerline.dev/internal/common/metrics"
	"go.ledgerline.dev/internal/common/repository"
)

// SlowOperationThreshold marks successful calls worth a slow-operation
// signal. Independent of the configured call timeout.
const SlowOperationThreshold = 500 * time.Millisecond

// Config describes the protection policy for one executor. It is built
// once at process start and never mutated afterwards.
type Config struct {
	// Enabled turns the resilience layer on. When false the executor
	// runs operations directly with no breaker, retry, or timeout.
	Enabled bool

	// Circuit breaker
	FailureRateThreshold float64       // trip when failure ratio >= threshold
	MinRequests          uint32        // minimum calls before evaluating the ratio
	CountingInterval     time.Duration // rolling window for breaker counts
	OpenCooldown         time.Duration // how long Open lasts before HalfOpen

	// Retry
	MaxRetries   int           // re-attempts after the first try
	RetryBackoff time.Duration // linear backoff base, attempt * base

	// CallTimeout bounds the whole attempt, retries included
	CallTimeout time.Duration

	// Pool
	PoolSize      int
	QueueCapacity int

	// RatePerMinute limits admissions across all call sites, 0 disables
	RatePerMinute int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Enabled:              true,
		FailureRateThreshold: 0.5,
		MinRequests:          10,
		CountingInterval:     60 * time.Second,
		OpenCooldown:         30 * time.Second,
		MaxRetries:           3,
		RetryBackoff:         1 * time.Second,
		CallTimeout:          5 * time.Second,
		PoolSize:             8,
		QueueCapacity:        64,
	}
}

// Executor wraps units of work with circuit breaker, retry, and timeout
// policies, running them on the shared worker pool. A nil *Executor or
// one built from a disabled Config executes operations directly.
type Executor struct {
	name    string
	cfg     Config
	breaker *gobreaker.CircuitBreaker
	pool    *WorkerPool
	limiter *rate.Limiter
	sink    metrics.Sink
}

// New creates an executor. With cfg.Enabled false the returned executor
// carries no breaker and every call degrades to direct execution; the
// degradation is logged once here, not per call.
func New(name string, cfg Config, pool *WorkerPool, sink metrics.Sink) *Executor {
	if !cfg.Enabled {
		slog.Warn("Resilience disabled, operations will execute directly",
			"executor", name)
		return &Executor{name: name, cfg: cfg, sink: sink}
	}

	ex := &Executor{name: name, cfg: cfg, pool: pool, sink: sink}

	if cfg.RatePerMinute > 0 {
		perSecond := float64(cfg.RatePerMinute) / 60.0
		ex.limiter = rate.NewLimiter(rate.Limit(perSecond), cfg.RatePerMinute)
		slog.Info("Created executor rate limiter",
			"executor", name,
			"ratePerMinute", cfg.RatePerMinute)
	}

	ex.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1, // single half-open probe
		Interval:    cfg.CountingInterval,
		Timeout:     cfg.OpenCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureRateThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Info("Circuit breaker state changed",
				"executor", name,
				"from", from.String(),
				"to", to.String())
			switch to {
			case gobreaker.StateOpen:
				metrics.CircuitBreakerState.WithLabelValues(name).Set(metrics.CircuitBreakerOpen)
				metrics.CircuitBreakerTrips.WithLabelValues(name).Inc()
			case gobreaker.StateHalfOpen:
				metrics.CircuitBreakerState.WithLabelValues(name).Set(metrics.CircuitBreakerHalfOpen)
			case gobreaker.StateClosed:
				metrics.CircuitBreakerState.WithLabelValues(name).Set(metrics.CircuitBreakerClosed)
			}
		},
	})

	slog.Info("Created resilient executor",
		"executor", name,
		"failureRateThreshold", cfg.FailureRateThreshold,
		"minRequests", cfg.MinRequests,
		"openCooldown", cfg.OpenCooldown,
		"maxRetries", cfg.MaxRetries,
		"callTimeout", cfg.CallTimeout)

	return ex
}

// direct reports whether calls bypass the resilience layer entirely.
func (ex *Executor) direct() bool {
	return ex == nil || ex.breaker == nil
}

// State returns the current breaker state, Closed when degraded.
func (ex *Executor) State() gobreaker.State {
	if ex.direct() {
		return gobreaker.StateClosed
	}
	return ex.breaker.State()
}

// ExecuteAsync submits the operation for protected execution and returns
// a future immediately. An Open breaker, an exceeded rate limit, or a
// saturated pool fast-fail the future without invoking the operation. In
// degraded mode the operation runs synchronously exactly once and the
// future carries its raw outcome.
func ExecuteAsync[T any](ex *Executor, ctx context.Context, operation string, op func(context.Context) (T, error)) *Future[T] {
	if ex.direct() {
		slog.Debug("Executing operation directly, resilience disabled",
			"operation", operation)
		value, err := op(ctx)
		return resolvedFuture(value, err)
	}

	var zero T

	// Fast-fail before consuming queue space. The authoritative admission
	// check still happens inside breaker.Execute on the worker.
	if ex.breaker.State() == gobreaker.StateOpen {
		ex.recordRejection(operation, ErrCircuitOpen)
		return resolvedFuture(zero, fmt.Errorf("%s: %w", operation, ErrCircuitOpen))
	}

	if ex.limiter != nil && !ex.limiter.Allow() {
		ex.recordRejection(operation, ErrRateLimited)
		return resolvedFuture(zero, fmt.Errorf("%s: %w", operation, ErrRateLimited))
	}

	future := newFuture[T]()
	accepted := ex.pool.Submit(func() {
		value, err := runProtected(ex, ctx, operation, op)
		future.complete(value, err)
	})
	if !accepted {
		ex.recordRejection(operation, ErrPoolSaturated)
		return resolvedFuture(zero, fmt.Errorf("%s: %w", operation, ErrPoolSaturated))
	}

	return future
}

// Execute runs the operation through the async path and blocks up to wait
// for the outcome. On wait expiry the wait is abandoned, not the work:
// the background attempt keeps running and still settles the breaker
// counters when it finishes. A non-positive wait blocks until the future
// settles or ctx is done.
func Execute[T any](ex *Executor, ctx context.Context, operation string, wait time.Duration, op func(context.Context) (T, error)) (T, error) {
	future := ExecuteAsync(ex, ctx, operation, op)

	if wait <= 0 {
		return future.Wait(ctx)
	}

	select {
	case <-future.Done():
		return future.Wait(context.Background())
	case <-time.After(wait):
		if !ex.direct() {
			ex.sink.Increment(metrics.FaultTimeout, operation)
		}
		slog.Warn("Result wait timed out, abandoning wait",
			"operation", operation,
			"wait", wait)
		var zero T
		return zero, fmt.Errorf("%s: %w after %s", operation, ErrWaitTimeout, wait)
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// runProtected executes the operation under breaker, timeout, and retry,
// recording metrics for the terminal outcome.
func runProtected[T any](ex *Executor, ctx context.Context, operation string, op func(context.Context) (T, error)) (T, error) {
	start := time.Now()

	raw, err := ex.breaker.Execute(func() (interface{}, error) {
		value, attemptErr := runAttempts(ex, ctx, operation, op)
		return value, attemptErr
	})

	duration := time.Since(start)
	metrics.ExecutorCallDuration.WithLabelValues(operation).Observe(duration.Seconds())

	if err != nil {
		var zero T
		category := FaultCategory(err)
		ex.sink.Increment(category, operation)

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.ExecutorCallsTotal.WithLabelValues(operation, "rejected").Inc()
			slog.Warn("Circuit breaker rejected operation",
				"executor", ex.name,
				"operation", operation)
			return zero, fmt.Errorf("%s: %w", operation, ErrCircuitOpen)
		}

		metrics.ExecutorCallsTotal.WithLabelValues(operation, "failed").Inc()
		slog.Error("Protected operation failed",
			"executor", ex.name,
			"operation", operation,
			"duration_ms", duration.Milliseconds(),
			"fault", category,
			"error", err)
		return zero, err
	}

	metrics.ExecutorCallsTotal.WithLabelValues(operation, "success").Inc()

	if duration > SlowOperationThreshold {
		ex.sink.Increment(metrics.SignalSlowOperation, operation)
		slog.Warn("Slow operation",
			"executor", ex.name,
			"operation", operation,
			"duration_ms", duration.Milliseconds(),
			"threshold_ms", SlowOperationThreshold.Milliseconds())
	}

	value, _ := raw.(T)
	return value, nil
}

// runAttempts bounds the retry loop with the configured call timeout. On
// timeout the attempt is abandoned: its context cancels, its eventual
// outcome is discarded, and the timeout is what charges the breaker.
func runAttempts[T any](ex *Executor, ctx context.Context, operation string, op func(context.Context) (T, error)) (T, error) {
	if ex.cfg.CallTimeout <= 0 {
		return runWithRetry(ex, ctx, op)
	}

	callCtx, cancel := context.WithTimeout(ctx, ex.cfg.CallTimeout)
	defer cancel()

	type outcome struct {
		value T
		err   error
	}

	done := make(chan outcome, 1)
	go func() {
		value, err := runWithRetry(ex, callCtx, op)
		done <- outcome{value: value, err: err}
	}()

	select {
	case out := <-done:
		return out.value, out.err
	case <-callCtx.Done():
		var zero T
		if errors.Is(callCtx.Err(), context.Canceled) {
			return zero, callCtx.Err()
		}
		return zero, fmt.Errorf("%s: %w after %s", operation, ErrTimeout, ex.cfg.CallTimeout)
	}
}

// runWithRetry re-invokes the operation on transient faults with linear
// backoff, aborting when the context is done.
func runWithRetry[T any](ex *Executor, ctx context.Context, op func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= ex.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * ex.cfg.RetryBackoff
			slog.Debug("Retrying operation",
				"executor", ex.name,
				"attempt", attempt,
				"backoff", backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return zero, ctx.Err()
			}
		}

		value, err := op(ctx)
		if err == nil {
			return value, nil
		}
		lastErr = err

		if !isTransient(err) {
			return zero, err
		}
	}

	return zero, fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, ex.cfg.MaxRetries+1, lastErr)
}

func (ex *Executor) recordRejection(operation string, cause error) {
	metrics.ExecutorCallsTotal.WithLabelValues(operation, "rejected").Inc()
	category := FaultCategory(cause)
	ex.sink.Increment(category, operation)
	slog.Warn("Operation rejected",
		"executor", ex.name,
		"operation", operation,
		"reason", category)
}

// isTransient reports whether a fault is worth retrying: store
// unavailability and network-level errors, judged by cause type.
func isTransient(err error) bool {
	if errors.Is(err, repository.ErrUnavailable) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// FaultCategory maps an executor fault to its metrics category by cause
// type, never by message text.
func FaultCategory(err error) string {
	switch {
	case errors.Is(err, ErrCircuitOpen),
		errors.Is(err, gobreaker.ErrOpenState),
		errors.Is(err, gobreaker.ErrTooManyRequests):
		return metrics.FaultCircuitOpen
	case errors.Is(err, ErrTimeout),
		errors.Is(err, ErrWaitTimeout),
		errors.Is(err, context.DeadlineExceeded):
		return metrics.FaultTimeout
	case errors.Is(err, ErrPoolSaturated),
		errors.Is(err, ErrRateLimited):
		return metrics.FaultResourceUnavailable
	case isTransient(err):
		return metrics.FaultTransientConnection
	default:
		return metrics.FaultOperation
	}
}
