package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.ledgerline.dev/internal/common/metrics"
	"go.ledgerline.dev/internal/common/repository"
)

// Runner converts the persistence fault taxonomy into Results for one
// entity's operations. Entity services share one runner per entity; it
// carries no per-call state.
type Runner struct {
	entity string
	sink   metrics.Sink
}

// NewRunner creates a runner for an entity's operations. The entity name
// becomes the source identifier on fault counters.
func NewRunner(entity string, sink metrics.Sink) *Runner {
	return &Runner{entity: entity, sink: sink}
}

// Entity returns the entity name used as the metrics source.
func (r *Runner) Entity() string {
	return r.entity
}

// RunOperation executes a unit of work and converts any fault into the
// matching result variant. Classification is total: every error and every
// recovered panic lands in exactly one variant, in a fixed priority order.
// entityID identifies the operation's subject in logs and may be nil.
func RunOperation[R any](
	ctx context.Context,
	r *Runner,
	operation string,
	entityID any,
	work func(context.Context) (R, error),
) (result Result[R]) {
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("Recovered panic in operation",
				"entity", r.entity,
				"operation", operation,
				"entity_id", entityID,
				"panic", rec)
			r.sink.Increment(metrics.FaultUnclassified, r.entity)
			metrics.ServiceOperationsTotal.WithLabelValues(r.entity, operation, "business_error").Inc()
			result = BusinessError[R](
				fmt.Sprintf("unexpected failure in %s", operation), CodeBusinessLogicError)
		}
	}()

	value, err := work(ctx)
	if err == nil {
		metrics.ServiceOperationsTotal.WithLabelValues(r.entity, operation, "success").Inc()
		return Success(value)
	}

	return classify[R](r, operation, entityID, time.Since(start), err)
}

// classify maps a unit-of-work error onto a result variant in priority
// order: not-found, field violation, duplicate key, invalid state, then
// everything else as a system failure.
func classify[R any](r *Runner, operation string, entityID any, duration time.Duration, err error) Result[R] {
	var violation *repository.ConstraintViolation

	switch {
	case errors.Is(err, repository.ErrNotFound):
		slog.Warn("Entity not found",
			"entity", r.entity,
			"operation", operation,
			"entity_id", entityID,
			"duration_ms", duration.Milliseconds())
		metrics.ServiceOperationsTotal.WithLabelValues(r.entity, operation, "not_found").Inc()
		return NotFound[R](notFoundMessage(r.entity, entityID))

	case errors.As(err, &violation):
		slog.Error("Validation failed",
			"entity", r.entity,
			"operation", operation,
			"entity_id", entityID,
			"error", err)
		r.sink.Increment(metrics.FaultValidation, r.entity)
		metrics.ServiceOperationsTotal.WithLabelValues(r.entity, operation, "validation_error").Inc()
		return ValidationError[R](fieldErrorsFrom(violation))

	case errors.Is(err, repository.ErrDuplicateKey):
		slog.Error("Data integrity violation",
			"entity", r.entity,
			"operation", operation,
			"entity_id", entityID,
			"error", err)
		r.sink.Increment(metrics.FaultDataIntegrity, r.entity)
		metrics.ServiceOperationsTotal.WithLabelValues(r.entity, operation, "business_error").Inc()
		return BusinessError[R](
			fmt.Sprintf("%s violates data integrity: %v", r.entity, err), CodeDataIntegrityViolation)

	case errors.Is(err, ErrInvalidState):
		slog.Error("Business rule violation",
			"entity", r.entity,
			"operation", operation,
			"entity_id", entityID,
			"error", err)
		r.sink.Increment(metrics.FaultBusinessRule, r.entity)
		metrics.ServiceOperationsTotal.WithLabelValues(r.entity, operation, "business_error").Inc()
		return BusinessError[R](err.Error(), CodeBusinessLogicError)

	default:
		slog.Error("Operation failed",
			"entity", r.entity,
			"operation", operation,
			"entity_id", entityID,
			"duration_ms", duration.Milliseconds(),
			"error", err)
		r.sink.Increment(metrics.FaultSystem, r.entity)
		metrics.ServiceOperationsTotal.WithLabelValues(r.entity, operation, "system_error").Inc()
		return SystemError[R](err)
	}
}

// fieldErrorsFrom extracts the field mapping from a violation. Extraction
// never fails: a violation with no usable detail falls back to a single
// generic entry.
func fieldErrorsFrom(v *repository.ConstraintViolation) map[string]string {
	if v == nil || len(v.Violations) == 0 {
		return map[string]string{"validation": "Validation failed"}
	}
	return v.Violations
}

func notFoundMessage(entity string, entityID any) string {
	if entityID == nil {
		return fmt.Sprintf("%s not found", entity)
	}
	return fmt.Sprintf("%s not found: %v", entity, entityID)
}
