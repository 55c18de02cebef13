package resilience

import "errors"

// Executor fault sentinels. Callers classify these by cause type with
// errors.Is, never by message text.
var (
	// ErrCircuitOpen is returned when the breaker rejects a call without
	// invoking the operation.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrTimeout is returned when the overall attempt, retries included,
	// exceeds the configured call timeout.
	ErrTimeout = errors.New("operation timed out")

	// ErrRetriesExhausted wraps the last fault after all attempts failed.
	ErrRetriesExhausted = errors.New("retries exhausted")

	// ErrPoolSaturated is returned when the executor pool rejects a task.
	ErrPoolSaturated = errors.New("executor pool saturated")

	// ErrRateLimited is returned when the executor rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrWaitTimeout is returned by Execute when the blocking wait
	// deadline expires before the background attempt settles.
	ErrWaitTimeout = errors.New("result wait timed out")
)
