package metrics

// Sink receives named counter increments from the execution core. Category
// identifies the fault kind or execution signal; source identifies the
// emitting operation or entity. Implementations are fire-and-forget and
// must never panic back into the caller.
type Sink interface {
	Increment(category, source string)
}

// PrometheusSink records increments into the package-level collectors.
type PrometheusSink struct{}

// NewSink returns the default Prometheus-backed sink.
func NewSink() Sink {
	return PrometheusSink{}
}

func (PrometheusSink) Increment(category, source string) {
	if category == SignalSlowOperation {
		ExecutorSlowOperations.WithLabelValues(source).Inc()
		return
	}
	ServiceFaults.WithLabelValues(category, source).Inc()
}
