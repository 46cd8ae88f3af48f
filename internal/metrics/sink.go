package metrics

import "time"

// Sink defines the interface for recording metrics.
// All methods are fire-and-forget: implementations MUST NOT block or
// propagate errors. If the metrics backend is unavailable, implementations
// log warnings and continue.
type Sink interface {
	// Supervisor metrics
	ReminderScheduled()
	MonitorOutcome(outcome string)

	// Queue metrics
	QueueDepthUpdate(depth int)
	NotificationEnqueued()

	// Dispatcher metrics
	NotificationDispatched(latency time.Duration)

	// Persistence metrics
	SaveCompleted(err error)
}

// Outcome constants for MonitorOutcome.
const (
	OutcomeFired     = "fired"
	OutcomeCancelled = "cancelled"
)
