package metrics

import "time"

// NoopSink is a no-op implementation of Sink.
// Used when metrics are disabled to avoid nil checks.
type NoopSink struct{}

// NewNoopSink returns a no-op metrics sink.
func NewNoopSink() *NoopSink {
	return &NoopSink{}
}

func (n *NoopSink) ReminderScheduled()                           {}
func (n *NoopSink) MonitorOutcome(outcome string)                {}
func (n *NoopSink) QueueDepthUpdate(depth int)                   {}
func (n *NoopSink) NotificationEnqueued()                        {}
func (n *NoopSink) NotificationDispatched(latency time.Duration) {}
func (n *NoopSink) SaveCompleted(err error)                      {}
