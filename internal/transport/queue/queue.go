// Package queue carries firing events from reminder monitors to the
// dispatcher. It is the only boundary between the two; no shared mutable
// state crosses it.
package queue

import (
	"context"
	"sync"
	"time"

	"github.com/kerolus77/reminder-app/internal/domain"
)

// MetricsSink receives queue observability updates. Implementations must be
// non-blocking and fire-and-forget.
type MetricsSink interface {
	QueueDepthUpdate(depth int)
	NotificationEnqueued()
}

// Option configures a Queue.
type Option func(*Queue)

// WithMetrics attaches a metrics sink.
func WithMetrics(sink MetricsSink) Option {
	return func(q *Queue) {
		q.metrics = sink
	}
}

// Queue is an unbounded FIFO of notification events, safe for many
// producers and one consumer. Push never blocks; the number of producers is
// bounded by the number of active reminders, so the lack of backpressure is
// acceptable.
type Queue struct {
	mu      sync.Mutex
	items   []domain.NotificationEvent
	wake    chan struct{}
	metrics MetricsSink
}

// New creates an empty queue.
func New(opts ...Option) *Queue {
	q := &Queue{
		wake: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Push appends an event. It always succeeds and never blocks, so a firing
// monitor is never stalled by a slow consumer.
func (q *Queue) Push(event domain.NotificationEvent) {
	q.mu.Lock()
	q.items = append(q.items, event)
	depth := len(q.items)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}

	if q.metrics != nil {
		q.metrics.NotificationEnqueued()
		q.metrics.QueueDepthUpdate(depth)
	}
}

// Pop removes and returns the oldest event. It blocks until an event is
// available, the timeout elapses, or ctx is cancelled; the second return is
// false in the latter two cases so the consumer can observe shutdown.
func (q *Queue) Pop(ctx context.Context, timeout time.Duration) (domain.NotificationEvent, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		if event, ok := q.TryPop(); ok {
			return event, true
		}

		select {
		case <-q.wake:
		case <-timer.C:
			return domain.NotificationEvent{}, false
		case <-ctx.Done():
			return domain.NotificationEvent{}, false
		}
	}
}

// TryPop removes and returns the oldest event without blocking.
func (q *Queue) TryPop() (domain.NotificationEvent, bool) {
	q.mu.Lock()
	if len(q.items) == 0 {
		q.mu.Unlock()
		return domain.NotificationEvent{}, false
	}
	event := q.items[0]
	q.items = q.items[1:]
	depth := len(q.items)
	q.mu.Unlock()

	// Another event may already be buffered; make sure a waiting consumer
	// is not left asleep after a wake signal was consumed for this one.
	if depth > 0 {
		select {
		case q.wake <- struct{}{}:
		default:
		}
	}

	if q.metrics != nil {
		q.metrics.QueueDepthUpdate(depth)
	}
	return event, true
}

// Len returns the number of buffered events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
