// Package dispatcher drains the notification queue and sequences delivery.
// It is the single consumer: one loop, one event at a time, and neither
// delivery side effect is awaited, so a slow alert or sound can never stall
// the queue.
package dispatcher

import (
	"context"
	"log"
	"time"

	"github.com/kerolus77/reminder-app/internal/domain"
)

// DefaultPopTimeout bounds each queue wait so the loop can observe shutdown.
const DefaultPopTimeout = time.Second

// DefaultDrainTimeout is the maximum time spent emptying buffered events
// during shutdown.
const DefaultDrainTimeout = 5 * time.Second

// Queue is the consumer side of the notification queue.
type Queue interface {
	Pop(ctx context.Context, timeout time.Duration) (domain.NotificationEvent, bool)
	TryPop() (domain.NotificationEvent, bool)
}

// AlertPresenter shows a notification to the user. Present must schedule
// the window construction onto the UI thread and return immediately.
type AlertPresenter interface {
	Present(event domain.NotificationEvent)
}

// SoundPlayer requests audio playback. PlayAsync is fire-and-forget;
// failures are the player's to log.
type SoundPlayer interface {
	PlayAsync()
}

// MetricsSink receives dispatcher observability updates.
type MetricsSink interface {
	NotificationDispatched(latency time.Duration)
}

// Config holds dispatcher options.
type Config struct {
	PopTimeout   time.Duration
	DrainTimeout time.Duration
}

// Dispatcher delivers firing events to the UI and audio collaborators.
type Dispatcher struct {
	config    Config
	queue     Queue
	presenter AlertPresenter
	player    SoundPlayer // optional, nil = silent
	metrics   MetricsSink // optional, nil = disabled
	clock     func() time.Time
}

// New creates a dispatcher consuming from queue and presenting through
// presenter.
func New(queue Queue, presenter AlertPresenter, config Config) *Dispatcher {
	if config.PopTimeout <= 0 {
		config.PopTimeout = DefaultPopTimeout
	}
	if config.DrainTimeout <= 0 {
		config.DrainTimeout = DefaultDrainTimeout
	}
	return &Dispatcher{
		config:    config,
		queue:     queue,
		presenter: presenter,
		clock:     time.Now,
	}
}

// WithSound attaches a sound player.
func (d *Dispatcher) WithSound(player SoundPlayer) *Dispatcher {
	d.player = player
	return d
}

// WithMetrics attaches a metrics sink.
func (d *Dispatcher) WithMetrics(sink MetricsSink) *Dispatcher {
	d.metrics = sink
	return d
}

// Run consumes events until ctx is cancelled, then logs whatever is still
// buffered within the drain timeout before returning.
func (d *Dispatcher) Run(ctx context.Context) {
	log.Println("dispatcher: started")

	for {
		if ctx.Err() != nil {
			d.drain()
			log.Println("dispatcher: stopped")
			return
		}

		event, ok := d.queue.Pop(ctx, d.config.PopTimeout)
		if !ok {
			continue
		}
		d.deliver(event)
	}
}

// drain empties events buffered before the shutdown signal. By the time
// drain runs the UI event loop has already exited, so presenting would
// queue windows that never appear. Drained events are logged instead.
func (d *Dispatcher) drain() {
	deadline := d.clock().Add(d.config.DrainTimeout)
	count := 0

	for d.clock().Before(deadline) {
		event, ok := d.queue.TryPop()
		if !ok {
			break
		}
		log.Printf("dispatcher: dropping undelivered %q during shutdown", event.Title)
		count++
	}

	if count > 0 {
		log.Printf("dispatcher: drained %d events", count)
	}
}

// deliver fans one event out to the collaborators. The presenter marshals
// onto the UI thread itself and the player runs in its own goroutine, so
// this returns without waiting on either.
func (d *Dispatcher) deliver(event domain.NotificationEvent) {
	if d.player != nil {
		d.player.PlayAsync()
	}
	d.presenter.Present(event)

	if d.metrics != nil && !event.FiredAt.IsZero() {
		d.metrics.NotificationDispatched(d.clock().Sub(event.FiredAt))
	}
	log.Printf("dispatcher: delivered %q", event.Title)
}
