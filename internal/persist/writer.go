package persist

import (
	"context"
	"log"

	"github.com/kerolus77/reminder-app/internal/domain"
)

// Saver writes the full reminder set.
type Saver interface {
	SaveAll(reminders []domain.Reminder) error
}

// Lister snapshots the current reminder set. The writer pulls a fresh
// snapshot at save time, so coalesced requests always persist the latest
// state.
type Lister interface {
	List() []domain.Reminder
}

// MetricsSink receives persistence observability updates.
type MetricsSink interface {
	SaveCompleted(err error)
}

// Writer decouples store mutations from disk I/O. Request is non-blocking
// and coalescing: any number of mutations between saves collapse into one
// write. Save failures are logged and reported through the error hook; they
// never roll back the in-memory model.
type Writer struct {
	saver   Saver
	lister  Lister
	dirty   chan struct{}
	metrics MetricsSink // optional, nil = disabled
	onError func(error) // optional, surfaces a non-blocking warning
}

// NewWriter creates a writer saving lister snapshots through saver.
func NewWriter(saver Saver, lister Lister) *Writer {
	return &Writer{
		saver:  saver,
		lister: lister,
		dirty:  make(chan struct{}, 1),
	}
}

// WithMetrics attaches a metrics sink.
func (w *Writer) WithMetrics(sink MetricsSink) *Writer {
	w.metrics = sink
	return w
}

// WithOnError attaches a hook called with each save failure.
func (w *Writer) WithOnError(fn func(error)) *Writer {
	w.onError = fn
	return w
}

// Request marks the reminder set dirty. It never blocks; wire it as the
// store's change listener.
func (w *Writer) Request() {
	select {
	case w.dirty <- struct{}{}:
	default:
	}
}

// Run processes save requests until ctx is cancelled, then performs one
// final save so firings and edits made just before shutdown reach disk.
func (w *Writer) Run(ctx context.Context) {
	log.Println("persist: writer started")

	for {
		select {
		case <-ctx.Done():
			w.save()
			log.Println("persist: writer stopped")
			return
		case <-w.dirty:
			w.save()
		}
	}
}

func (w *Writer) save() {
	err := w.saver.SaveAll(w.lister.List())
	if err != nil {
		log.Printf("persist: save failed: %v", err)
		if w.onError != nil {
			w.onError(err)
		}
	}
	if w.metrics != nil {
		w.metrics.SaveCompleted(err)
	}
}
