// Package supervisor owns monitor lifecycles. It spawns one monitor per
// active reminder on create/load, cancels it on edit/removal, enforces at
// most one running monitor per reminder id, and coordinates shutdown.
package supervisor

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kerolus77/reminder-app/internal/domain"
	"github.com/kerolus77/reminder-app/internal/monitor"
)

// ErrAlreadyWatched is returned when a monitor is already running for the
// reminder id.
var ErrAlreadyWatched = errors.New("monitor already running for reminder")

// ErrStopped is returned once Shutdown has begun.
var ErrStopped = errors.New("supervisor is shut down")

// Store is the store surface the supervisor and its monitors need.
type Store interface {
	Upsert(rec domain.Reminder)
	Get(id uuid.UUID) (domain.Reminder, error)
	Remove(id uuid.UUID) (domain.Reminder, error)
	SetActive(id uuid.UUID, active bool) (domain.Reminder, error)
}

// MetricsSink receives supervisor observability updates.
type MetricsSink interface {
	ReminderScheduled()
	MonitorOutcome(outcome string)
}

// Config holds supervisor options.
type Config struct {
	// PollInterval is handed to every spawned monitor.
	PollInterval time.Duration

	// ShutdownTimeout bounds the graceful wait for monitors on Shutdown.
	ShutdownTimeout time.Duration
}

type watcher struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Supervisor tracks one watcher handle per scheduled reminder.
type Supervisor struct {
	config  Config
	store   Store
	emitter monitor.Emitter
	metrics MetricsSink
	clock   func() time.Time

	baseCtx   context.Context
	cancelAll context.CancelFunc

	mu       sync.Mutex
	watchers map[uuid.UUID]*watcher
	stopped  bool
	wg       sync.WaitGroup
}

// New creates a supervisor. Monitors it spawns push firing events to the
// emitter.
func New(s Store, emitter monitor.Emitter, config Config) *Supervisor {
	if config.PollInterval <= 0 {
		config.PollInterval = monitor.DefaultPollInterval
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = 5 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Supervisor{
		config:    config,
		store:     s,
		emitter:   emitter,
		clock:     time.Now,
		baseCtx:   ctx,
		cancelAll: cancel,
		watchers:  make(map[uuid.UUID]*watcher),
	}
}

// WithMetrics attaches a metrics sink.
func (s *Supervisor) WithMetrics(sink MetricsSink) *Supervisor {
	s.metrics = sink
	return s
}

// Load seeds the store from persisted records and starts monitors for the
// active ones. Records whose trigger instant already passed are normalized
// to inactive and never fire.
func (s *Supervisor) Load(records []domain.Reminder) {
	now := s.clock()
	started := 0

	for _, rec := range records {
		if rec.Active && rec.Due(now) {
			rec.Active = false
		}
		s.store.Upsert(rec)

		if !rec.Active {
			continue
		}
		if err := s.watch(rec); err != nil {
			log.Printf("supervisor: load: %s not watched: %v", rec.ID, err)
			continue
		}
		started++
	}

	log.Printf("supervisor: loaded %d reminders, watching %d", len(records), started)
}

// Create stores a new reminder and starts its monitor.
func (s *Supervisor) Create(rec domain.Reminder) error {
	s.store.Upsert(rec)
	if !rec.Active {
		return nil
	}
	return s.watch(rec)
}

// Update applies an edit. Any monitor still running for the previous
// schedule is cancelled and waited out before the edited record is stored,
// so a stale monitor can never fire for the new schedule. The edited record
// is reset to active.
func (s *Supervisor) Update(rec domain.Reminder) error {
	s.unwatch(rec.ID, true)

	rec.Active = true
	s.store.Upsert(rec)
	return s.watch(rec)
}

// Remove deletes the reminder and cancels its monitor. The store removal
// happens first: it is the atomicity point, so a monitor racing its own
// deadline observes NotFound and exits without enqueueing.
func (s *Supervisor) Remove(id uuid.UUID) error {
	if _, err := s.store.Remove(id); err != nil {
		return err
	}
	s.unwatch(id, false)
	return nil
}

// Watching reports whether a monitor handle is live for the id.
func (s *Supervisor) Watching(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.watchers[id]
	return ok
}

// WatcherCount returns the number of live monitor handles.
func (s *Supervisor) WatcherCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.watchers)
}

// Shutdown cancels every monitor and waits up to ShutdownTimeout for them
// to exit. It is the only coordinated multi-component teardown point.
func (s *Supervisor) Shutdown() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.mu.Unlock()

	log.Println("supervisor: stopping monitors...")
	s.cancelAll()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("supervisor: all monitors stopped")
	case <-time.After(s.config.ShutdownTimeout):
		log.Printf("supervisor: shutdown timeout after %s, %d monitors still running",
			s.config.ShutdownTimeout, s.WatcherCount())
	}
}

// watch spawns a monitor goroutine and records its handle. At most one
// handle may exist per id.
func (s *Supervisor) watch(rec domain.Reminder) error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return ErrStopped
	}
	if _, exists := s.watchers[rec.ID]; exists {
		s.mu.Unlock()
		return ErrAlreadyWatched
	}

	ctx, cancel := context.WithCancel(s.baseCtx)
	w := &watcher{cancel: cancel, done: make(chan struct{})}
	s.watchers[rec.ID] = w
	s.wg.Add(1)
	s.mu.Unlock()

	m := monitor.New(rec, s.store, s.emitter, monitor.Config{PollInterval: s.config.PollInterval})

	go func() {
		defer s.wg.Done()
		defer close(w.done)
		defer s.forget(rec.ID, w)
		defer cancel()

		// A fault in one monitor must not take down the supervisor or
		// its siblings.
		defer func() {
			if r := recover(); r != nil {
				log.Printf("monitor: %s panic: %v", rec.ID, r)
				if s.metrics != nil {
					s.metrics.MonitorOutcome(monitor.OutcomeCancelled.String())
				}
			}
		}()

		outcome := m.Run(ctx)
		if s.metrics != nil {
			s.metrics.MonitorOutcome(outcome.String())
		}
	}()

	if s.metrics != nil {
		s.metrics.ReminderScheduled()
	}
	return nil
}

// unwatch cancels the monitor for id if one is running. With wait set it
// blocks until the goroutine has fully exited, which Update relies on to
// keep old-schedule firings out of the new schedule.
func (s *Supervisor) unwatch(id uuid.UUID, wait bool) {
	s.mu.Lock()
	w, ok := s.watchers[id]
	s.mu.Unlock()
	if !ok {
		return
	}

	w.cancel()
	if wait {
		<-w.done
	}
}

// forget drops the handle entry, but only if it still belongs to this run.
// A replacement monitor registered after an Update must not be evicted by
// the old goroutine's cleanup.
func (s *Supervisor) forget(id uuid.UUID, w *watcher) {
	s.mu.Lock()
	if current, ok := s.watchers[id]; ok && current == w {
		delete(s.watchers, id)
	}
	s.mu.Unlock()
}
