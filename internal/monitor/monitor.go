// Package monitor implements the per-reminder watcher. One Monitor runs for
// each active reminder; it polls until the trigger instant passes, claims
// the firing through the store's transition guard, and pushes exactly one
// notification event on success.
package monitor

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/kerolus77/reminder-app/internal/domain"
)

// DefaultPollInterval bounds how late a firing can be observed barring
// system stalls.
const DefaultPollInterval = time.Second

// Store is the slice of the reminder store a monitor needs. SetActive must
// reject transitions to the already-held state with an error; that
// rejection is the duplicate-suppression guarantee.
type Store interface {
	Get(id uuid.UUID) (domain.Reminder, error)
	SetActive(id uuid.UUID, active bool) (domain.Reminder, error)
}

// Emitter accepts firing events. Push must never block.
type Emitter interface {
	Push(event domain.NotificationEvent)
}

// Outcome is the single terminal state of a monitor run.
type Outcome int

const (
	OutcomeCancelled Outcome = iota
	OutcomeFired
)

func (o Outcome) String() string {
	if o == OutcomeFired {
		return "fired"
	}
	return "cancelled"
}

// Config holds monitor options.
type Config struct {
	PollInterval time.Duration
}

// Monitor watches a single reminder. It holds only a copy of the id and
// trigger instant; the record itself stays in the store.
type Monitor struct {
	id           uuid.UUID
	triggerAt    time.Time
	store        Store
	emitter      Emitter
	pollInterval time.Duration
	clock        func() time.Time
}

// New creates a monitor for the given record.
func New(rec domain.Reminder, store Store, emitter Emitter, config Config) *Monitor {
	interval := config.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Monitor{
		id:           rec.ID,
		triggerAt:    rec.TriggerAt,
		store:        store,
		emitter:      emitter,
		pollInterval: interval,
		clock:        time.Now,
	}
}

// Run blocks until the monitor reaches its terminal outcome: the reminder
// fires, or the run is cancelled (context cancelled, reminder removed,
// reminder deactivated, or the firing race lost). An already past-due
// reminder fires on the first check without waiting for a tick.
func (m *Monitor) Run(ctx context.Context) Outcome {
	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	for {
		if outcome, done := m.check(); done {
			return outcome
		}

		select {
		case <-ctx.Done():
			log.Printf("monitor: %s cancelled", m.id)
			return OutcomeCancelled
		case <-ticker.C:
		}
	}
}

// check performs one poll step. done is false only while the reminder is
// still scheduled and not yet due.
func (m *Monitor) check() (Outcome, bool) {
	rec, err := m.store.Get(m.id)
	if err != nil {
		log.Printf("monitor: %s stopped, reminder gone", m.id)
		return OutcomeCancelled, true
	}
	if !rec.Active {
		log.Printf("monitor: %s stopped, reminder inactive", m.id)
		return OutcomeCancelled, true
	}

	now := m.clock()
	if now.Before(m.triggerAt) {
		return OutcomeCancelled, false
	}

	// The store transition is the mutual exclusion point: only the caller
	// that flips active true->false may enqueue. A concurrent removal or
	// edit makes SetActive fail here and the monitor exits silently.
	claimed, err := m.store.SetActive(m.id, false)
	if err != nil {
		log.Printf("monitor: %s lost firing race: %v", m.id, err)
		return OutcomeCancelled, true
	}

	m.emitter.Push(domain.NotificationEvent{
		Title:       claimed.Title,
		Description: claimed.Description,
		FiredAt:     now,
	})
	log.Printf("monitor: %s fired (trigger=%s)", m.id, m.triggerAt.Format(time.RFC3339))
	return OutcomeFired, true
}
