// Package store holds the in-memory reminder set. It is the single source
// of truth: every mutation from any goroutine goes through one mutex, and
// SetActive's transition guard is what prevents a reminder from firing twice.
package store

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/kerolus77/reminder-app/internal/domain"
)

var (
	// ErrNotFound is returned when an operation references an id that is
	// not in the store.
	ErrNotFound = errors.New("reminder not found")

	// ErrNoTransition is returned by SetActive when the reminder is
	// already in the requested state. Monitors rely on this to suppress
	// duplicate notifications.
	ErrNoTransition = errors.New("reminder already in requested state")
)

// Option configures a Store.
type Option func(*Store)

// WithOnChange registers a listener invoked after every successful mutation.
// The listener runs outside the store lock and must not block; the
// persistence writer uses it to request asynchronous saves.
func WithOnChange(fn func()) Option {
	return func(s *Store) {
		s.onChange = fn
	}
}

// Store is a mutex-guarded map of reminder id to record.
type Store struct {
	mu        sync.Mutex
	reminders map[uuid.UUID]domain.Reminder
	onChange  func()
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		reminders: make(map[uuid.UUID]domain.Reminder),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upsert inserts or replaces the record under its id.
func (s *Store) Upsert(rec domain.Reminder) {
	s.mu.Lock()
	s.reminders[rec.ID] = rec
	s.mu.Unlock()

	s.notify()
}

// Get returns a copy of the record, or ErrNotFound.
func (s *Store) Get(id uuid.UUID) (domain.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.reminders[id]
	if !ok {
		return domain.Reminder{}, ErrNotFound
	}
	return rec, nil
}

// Remove deletes the record and returns it, or ErrNotFound. A monitor that
// races the removal sees ErrNotFound from its SetActive attempt and exits
// without enqueueing.
func (s *Store) Remove(id uuid.UUID) (domain.Reminder, error) {
	s.mu.Lock()
	rec, ok := s.reminders[id]
	if !ok {
		s.mu.Unlock()
		return domain.Reminder{}, ErrNotFound
	}
	delete(s.reminders, id)
	s.mu.Unlock()

	s.notify()
	return rec, nil
}

// SetActive flips the active flag and returns the updated record. It returns
// ErrNotFound for unknown ids and ErrNoTransition when the flag already has
// the requested value. Exactly one caller can win the true->false transition
// for a given record; that caller is the one allowed to enqueue the
// notification.
func (s *Store) SetActive(id uuid.UUID, active bool) (domain.Reminder, error) {
	s.mu.Lock()
	rec, ok := s.reminders[id]
	if !ok {
		s.mu.Unlock()
		return domain.Reminder{}, ErrNotFound
	}
	if rec.Active == active {
		s.mu.Unlock()
		return rec, ErrNoTransition
	}
	rec.Active = active
	s.reminders[id] = rec
	s.mu.Unlock()

	s.notify()
	return rec, nil
}

// List returns a point-in-time snapshot of all records, ordered by trigger
// time (ties broken by id) so the UI renders a stable list.
func (s *Store) List() []domain.Reminder {
	s.mu.Lock()
	out := make([]domain.Reminder, 0, len(s.reminders))
	for _, rec := range s.reminders {
		out = append(out, rec)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].TriggerAt.Equal(out[j].TriggerAt) {
			return out[i].TriggerAt.Before(out[j].TriggerAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reminders)
}

func (s *Store) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}
