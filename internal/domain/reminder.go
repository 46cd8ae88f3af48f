package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle  = errors.New("reminder title must not be empty")
	ErrZeroTrigger = errors.New("reminder trigger time must be set")
	ErrPastTrigger = errors.New("reminder trigger time is in the past")
)

// Reminder is a single scheduled reminder. The ID is assigned at creation
// and never changes; everything else is mutated only through the store.
type Reminder struct {
	ID          uuid.UUID
	Title       string
	Description string

	// TriggerAt is the absolute instant the reminder should fire.
	TriggerAt time.Time

	// Active reports whether the reminder may still fire. An inactive
	// reminder never produces a notification.
	Active bool
}

// NewReminder validates the input fields and builds an active reminder with
// a fresh ID. The clock is injectable so the past-trigger check is testable.
func NewReminder(title, description string, triggerAt time.Time, clock func() time.Time) (Reminder, error) {
	if clock == nil {
		clock = time.Now
	}

	rec := Reminder{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		TriggerAt:   triggerAt,
		Active:      true,
	}

	if err := rec.validate(clock()); err != nil {
		return Reminder{}, err
	}
	return rec, nil
}

// ValidateEdit checks an edited reminder the same way NewReminder checks a
// new one. The ID is kept as-is.
func (r Reminder) ValidateEdit(now time.Time) error {
	return r.validate(now)
}

func (r Reminder) validate(now time.Time) error {
	if r.Title == "" {
		return ErrEmptyTitle
	}
	if r.TriggerAt.IsZero() {
		return ErrZeroTrigger
	}
	if r.TriggerAt.Before(now) {
		return ErrPastTrigger
	}
	return nil
}

// Due reports whether the reminder's trigger instant has passed.
func (r Reminder) Due(now time.Time) bool {
	return !now.Before(r.TriggerAt)
}
