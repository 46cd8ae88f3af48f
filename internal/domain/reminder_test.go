package domain

import (
	"errors"
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewReminder_Valid(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	rec, err := NewReminder("dentist", "bring insurance card", now.Add(time.Hour), fixedClock(now))
	if err != nil {
		t.Fatalf("NewReminder failed: %v", err)
	}

	if rec.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("expected a generated ID")
	}
	if !rec.Active {
		t.Error("new reminder should be active")
	}
	if rec.Title != "dentist" {
		t.Errorf("Title = %q, want %q", rec.Title, "dentist")
	}
}

func TestNewReminder_EmptyTitle(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	_, err := NewReminder("", "desc", now.Add(time.Hour), fixedClock(now))
	if !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("expected ErrEmptyTitle, got: %v", err)
	}
}

func TestNewReminder_PastTrigger(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	_, err := NewReminder("late", "", now.Add(-time.Minute), fixedClock(now))
	if !errors.Is(err, ErrPastTrigger) {
		t.Errorf("expected ErrPastTrigger, got: %v", err)
	}
}

func TestNewReminder_ZeroTrigger(t *testing.T) {
	_, err := NewReminder("no time", "", time.Time{}, nil)
	if !errors.Is(err, ErrZeroTrigger) {
		t.Errorf("expected ErrZeroTrigger, got: %v", err)
	}
}

func TestReminder_Due(t *testing.T) {
	trigger := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := Reminder{TriggerAt: trigger}

	if rec.Due(trigger.Add(-time.Second)) {
		t.Error("reminder should not be due before the trigger instant")
	}
	if !rec.Due(trigger) {
		t.Error("reminder should be due exactly at the trigger instant")
	}
	if !rec.Due(trigger.Add(time.Hour)) {
		t.Error("reminder should be due after the trigger instant")
	}
}

func TestValidateEdit_AllowsEmptyDescription(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := Reminder{Title: "t", TriggerAt: now.Add(time.Minute), Active: true}

	if err := rec.ValidateEdit(now); err != nil {
		t.Errorf("ValidateEdit failed: %v", err)
	}
}
