package main

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/kerolus77/reminder-app/internal/persist"
)

func TestLoadReminders_CorruptFileStartsFresh(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "reminders.json", []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	records := loadReminders(persist.NewFileStore(fs, "reminders.json"))
	if len(records) != 0 {
		t.Fatalf("corrupt file should yield a fresh start, got %d records", len(records))
	}
}

func TestLoadReminders_MissingFileStartsFresh(t *testing.T) {
	fs := afero.NewMemMapFs()

	records := loadReminders(persist.NewFileStore(fs, "reminders.json"))
	if len(records) != 0 {
		t.Fatalf("missing file should yield a fresh start, got %d records", len(records))
	}
}

func TestLoadReminders_ValidFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := `[{"id": "0d9f9e7c-4b2a-4f3e-9a1d-2c8b5e6f7a80", "title": "keep", "description": "", "trigger_time": "2030-06-10 14:30", "is_active": true}]`
	if err := afero.WriteFile(fs, "reminders.json", []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	records := loadReminders(persist.NewFileStore(fs, "reminders.json"))
	if len(records) != 1 {
		t.Fatalf("loaded %d records, want 1", len(records))
	}
	if records[0].Title != "keep" {
		t.Errorf("Title = %q, want %q", records[0].Title, "keep")
	}
}
