// Package persist is the persistence collaborator: a JSON file holding the
// reminder set. Loading is best-effort (a missing file means an empty set)
// and saving is asynchronous through the Writer, so the in-memory model
// never waits on disk.
package persist

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/kerolus77/reminder-app/internal/domain"
)

// DefaultFileName is the reminder file used when none is configured.
const DefaultFileName = "reminders.json"

// timeLayout matches the on-disk trigger_time format.
const timeLayout = "2006-01-02 15:04"

// record is the on-disk shape of a reminder.
type record struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	TriggerTime string `json:"trigger_time"`
	IsActive    bool   `json:"is_active"`
}

// FileStore reads and writes the reminder file. Filesystem access goes
// through afero so tests run against an in-memory fs.
type FileStore struct {
	fs   afero.Fs
	path string
}

// NewFileStore creates a store over the given filesystem and path.
func NewFileStore(fs afero.Fs, path string) *FileStore {
	if path == "" {
		path = DefaultFileName
	}
	return &FileStore{fs: fs, path: path}
}

// LoadAll reads the reminder file. A missing file is not an error: it
// returns an empty set. Records with an unparseable id or trigger time are
// skipped with a log line rather than failing the whole load.
func (f *FileStore) LoadAll() ([]domain.Reminder, error) {
	data, err := afero.ReadFile(f.fs, f.path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("persist: no reminder file at %s, starting fresh", f.path)
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.path, err)
	}

	out := make([]domain.Reminder, 0, len(records))
	for _, rec := range records {
		id, err := uuid.Parse(rec.ID)
		if err != nil {
			log.Printf("persist: skipping record with bad id %q: %v", rec.ID, err)
			continue
		}
		trigger, err := time.ParseInLocation(timeLayout, rec.TriggerTime, time.Local)
		if err != nil {
			log.Printf("persist: skipping record %s with bad trigger time %q: %v", rec.ID, rec.TriggerTime, err)
			continue
		}
		out = append(out, domain.Reminder{
			ID:          id,
			Title:       rec.Title,
			Description: rec.Description,
			TriggerAt:   trigger,
			Active:      rec.IsActive,
		})
	}
	return out, nil
}

// SaveAll writes the full reminder set, replacing the file.
func (f *FileStore) SaveAll(reminders []domain.Reminder) error {
	records := make([]record, 0, len(reminders))
	for _, rec := range reminders {
		records = append(records, record{
			ID:          rec.ID.String(),
			Title:       rec.Title,
			Description: rec.Description,
			TriggerTime: rec.TriggerAt.Format(timeLayout),
			IsActive:    rec.Active,
		})
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal reminders: %w", err)
	}
	if err := afero.WriteFile(f.fs, f.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	return nil
}
