package config

import (
	"encoding/json"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.RemindersFile != "reminders.json" {
		t.Errorf("RemindersFile = %q, want %q", cfg.RemindersFile, "reminders.json")
	}
	if cfg.PollInterval != time.Second {
		t.Errorf("PollInterval = %s, want 1s", cfg.PollInterval)
	}
	if cfg.QueuePopTimeout != time.Second {
		t.Errorf("QueuePopTimeout = %s, want 1s", cfg.QueuePopTimeout)
	}
	if cfg.DispatcherDrainTimeout != 5*time.Second {
		t.Errorf("DispatcherDrainTimeout = %s, want 5s", cfg.DispatcherDrainTimeout)
	}
	if cfg.AlertDismissAfter != 5*time.Second {
		t.Errorf("AlertDismissAfter = %s, want 5s", cfg.AlertDismissAfter)
	}
	if !cfg.SoundEnabled {
		t.Error("SoundEnabled should default to true")
	}
	if cfg.MetricsEnabled {
		t.Error("MetricsEnabled should default to false")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("REMINDERS_FILE", "/tmp/r.json")
	t.Setenv("POLL_INTERVAL", "250ms")
	t.Setenv("SOUND_ENABLED", "false")
	t.Setenv("METRICS_ENABLED", "true")

	cfg := Load()

	if cfg.RemindersFile != "/tmp/r.json" {
		t.Errorf("RemindersFile = %q, want override", cfg.RemindersFile)
	}
	if cfg.PollInterval != 250*time.Millisecond {
		t.Errorf("PollInterval = %s, want 250ms", cfg.PollInterval)
	}
	if cfg.SoundEnabled {
		t.Error("SoundEnabled should be false")
	}
	if !cfg.MetricsEnabled {
		t.Error("MetricsEnabled should be true")
	}
}

func TestLoad_BoolParsing(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"0", false},
		{"1", true},
		{"FALSE", false},
		{"t", true},
		{"yes", true},     // unparseable, falls back to the default
		{"garbage", true}, // unparseable, falls back to the default
	}
	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			t.Setenv("SOUND_ENABLED", tc.value)
			cfg := Load()
			if cfg.SoundEnabled != tc.want {
				t.Errorf("SOUND_ENABLED=%q: SoundEnabled = %v, want %v", tc.value, cfg.SoundEnabled, tc.want)
			}
		})
	}
}

func TestConfig_JSON(t *testing.T) {
	cfg := Load()

	data, err := cfg.JSON()
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["poll_interval"] != "1s" {
		t.Errorf("poll_interval = %v, want %q", decoded["poll_interval"], "1s")
	}
}
