package config

import (
	"encoding/json"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the reminderd application.
// Values are loaded from environment variables; see the usage text in
// cmd/reminderd for the full list.
type Config struct {
	RemindersFile string `json:"reminders_file"`

	PollInterval    time.Duration `json:"-"`
	PollIntervalStr string        `json:"poll_interval"`

	QueuePopTimeout    time.Duration `json:"-"`
	QueuePopTimeoutStr string        `json:"queue_pop_timeout"`

	DispatcherDrainTimeout    time.Duration `json:"-"`
	DispatcherDrainTimeoutStr string        `json:"dispatcher_drain_timeout"`

	ShutdownTimeout    time.Duration `json:"-"`
	ShutdownTimeoutStr string        `json:"shutdown_timeout"`

	AlertDismissAfter    time.Duration `json:"-"`
	AlertDismissAfterStr string        `json:"alert_dismiss_after"`

	SoundEnabled bool   `json:"sound_enabled"`
	SoundFile    string `json:"sound_file"`

	MetricsEnabled bool   `json:"metrics_enabled"`
	MetricsAddr    string `json:"metrics_addr"`
	MetricsPath    string `json:"metrics_path"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	cfg := Config{
		RemindersFile:             getenv("REMINDERS_FILE", "reminders.json"),
		PollIntervalStr:           getenv("POLL_INTERVAL", "1s"),
		QueuePopTimeoutStr:        getenv("QUEUE_POP_TIMEOUT", "1s"),
		DispatcherDrainTimeoutStr: getenv("DISPATCHER_DRAIN_TIMEOUT", "5s"),
		ShutdownTimeoutStr:        getenv("SHUTDOWN_TIMEOUT", "5s"),
		AlertDismissAfterStr:      getenv("ALERT_DISMISS_AFTER", "5s"),
		SoundEnabled:              getenvBool("SOUND_ENABLED", true),
		SoundFile:                 getenv("SOUND_FILE", "notification_sound.wav"),
		MetricsEnabled:            getenvBool("METRICS_ENABLED", false),
		MetricsAddr:               getenv("METRICS_ADDR", "127.0.0.1:9090"),
		MetricsPath:               getenv("METRICS_PATH", "/metrics"),
	}

	// Parse durations; validation is handled separately by Validate().
	if d, err := time.ParseDuration(cfg.PollIntervalStr); err == nil {
		cfg.PollInterval = d
	}
	if d, err := time.ParseDuration(cfg.QueuePopTimeoutStr); err == nil {
		cfg.QueuePopTimeout = d
	}
	if d, err := time.ParseDuration(cfg.DispatcherDrainTimeoutStr); err == nil {
		cfg.DispatcherDrainTimeout = d
	}
	if d, err := time.ParseDuration(cfg.ShutdownTimeoutStr); err == nil {
		cfg.ShutdownTimeout = d
	}
	if d, err := time.ParseDuration(cfg.AlertDismissAfterStr); err == nil {
		cfg.AlertDismissAfter = d
	}

	return cfg
}

// getenv returns the environment value for key, or fallback when unset or
// empty.
func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getenvBool parses the environment value for key with strconv.ParseBool,
// so "1", "t", "false" and friends all work. Unset or unparseable values
// fall back.
func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// JSON returns the effective configuration as indented JSON.
func (c Config) JSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}
