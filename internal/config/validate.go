package config

import (
	"fmt"
	"time"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:", len(e))
	for _, err := range e {
		msg += "\n  - " + err.Error()
	}
	return msg
}

// Validate checks the configuration for errors.
// Returns nil if valid, or ValidationErrors if invalid.
func Validate(cfg Config) error {
	var errs ValidationErrors

	if cfg.RemindersFile == "" {
		errs = append(errs, ValidationError{
			Field:   "REMINDERS_FILE",
			Message: "required",
		})
	}

	checkDuration := func(field, raw string) {
		d, err := time.ParseDuration(raw)
		if err != nil {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("invalid duration: %v", err),
			})
			return
		}
		if d <= 0 {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "must be positive",
			})
		}
	}

	checkDuration("POLL_INTERVAL", cfg.PollIntervalStr)
	checkDuration("QUEUE_POP_TIMEOUT", cfg.QueuePopTimeoutStr)
	checkDuration("DISPATCHER_DRAIN_TIMEOUT", cfg.DispatcherDrainTimeoutStr)
	checkDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeoutStr)

	// Zero disables auto-dismissal, so only negatives and garbage are errors.
	if d, err := time.ParseDuration(cfg.AlertDismissAfterStr); err != nil {
		errs = append(errs, ValidationError{
			Field:   "ALERT_DISMISS_AFTER",
			Message: fmt.Sprintf("invalid duration: %v", err),
		})
	} else if d < 0 {
		errs = append(errs, ValidationError{
			Field:   "ALERT_DISMISS_AFTER",
			Message: "must not be negative",
		})
	}

	if cfg.MetricsEnabled && cfg.MetricsAddr == "" {
		errs = append(errs, ValidationError{
			Field:   "METRICS_ADDR",
			Message: "required when METRICS_ENABLED is true",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
