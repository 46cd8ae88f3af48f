package domain

import "time"

// NotificationEvent is emitted exactly once when a reminder fires. It is an
// immutable snapshot; delivery must not need to reach back into the store.
type NotificationEvent struct {
	Title       string
	Description string

	// FiredAt is the instant the firing monitor won the store transition.
	// Used for logging and latency metrics only.
	FiredAt time.Time
}
