package models

import "time"

// NotificationKind distinguishes success from error advisories.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is a transient advisory message for the view. At most one is
// live process-wide; ExpiresAt is checked lazily on read.
type Notification struct {
	Message   string
	Kind      NotificationKind
	ExpiresAt time.Time
}
