// Package notify implements the single-slot notification channel surfaced
// after user-visible operations.
package notify

import (
	"time"

	"github.com/dkalachov/filevault/internal/models"
	"github.com/dkalachov/filevault/internal/timex"
)

// notificationTTL is how long a posted notification stays current.
// Expiry is lazy: nothing fires when the TTL elapses, the notification just
// stops being returned.
const notificationTTL = 3 * time.Second

// Channel holds at most one notification; posting replaces whatever is
// showing. All calls come from a single control thread, so there is no
// locking.
type Channel struct {
	clock   timex.Clock
	current *models.Notification
}

func NewChannel(clock timex.Clock) *Channel {
	return &Channel{clock: clock}
}

// Post replaces the current notification.
func (c *Channel) Post(message string, kind models.NotificationKind) {
	c.current = &models.Notification{
		Message:   message,
		Kind:      kind,
		ExpiresAt: c.clock.Now().Add(notificationTTL),
	}
}

// Success posts a success notification.
func (c *Channel) Success(message string) {
	c.Post(message, models.NotificationSuccess)
}

// Error posts an error notification.
func (c *Channel) Error(message string) {
	c.Post(message, models.NotificationError)
}

// Current returns a copy of the live notification, or nil when there is none
// or the last one has expired.
func (c *Channel) Current() *models.Notification {
	if c.current == nil {
		return nil
	}
	if !c.clock.Now().Before(c.current.ExpiresAt) {
		c.current = nil
		return nil
	}
	n := *c.current
	return &n
}

// Dismiss clears the current notification immediately.
func (c *Channel) Dismiss() {
	c.current = nil
}
