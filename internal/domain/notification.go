package domain

import "time"

// Notification audiences. Backoffice roles share the admin feed, everyone
// else reads the customer feed.
const (
	NotificationAudienceAdmin    = "admin"
	NotificationAudienceCustomer = "customer"
)

type Notification struct {
	ID        int64     `json:"id"`
	Role      string    `json:"role"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationAudience maps a caller role onto the feed it reads.
func NotificationAudience(c Caller) string {
	if c.IsBackoffice() {
		return NotificationAudienceAdmin
	}
	return NotificationAudienceCustomer
}
