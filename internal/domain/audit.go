package domain

import "time"

// Audit action tags.
const (
	ActionPaymentCreate         = "payment.create"
	ActionPaymentPixConfirm     = "payment.pix_confirm"
	ActionNotificationsMarkRead = "notifications.mark_read"
)

// ActivityRecord is one row of the persistent audit trail.
type ActivityRecord struct {
	ID        string                 `json:"id"`
	UserEmail string                 `json:"user_email"`
	Action    string                 `json:"action"`
	Entity    string                 `json:"entity"`
	EntityID  string                 `json:"entity_id"`
	ClientIP  string                 `json:"client_ip,omitempty"`
	UserAgent string                 `json:"user_agent,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// RequestMeta carries the client details handlers collect for auditing.
type RequestMeta struct {
	ClientIP  string
	UserAgent string
}
