package notifications

import "time"

// Delivery statuses
const (
	StatusDelivered = "delivered"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
)

// DeliveryResult records one push attempt to editor sessions
type DeliveryResult struct {
	Channel      string    `json:"channel"`
	Target       string    `json:"target"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	AttemptedAt  time.Time `json:"attempted_at"`
}
