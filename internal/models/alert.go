package models

import (
	"time"

	"github.com/google/uuid"
)

type AlertType string

const (
	AlertTypeLowStock  AlertType = "low_stock"
	AlertTypeLowRating AlertType = "low_rating"
)

// Alert is a structured warning emitted when a metric crosses a configured
// threshold. Timestamp is generation time, not the time of the underlying
// event.
type Alert struct {
	ID        uuid.UUID `json:"id"`
	Type      AlertType `json:"type"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
	Timestamp string    `json:"timestamp"`
}

func NewAlert(alertType AlertType, message string) Alert {
	return Alert{
		ID:        uuid.New(),
		Type:      alertType,
		Message:   message,
		Severity:  "warning",
		Timestamp: time.Now().Format(time.RFC3339),
	}
}
