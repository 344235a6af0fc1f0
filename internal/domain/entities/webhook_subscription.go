package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ValidWebhookEvents is the fixed vocabulary of subscribable event names
var ValidWebhookEvents = []string{
	"interview.created",
	"interview.started",
	"interview.completed",
	"interview.cancelled",
	"interview.error",
	"results.available",
}

// IsValidWebhookEvent reports whether name belongs to the event vocabulary
func IsValidWebhookEvent(name string) bool {
	for _, event := range ValidWebhookEvents {
		if event == name {
			return true
		}
	}
	return false
}

// WebhookSubscription is a registered webhook target. Secret is used to sign
// deliveries and is never echoed back to the caller.
type WebhookSubscription struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	WebhookID string         `json:"webhook_id" gorm:"type:varchar(255);uniqueIndex;not null"`
	URL       string         `json:"url" gorm:"type:text;not null"`
	Secret    string         `json:"-" gorm:"type:text;not null"`
	Events    datatypes.JSON `json:"events" gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}
