package repositories

import (
	"context"

	"github.com/tezhire/ultravox-integration/internal/domain/entities"
)

// WebhookRepository persists webhook subscriptions
type WebhookRepository interface {
	Create(ctx context.Context, subscription *entities.WebhookSubscription) error
	FindByWebhookID(ctx context.Context, webhookID string) (*entities.WebhookSubscription, error)
	FindByEvent(ctx context.Context, event string) ([]*entities.WebhookSubscription, error)
}
