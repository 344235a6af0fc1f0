package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tezhire/ultravox-integration/internal/domain/entities"
)

// WebhookRepository implements the webhook repository interface using GORM
type WebhookRepository struct {
	db *gorm.DB
}

// NewWebhookRepository creates a new webhook repository
func NewWebhookRepository(db *gorm.DB) *WebhookRepository {
	return &WebhookRepository{
		db: db,
	}
}

// Create persists a new webhook subscription
func (r *WebhookRepository) Create(ctx context.Context, subscription *entities.WebhookSubscription) error {
	if err := r.db.WithContext(ctx).Create(subscription).Error; err != nil {
		return fmt.Errorf("failed to create webhook subscription: %w", err)
	}
	return nil
}

// FindByWebhookID finds a subscription by its public webhook identifier
func (r *WebhookRepository) FindByWebhookID(ctx context.Context, webhookID string) (*entities.WebhookSubscription, error) {
	var subscription entities.WebhookSubscription
	if err := r.db.WithContext(ctx).Where("webhook_id = ?", webhookID).First(&subscription).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrWebhookNotFound
		}
		return nil, fmt.Errorf("failed to find webhook subscription: %w", err)
	}
	return &subscription, nil
}

// FindByEvent finds all subscriptions registered for the given event name
func (r *WebhookRepository) FindByEvent(ctx context.Context, event string) ([]*entities.WebhookSubscription, error) {
	var subscriptions []*entities.WebhookSubscription
	if err := r.db.WithContext(ctx).
		Where("events @> ?", fmt.Sprintf(`["%s"]`, event)).
		Find(&subscriptions).Error; err != nil {
		return nil, fmt.Errorf("failed to find webhook subscriptions by event: %w", err)
	}
	return subscriptions, nil
}
