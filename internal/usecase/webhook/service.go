package webhook

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/tezhire/ultravox-integration/errors"
	dto "github.com/tezhire/ultravox-integration/internal/adapter/dto/webhook"
	"github.com/tezhire/ultravox-integration/internal/domain/entities"
	"github.com/tezhire/ultravox-integration/internal/domain/repositories"
)

// Service registers webhook subscriptions
type Service interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
}

// WebhookService implements Service
type WebhookService struct {
	webhookRepo repositories.WebhookRepository
	logger      *zap.Logger
}

// NewWebhookService creates a new webhook service
func NewWebhookService(webhookRepo repositories.WebhookRepository, logger *zap.Logger) *WebhookService {
	return &WebhookService{
		webhookRepo: webhookRepo,
		logger:      logger,
	}
}

// Register validates and persists a webhook subscription. Field presence is
// checked in order with the first failure winning; the event vocabulary
// check instead accumulates every unrecognized name.
func (s *WebhookService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if req.URL == "" {
		return nil, apperrors.ErrInvalidArgument("Webhook URL is required")
	}
	if req.Secret == "" {
		return nil, apperrors.ErrInvalidArgument("Webhook secret is required for security")
	}
	if len(req.Events) == 0 {
		return nil, apperrors.ErrInvalidArgument("At least one event type must be specified")
	}

	var invalid []string
	for _, event := range req.Events {
		if !entities.IsValidWebhookEvent(event) {
			invalid = append(invalid, event)
		}
	}
	if len(invalid) > 0 {
		return nil, apperrors.ErrInvalidWebhookEvents(invalid)
	}

	events, err := json.Marshal(req.Events)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}

	subscription := &entities.WebhookSubscription{
		ID:        uuid.New(),
		WebhookID: "webhook-" + uuid.New().String(),
		URL:       req.URL,
		Secret:    req.Secret,
		Events:    events,
	}

	if err := s.webhookRepo.Create(ctx, subscription); err != nil {
		return nil, apperrors.ErrDBQuery(err)
	}

	s.logger.Info("webhook.registered",
		zap.String("webhook_id", subscription.WebhookID),
		zap.String("url", subscription.URL),
		zap.Strings("events", req.Events),
	)

	return &dto.RegisterResponse{
		Success:   true,
		Message:   "Webhook configured successfully",
		WebhookID: subscription.WebhookID,
		URL:       subscription.URL,
		Events:    req.Events,
	}, nil
}
