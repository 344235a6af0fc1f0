package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"go.uber.org/zap"

	apperrors "github.com/tezhire/ultravox-integration/errors"
	dto "github.com/tezhire/ultravox-integration/internal/adapter/dto/webhook"
	"github.com/tezhire/ultravox-integration/internal/domain/entities"
)

type fakeWebhookRepo struct {
	created   []*entities.WebhookSubscription
	createErr error
}

func (r *fakeWebhookRepo) Create(_ context.Context, subscription *entities.WebhookSubscription) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, subscription)
	return nil
}

func (r *fakeWebhookRepo) FindByWebhookID(_ context.Context, webhookID string) (*entities.WebhookSubscription, error) {
	for _, sub := range r.created {
		if sub.WebhookID == webhookID {
			return sub, nil
		}
	}
	return nil, entities.ErrWebhookNotFound
}

func (r *fakeWebhookRepo) FindByEvent(_ context.Context, event string) ([]*entities.WebhookSubscription, error) {
	var matched []*entities.WebhookSubscription
	for _, sub := range r.created {
		var events []string
		if err := json.Unmarshal(sub.Events, &events); err != nil {
			continue
		}
		for _, e := range events {
			if e == event {
				matched = append(matched, sub)
				break
			}
		}
	}
	return matched, nil
}

func validRegisterRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		URL:    "https://tezhire.example.com/hooks/interviews",
		Secret: "shh-very-secret",
		Events: []string{"interview.completed", "results.available"},
	}
}

func TestRegister(t *testing.T) {
	repo := &fakeWebhookRepo{}
	svc := NewWebhookService(repo, zap.NewNop())

	resp, err := svc.Register(context.Background(), validRegisterRequest())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if !resp.Success {
		t.Error("expected success")
	}
	if resp.Message != "Webhook configured successfully" {
		t.Errorf("unexpected message %q", resp.Message)
	}
	if !strings.HasPrefix(resp.WebhookID, "webhook-") {
		t.Errorf("webhook id should carry the webhook- prefix, got %q", resp.WebhookID)
	}
	if resp.URL != "https://tezhire.example.com/hooks/interviews" {
		t.Errorf("URL should echo back, got %q", resp.URL)
	}
	if len(resp.Events) != 2 {
		t.Errorf("events should echo back, got %v", resp.Events)
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected 1 persisted subscription, got %d", len(repo.created))
	}
	stored := repo.created[0]
	if stored.Secret != "shh-very-secret" {
		t.Error("secret should be persisted")
	}

	matched, err := repo.FindByEvent(context.Background(), "results.available")
	if err != nil || len(matched) != 1 {
		t.Errorf("subscription should be findable by event, got %v (%v)", matched, err)
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*dto.RegisterRequest)
		wantReason string
	}{
		{
			name:       "missing url",
			mutate:     func(r *dto.RegisterRequest) { r.URL = "" },
			wantReason: "Webhook URL is required",
		},
		{
			name:       "missing secret",
			mutate:     func(r *dto.RegisterRequest) { r.Secret = "" },
			wantReason: "Webhook secret is required for security",
		},
		{
			name:       "no events",
			mutate:     func(r *dto.RegisterRequest) { r.Events = nil },
			wantReason: "At least one event type must be specified",
		},
		{
			// URL check runs before the secret check
			name: "url failure wins",
			mutate: func(r *dto.RegisterRequest) {
				r.URL = ""
				r.Secret = ""
			},
			wantReason: "Webhook URL is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeWebhookRepo{}
			svc := NewWebhookService(repo, zap.NewNop())

			req := validRegisterRequest()
			tt.mutate(req)

			_, err := svc.Register(context.Background(), req)
			var appErr apperrors.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("expected AppError, got %v", err)
			}
			if appErr.HTTPCode != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", appErr.HTTPCode)
			}
			if appErr.Message != tt.wantReason {
				t.Errorf("expected %q, got %q", tt.wantReason, appErr.Message)
			}
			if len(repo.created) != 0 {
				t.Error("nothing should be persisted on validation failure")
			}
		})
	}
}

func TestRegisterAccumulatesInvalidEvents(t *testing.T) {
	repo := &fakeWebhookRepo{}
	svc := NewWebhookService(repo, zap.NewNop())

	req := validRegisterRequest()
	req.Events = []string{"interview.completed", "bogus.event", "interview.started", "another.bad"}

	_, err := svc.Register(context.Background(), req)
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.HTTPCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", appErr.HTTPCode)
	}

	detail := appErr.Info()
	if !strings.Contains(detail, "The following event types are not supported:") {
		t.Errorf("unexpected detail %q", detail)
	}
	// Every unknown name is reported, not just the first
	if !strings.Contains(detail, "bogus.event") || !strings.Contains(detail, "another.bad") {
		t.Errorf("all invalid events should be listed, got %q", detail)
	}
	if strings.Contains(detail, "interview.completed") {
		t.Errorf("valid events must not be reported as invalid, got %q", detail)
	}
}

func TestRegisterEventVocabulary(t *testing.T) {
	repo := &fakeWebhookRepo{}
	svc := NewWebhookService(repo, zap.NewNop())

	req := validRegisterRequest()
	req.Events = []string{
		"interview.created",
		"interview.started",
		"interview.completed",
		"interview.cancelled",
		"interview.error",
		"results.available",
	}

	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("full vocabulary should be accepted: %v", err)
	}
}
