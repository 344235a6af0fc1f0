package repositories

import (
	"context"

	"github.com/tezhire/ultravox-integration/internal/domain/entities"
)

// SessionRepository persists the sessionId -> providerCallId mapping plus
// session metadata
type SessionRepository interface {
	Create(ctx context.Context, session *entities.InterviewSession) error
	FindBySessionID(ctx context.Context, sessionID string) (*entities.InterviewSession, error)
	FindByCallID(ctx context.Context, callID string) (*entities.InterviewSession, error)
	Update(ctx context.Context, session *entities.InterviewSession) error
}
