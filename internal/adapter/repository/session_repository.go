package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tezhire/ultravox-integration/internal/domain/entities"
)

// SessionRepository implements the session repository interface using GORM
type SessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{
		db: db,
	}
}

// Create persists a new interview session. A unique index on session_id
// rejects a second record for the same logical session.
func (r *SessionRepository) Create(ctx context.Context, session *entities.InterviewSession) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entities.ErrSessionAlreadyExists
		}
		return fmt.Errorf("failed to create interview session: %w", err)
	}
	return nil
}

// FindBySessionID finds a session by the Tezhire session identifier
func (r *SessionRepository) FindBySessionID(ctx context.Context, sessionID string) (*entities.InterviewSession, error) {
	var session entities.InterviewSession
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session by session ID: %w", err)
	}
	return &session, nil
}

// FindByCallID finds a session by the provider call identifier
func (r *SessionRepository) FindByCallID(ctx context.Context, callID string) (*entities.InterviewSession, error) {
	var session entities.InterviewSession
	if err := r.db.WithContext(ctx).Where("call_id = ?", callID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session by call ID: %w", err)
	}
	return &session, nil
}

// Update updates a session
func (r *SessionRepository) Update(ctx context.Context, session *entities.InterviewSession) error {
	if err := r.db.WithContext(ctx).Save(session).Error; err != nil {
		return fmt.Errorf("failed to update interview session: %w", err)
	}
	return nil
}
