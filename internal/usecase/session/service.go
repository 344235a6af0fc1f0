package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/tezhire/ultravox-integration/errors"
	dto "github.com/tezhire/ultravox-integration/internal/adapter/dto/session"
	"github.com/tezhire/ultravox-integration/internal/domain/entities"
	"github.com/tezhire/ultravox-integration/internal/domain/repositories"
	"github.com/tezhire/ultravox-integration/internal/infrastructure/cache"
	"github.com/tezhire/ultravox-integration/internal/infrastructure/external/ultravox"
	"github.com/tezhire/ultravox-integration/pkg/config"
)

// joinURLValidity is how long a returned join URL is advertised as usable
const joinURLValidity = 24 * time.Hour

// statusCacheTTL bounds how stale a cached status snapshot may be
const statusCacheTTL = 15 * time.Second

// Service orchestrates the interview session lifecycle
type Service interface {
	CreateSession(ctx context.Context, apiKey string, req *dto.SessionRequest) (*dto.SessionResponse, error)
	GetSessionStatus(ctx context.Context, apiKey, sessionID string) (*dto.SessionStatusResponse, error)
	EndSession(ctx context.Context, apiKey, sessionID, reason string) (*dto.EndSessionResponse, error)
	GetResults(ctx context.Context, apiKey, sessionID string) (*dto.InterviewResultsResponse, error)
}

// TranscriptArtifacts stores the assembled transcript text and returns a URL
// for the results payload
type TranscriptArtifacts interface {
	SaveTranscript(ctx context.Context, sessionID, content string) (string, error)
}

// SessionService implements Service
type SessionService struct {
	sessionRepo repositories.SessionRepository
	provider    ultravox.Client
	cache       cache.Store
	artifacts   TranscriptArtifacts
	cfg         *config.UltravoxConfig
	logger      *zap.Logger
}

// NewSessionService creates a new session service. artifacts may be nil when
// no object store is configured; results then omit the transcript URL.
func NewSessionService(
	sessionRepo repositories.SessionRepository,
	provider ultravox.Client,
	cacheStore cache.Store,
	artifacts TranscriptArtifacts,
	cfg *config.UltravoxConfig,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		provider:    provider,
		cache:       cacheStore,
		artifacts:   artifacts,
		cfg:         cfg,
		logger:      logger,
	}
}

// CreateSession validates the request, creates the provider call and persists
// the sessionId -> callId mapping. Re-creating an existing session returns
// the stored join URL instead of a second provider call.
func (s *SessionService) CreateSession(ctx context.Context, apiKey string, req *dto.SessionRequest) (*dto.SessionResponse, error) {
	if reason, ok := ValidateSessionRequest(req); !ok {
		return nil, apperrors.ErrInvalidPayload("Invalid request", reason)
	}

	sessionID := req.Session.SessionID

	existing, err := s.sessionRepo.FindBySessionID(ctx, sessionID)
	if err == nil {
		s.logger.Info("session.create.dedupe",
			zap.String("session_id", sessionID),
			zap.String("call_id", existing.CallID),
		)
		return sessionResponse(existing), nil
	}
	if !errors.Is(err, entities.ErrSessionNotFound) {
		return nil, apperrors.ErrDBQuery(err)
	}

	language := req.Configuration.Language
	if language == "" {
		language = s.cfg.DefaultLanguage
	}

	callConfig := &ultravox.CallConfig{
		SystemPrompt:     BuildSystemPrompt(req),
		Model:            s.cfg.Model,
		Voice:            req.Configuration.VoiceID,
		LanguageHint:     language,
		MaxDuration:      fmt.Sprintf("%ds", req.Interview.Duration*60),
		RecordingEnabled: true,
		SelectedTools:    []interface{}{},
	}

	call, err := s.provider.CreateCall(ctx, apiKey, callConfig)
	if err != nil {
		return nil, err
	}

	record := entities.NewInterviewSession(sessionID, call.CallID)
	record.CandidateID = req.Candidate.CandidateID
	record.CandidateName = req.Candidate.Name
	record.CandidateEmail = req.Candidate.Email
	record.JobID = req.Job.JobID
	record.CompanyID = req.Job.CompanyID
	record.JobTitle = req.Job.Title
	record.JoinURL = call.JoinURL
	record.CallbackURL = req.Session.CallbackURL
	record.Language = language
	record.DurationMinutes = req.Interview.Duration
	if req.Configuration.VoiceID != "" {
		voice := req.Configuration.VoiceID
		record.VoiceID = &voice
	}
	if resume, err := json.Marshal(req.Candidate.ResumeData); err == nil {
		record.ResumeData = resume
	}
	if interview, err := json.Marshal(req.Interview); err == nil {
		record.InterviewConfig = interview
	}

	if err := s.sessionRepo.Create(ctx, record); err != nil {
		if errors.Is(err, entities.ErrSessionAlreadyExists) {
			// Lost the race against a concurrent create; the stored call wins
			stored, findErr := s.sessionRepo.FindBySessionID(ctx, sessionID)
			if findErr == nil {
				return sessionResponse(stored), nil
			}
		}
		return nil, apperrors.ErrDBQuery(err)
	}

	s.logger.Info("session.created",
		zap.String("session_id", sessionID),
		zap.String("call_id", call.CallID),
		zap.String("job_id", req.Job.JobID),
	)

	return sessionResponse(record), nil
}

func sessionResponse(record *entities.InterviewSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		Success:   true,
		SessionID: record.SessionID,
		JoinURL:   record.JoinURL,
		Expiry:    time.Now().UTC().Add(joinURLValidity).Format(time.RFC3339),
		Status:    string(entities.SessionStatusCreated),
	}
}

// GetSessionStatus resolves the stored mapping and reports the live call
// state, served from a short-lived cache when possible.
func (s *SessionService) GetSessionStatus(ctx context.Context, apiKey, sessionID string) (*dto.SessionStatusResponse, error) {
	cacheKey := statusCacheKey(sessionID)
	if cached, ok := s.cache.Get(ctx, cacheKey); ok {
		var resp dto.SessionStatusResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return &resp, nil
		}
	}

	record, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !record.IsEnded() {
		call, err := s.provider.GetCall(ctx, apiKey, record.CallID)
		if err != nil {
			return nil, err
		}
		s.applyCallState(ctx, record, call)
	}

	resp := &dto.SessionStatusResponse{
		SessionID:      record.SessionID,
		Status:         string(record.Status),
		CandidateID:    record.CandidateID,
		JobID:          record.JobID,
		StartTime:      record.StartedAt,
		EndTime:        record.EndedAt,
		Duration:       elapsedSeconds(record),
		Progress:       progressPercent(record),
		QuestionsAsked: s.countQuestions(ctx, apiKey, record),
	}

	if encoded, err := json.Marshal(resp); err == nil {
		if err := s.cache.Set(ctx, cacheKey, string(encoded), statusCacheTTL); err != nil {
			s.logger.Warn("session.status.cache_set_failed", zap.Error(err))
		}
	}

	return resp, nil
}

// EndSession terminates the provider call. Idempotent: ending an already
// ended session reports the stored terminal state without touching the
// provider again.
func (s *SessionService) EndSession(ctx context.Context, apiKey, sessionID, reason string) (*dto.EndSessionResponse, error) {
	record, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if record.IsEnded() {
		return &dto.EndSessionResponse{
			Success:   true,
			SessionID: record.SessionID,
			Status:    "ended",
			Duration:  record.DurationSeconds,
		}, nil
	}

	if err := s.provider.EndCall(ctx, apiKey, record.CallID); err != nil {
		// A call the provider no longer knows is already over
		var appErr apperrors.AppError
		if !errors.As(err, &appErr) || appErr.HTTPCode != 404 {
			return nil, err
		}
	}

	record.MarkEnded(reason, 0)
	if err := s.sessionRepo.Update(ctx, record); err != nil {
		return nil, apperrors.ErrDBQuery(err)
	}
	if err := s.cache.Delete(ctx, statusCacheKey(sessionID)); err != nil {
		s.logger.Warn("session.end.cache_delete_failed", zap.Error(err))
	}

	s.logger.Info("session.ended",
		zap.String("session_id", sessionID),
		zap.String("call_id", record.CallID),
		zap.String("reason", reason),
	)

	return &dto.EndSessionResponse{
		Success:   true,
		SessionID: record.SessionID,
		Status:    "ended",
		Duration:  record.DurationSeconds,
	}, nil
}

// loadSession resolves a sessionId to its stored record
func (s *SessionService) loadSession(ctx context.Context, sessionID string) (*entities.InterviewSession, error) {
	record, err := s.sessionRepo.FindBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, entities.ErrSessionNotFound) {
			return nil, apperrors.ErrSessionNotFound(sessionID)
		}
		return nil, apperrors.ErrDBQuery(err)
	}
	return record, nil
}

// applyCallState folds the provider call snapshot into the stored record and
// persists any transition.
func (s *SessionService) applyCallState(ctx context.Context, record *entities.InterviewSession, call *ultravox.Call) {
	changed := false

	if call.Joined != nil && record.StartedAt == nil {
		record.MarkStarted(*call.Joined)
		changed = true
	}
	if call.Ended != nil && !record.IsEnded() {
		duration := 0
		if call.Joined != nil {
			duration = int(call.Ended.Sub(*call.Joined).Seconds())
		}
		record.MarkEnded(call.EndReason, duration)
		changed = true
	}
	if call.Joined == nil && call.Ended == nil && record.Status == entities.SessionStatusCreated {
		record.Status = entities.SessionStatusWaiting
		changed = true
	}

	if changed {
		if err := s.sessionRepo.Update(ctx, record); err != nil {
			s.logger.Warn("session.status.update_failed",
				zap.String("session_id", record.SessionID),
				zap.Error(err),
			)
		}
	}
}

// countQuestions counts agent utterances once the candidate has joined
func (s *SessionService) countQuestions(ctx context.Context, apiKey string, record *entities.InterviewSession) int {
	if record.StartedAt == nil {
		return 0
	}

	messages, err := s.provider.ListMessages(ctx, apiKey, record.CallID)
	if err != nil {
		s.logger.Warn("session.status.messages_failed",
			zap.String("session_id", record.SessionID),
			zap.Error(err),
		)
		return 0
	}

	count := 0
	for _, msg := range messages {
		if msg.Role == ultravox.MessageRoleAgent {
			count++
		}
	}
	return count
}

func elapsedSeconds(record *entities.InterviewSession) int {
	if record.DurationSeconds > 0 {
		return record.DurationSeconds
	}
	if record.StartedAt == nil {
		return 0
	}
	end := time.Now().UTC()
	if record.EndedAt != nil {
		end = *record.EndedAt
	}
	return int(end.Sub(*record.StartedAt).Seconds())
}

func progressPercent(record *entities.InterviewSession) int {
	if record.IsEnded() {
		return 100
	}
	if record.StartedAt == nil || record.DurationMinutes <= 0 {
		return 0
	}
	progress := elapsedSeconds(record) * 100 / (record.DurationMinutes * 60)
	if progress > 99 {
		progress = 99
	}
	return progress
}

func statusCacheKey(sessionID string) string {
	return "session:status:" + sessionID
}
