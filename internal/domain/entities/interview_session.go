package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SessionStatus is the lifecycle state of an interview session
type SessionStatus string

const (
	SessionStatusCreated    SessionStatus = "created"
	SessionStatusWaiting    SessionStatus = "waiting"
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusCompleted  SessionStatus = "completed"
	SessionStatusCancelled  SessionStatus = "cancelled"
	SessionStatusError      SessionStatus = "error"
)

// IsTerminal reports whether the session can no longer transition
func (s SessionStatus) IsTerminal() bool {
	return s == SessionStatusCompleted || s == SessionStatusCancelled || s == SessionStatusError
}

// InterviewSession maps a Tezhire session to the Ultravox call that hosts it.
// SessionID is the caller-supplied identity; CallID is assigned by the
// provider when the call is created. The unique index on SessionID is the
// dedupe guard against creating two provider calls for one logical session.
type InterviewSession struct {
	ID        uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SessionID string        `json:"session_id" gorm:"type:varchar(255);uniqueIndex;not null"`
	CallID    string        `json:"call_id" gorm:"type:varchar(255);index;not null"`
	Status    SessionStatus `json:"status" gorm:"type:varchar(32);not null;default:'created'"`

	CandidateID    string `json:"candidate_id" gorm:"type:varchar(255);not null"`
	CandidateName  string `json:"candidate_name" gorm:"type:varchar(255);not null"`
	CandidateEmail string `json:"candidate_email" gorm:"type:varchar(255);not null"`
	JobID          string `json:"job_id" gorm:"type:varchar(255);not null"`
	CompanyID      string `json:"company_id" gorm:"type:varchar(255);not null"`
	JobTitle       string `json:"job_title" gorm:"type:varchar(255);not null"`

	JoinURL         string  `json:"join_url" gorm:"type:text"`
	CallbackURL     string  `json:"callback_url" gorm:"type:text"`
	Language        string  `json:"language" gorm:"type:varchar(16)"`
	VoiceID         *string `json:"voice_id,omitempty" gorm:"type:varchar(64)"`
	DurationMinutes int     `json:"duration_minutes" gorm:"not null"`

	// Request snapshots kept for results generation and auditing
	ResumeData      datatypes.JSON `json:"resume_data,omitempty" gorm:"type:jsonb"`
	InterviewConfig datatypes.JSON `json:"interview_config,omitempty" gorm:"type:jsonb"`

	StartedAt       *time.Time `json:"started_at,omitempty" gorm:"type:timestamp"`
	EndedAt         *time.Time `json:"ended_at,omitempty" gorm:"type:timestamp"`
	EndReason       *string    `json:"end_reason,omitempty" gorm:"type:varchar(255)"`
	DurationSeconds int        `json:"duration_seconds" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// NewInterviewSession creates a session record for a freshly created call
func NewInterviewSession(sessionID, callID string) *InterviewSession {
	return &InterviewSession{
		ID:        uuid.New(),
		SessionID: sessionID,
		CallID:    callID,
		Status:    SessionStatusCreated,
	}
}

// IsEnded reports whether the session has already been ended
func (s *InterviewSession) IsEnded() bool {
	if s == nil {
		return false
	}
	return s.EndedAt != nil || s.Status.IsTerminal()
}

// MarkEnded records the terminal state. Duration falls back to the elapsed
// time since StartedAt when the provider did not report one.
func (s *InterviewSession) MarkEnded(reason string, durationSeconds int) {
	now := time.Now().UTC()
	s.EndedAt = &now
	s.Status = SessionStatusCompleted
	if reason != "" {
		s.EndReason = &reason
	}
	if durationSeconds > 0 {
		s.DurationSeconds = durationSeconds
	} else if s.StartedAt != nil {
		s.DurationSeconds = int(now.Sub(*s.StartedAt).Seconds())
	}
}

// MarkStarted records the moment the candidate joined the call
func (s *InterviewSession) MarkStarted(at time.Time) {
	if s.StartedAt == nil {
		t := at.UTC()
		s.StartedAt = &t
	}
	s.Status = SessionStatusInProgress
}
