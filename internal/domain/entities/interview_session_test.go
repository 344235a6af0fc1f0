package entities

import (
	"testing"
	"time"
)

func TestSessionStatusIsTerminal(t *testing.T) {
	terminal := []SessionStatus{SessionStatusCompleted, SessionStatusCancelled, SessionStatusError}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
	}

	live := []SessionStatus{SessionStatusCreated, SessionStatusWaiting, SessionStatusInProgress}
	for _, s := range live {
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestMarkStartedIsSticky(t *testing.T) {
	session := NewInterviewSession("sess-1", "call-1")

	first := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	session.MarkStarted(first)
	session.MarkStarted(first.Add(time.Minute))

	if session.StartedAt == nil || !session.StartedAt.Equal(first) {
		t.Errorf("the first join time wins, got %v", session.StartedAt)
	}
	if session.Status != SessionStatusInProgress {
		t.Errorf("expected in_progress, got %s", session.Status)
	}
}

func TestMarkEnded(t *testing.T) {
	session := NewInterviewSession("sess-1", "call-1")
	session.MarkEnded("Interview completed", 1200)

	if !session.IsEnded() {
		t.Error("session should be ended")
	}
	if session.DurationSeconds != 1200 {
		t.Errorf("reported duration wins, got %d", session.DurationSeconds)
	}
	if session.EndReason == nil || *session.EndReason != "Interview completed" {
		t.Errorf("unexpected end reason %v", session.EndReason)
	}
}

func TestMarkEndedDurationFallback(t *testing.T) {
	session := NewInterviewSession("sess-1", "call-1")
	started := time.Now().UTC().Add(-10 * time.Minute)
	session.MarkStarted(started)

	session.MarkEnded("", 0)

	if session.DurationSeconds < 595 || session.DurationSeconds > 605 {
		t.Errorf("duration should fall back to elapsed time, got %d", session.DurationSeconds)
	}
	if session.EndReason != nil {
		t.Errorf("empty reason should stay unset, got %v", session.EndReason)
	}
}

func TestIsValidWebhookEvent(t *testing.T) {
	for _, event := range ValidWebhookEvents {
		if !IsValidWebhookEvent(event) {
			t.Errorf("%s should be valid", event)
		}
	}
	for _, event := range []string{"", "interview.unknown", "INTERVIEW.CREATED", "results"} {
		if IsValidWebhookEvent(event) {
			t.Errorf("%s should be invalid", event)
		}
	}
}
