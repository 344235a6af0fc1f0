package ultravox

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/tezhire/ultravox-integration/errors"
)

// mockClient is an in-memory stand-in for the Ultravox API. It lets the
// service and the demo flow run without provider credentials.
type mockClient struct {
	mu    sync.Mutex
	calls map[string]*Call
}

func newMockClient() *mockClient {
	return &mockClient{
		calls: make(map[string]*Call),
	}
}

// CreateCall (mock) simulates call creation
func (m *mockClient) CreateCall(ctx context.Context, apiKey string, callConfig *CallConfig) (*Call, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	call := &Call{
		CallID:    "mock-call-" + uuid.New().String(),
		JoinURL:   fmt.Sprintf("wss://mock.ultravox.local/calls/%s/join", uuid.New().String()),
		Created:   &now,
		Recording: callConfig.RecordingEnabled,
	}
	m.calls[call.CallID] = call
	return call, nil
}

// GetCall (mock) returns a previously created call
func (m *mockClient) GetCall(ctx context.Context, apiKey, callID string) (*Call, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	call, ok := m.calls[callID]
	if !ok {
		return nil, apperrors.ErrUpstream(404, "Ultravox request failed", "call not found")
	}
	return call, nil
}

// EndCall (mock) marks the call ended
func (m *mockClient) EndCall(ctx context.Context, apiKey, callID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	call, ok := m.calls[callID]
	if !ok {
		return apperrors.ErrUpstream(404, "Failed to end interview session", "call not found")
	}
	now := time.Now().UTC()
	call.Ended = &now
	call.EndReason = "hangup"
	return nil
}

// ListMessages (mock) returns a short canned transcript for ended calls
func (m *mockClient) ListMessages(ctx context.Context, apiKey, callID string) ([]Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.calls[callID]; !ok {
		return nil, apperrors.ErrUpstream(404, "Ultravox request failed", "call not found")
	}

	return []Message{
		{Role: MessageRoleAgent, Text: "Hello, thanks for joining. Could you walk me through your background?", Medium: "MESSAGE_MEDIUM_VOICE"},
		{Role: MessageRoleUser, Text: "Sure. I have been building backend services for about five years.", Medium: "MESSAGE_MEDIUM_VOICE"},
		{Role: MessageRoleAgent, Text: "What does a typical deployment pipeline look like on your team?", Medium: "MESSAGE_MEDIUM_VOICE"},
		{Role: MessageRoleUser, Text: "We run CI on every commit and ship behind feature flags.", Medium: "MESSAGE_MEDIUM_VOICE"},
	}, nil
}

// GetAccount (mock) accepts any non-empty key
func (m *mockClient) GetAccount(ctx context.Context, apiKey string) (map[string]interface{}, error) {
	if apiKey == "" {
		return nil, apperrors.ErrUpstreamKeyRejected()
	}
	return map[string]interface{}{
		"name":              "mock-account",
		"billingUrl":        "",
		"freeTimeUsed":      "0s",
		"freeTimeRemaining": "3600s",
	}, nil
}
