package callsession

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tezhire/ultravox-integration/internal/domain/entities"
)

type fakeProvider struct {
	joinCalls  int
	leaveCalls int
	joinErr    error
	leaveErr   error
	lastURL    string
	micMuted   bool
	spkMuted   bool
}

func (f *fakeProvider) JoinCall(_ context.Context, joinURL string) error {
	f.joinCalls++
	f.lastURL = joinURL
	return f.joinErr
}

func (f *fakeProvider) LeaveCall(_ context.Context) error {
	f.leaveCalls++
	return f.leaveErr
}

func (f *fakeProvider) MuteMic()       { f.micMuted = true }
func (f *fakeProvider) UnmuteMic()     { f.micMuted = false }
func (f *fakeProvider) MuteSpeaker()   { f.spkMuted = true }
func (f *fakeProvider) UnmuteSpeaker() { f.spkMuted = false }

func TestAdapterLifecycle(t *testing.T) {
	provider := &fakeProvider{}
	adapter := New(provider, nil)

	if adapter.Status() != StatusIdle {
		t.Fatalf("expected idle, got %s", adapter.Status())
	}

	var statuses []Status
	unsubscribe, err := adapter.Subscribe(func(s Status) {
		statuses = append(statuses, s)
	}, nil, nil)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer unsubscribe()

	if err := adapter.Start(context.Background(), "wss://example.test/join"); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if adapter.Status() != StatusConnecting {
		t.Fatalf("expected connecting after start, got %s", adapter.Status())
	}
	if provider.lastURL != "wss://example.test/join" {
		t.Errorf("join URL not forwarded, got %q", provider.lastURL)
	}

	adapter.OnProviderStatus(ProviderStatusListening)
	if adapter.Status() != StatusConnected {
		t.Fatalf("expected connected, got %s", adapter.Status())
	}

	// Further ready signals must not emit duplicate transitions
	adapter.OnProviderStatus(ProviderStatusSpeaking)

	if err := adapter.End(context.Background()); err != nil {
		t.Fatalf("end failed: %v", err)
	}
	if adapter.Status() != StatusEnded {
		t.Fatalf("expected ended, got %s", adapter.Status())
	}
	if provider.leaveCalls != 1 {
		t.Errorf("expected 1 leave call, got %d", provider.leaveCalls)
	}

	want := []Status{StatusConnecting, StatusConnected, StatusEnded}
	if len(statuses) != len(want) {
		t.Fatalf("expected status sequence %v, got %v", want, statuses)
	}
	for i := range want {
		if statuses[i] != want[i] {
			t.Errorf("status[%d]: expected %s, got %s", i, want[i], statuses[i])
		}
	}
}

func TestAdapterEndIsIdempotent(t *testing.T) {
	provider := &fakeProvider{}
	adapter := New(provider, nil)

	if err := adapter.End(context.Background()); err != nil {
		t.Fatalf("end on idle adapter should be a no-op, got %v", err)
	}
	if provider.leaveCalls != 0 {
		t.Errorf("leave should not be called on idle adapter")
	}

	if err := adapter.Start(context.Background(), "wss://example.test/join"); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	adapter.OnProviderStatus(ProviderStatusIdle)

	if err := adapter.End(context.Background()); err != nil {
		t.Fatalf("end failed: %v", err)
	}
	if err := adapter.End(context.Background()); err != nil {
		t.Fatalf("second end should be a no-op, got %v", err)
	}
	if provider.leaveCalls != 1 {
		t.Errorf("expected 1 leave call, got %d", provider.leaveCalls)
	}
}

func TestAdapterStartEndsPreviousSession(t *testing.T) {
	provider := &fakeProvider{}
	adapter := New(provider, nil)

	if err := adapter.Start(context.Background(), "wss://example.test/first"); err != nil {
		t.Fatalf("first start failed: %v", err)
	}
	adapter.OnProviderStatus(ProviderStatusListening)

	if err := adapter.Start(context.Background(), "wss://example.test/second"); err != nil {
		t.Fatalf("second start failed: %v", err)
	}
	if provider.leaveCalls != 1 {
		t.Errorf("previous session should be left before rejoining, got %d leaves", provider.leaveCalls)
	}
	if provider.joinCalls != 2 {
		t.Errorf("expected 2 join calls, got %d", provider.joinCalls)
	}
	if adapter.Status() != StatusConnecting {
		t.Errorf("expected connecting after restart, got %s", adapter.Status())
	}
}

func TestAdapterJoinFailure(t *testing.T) {
	joinErr := errors.New("ice negotiation failed")
	provider := &fakeProvider{joinErr: joinErr}
	adapter := New(provider, nil)

	var gotErr error
	if _, err := adapter.Subscribe(nil, nil, func(err error) { gotErr = err }); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	if err := adapter.Start(context.Background(), "wss://example.test/join"); !errors.Is(err, joinErr) {
		t.Fatalf("expected join error, got %v", err)
	}
	if adapter.Status() != StatusError {
		t.Errorf("expected error state, got %s", adapter.Status())
	}
	if !errors.Is(gotErr, joinErr) {
		t.Errorf("subscriber should receive the join error, got %v", gotErr)
	}
	if !errors.Is(adapter.Err(), joinErr) {
		t.Errorf("Err() should report the join error, got %v", adapter.Err())
	}
}

func TestAdapterSingleSubscription(t *testing.T) {
	adapter := New(&fakeProvider{}, nil)

	unsubscribe, err := adapter.Subscribe(nil, nil, nil)
	if err != nil {
		t.Fatalf("first subscribe failed: %v", err)
	}

	if _, err := adapter.Subscribe(nil, nil, nil); !errors.Is(err, ErrAlreadySubscribed) {
		t.Fatalf("expected ErrAlreadySubscribed, got %v", err)
	}

	unsubscribe()
	if _, err := adapter.Subscribe(nil, nil, nil); err != nil {
		t.Fatalf("subscribe after unsubscribe failed: %v", err)
	}
}

func TestAdapterTranscriptReplacement(t *testing.T) {
	provider := &fakeProvider{}
	adapter := New(provider, nil)

	var received [][]entities.TranscriptEntry
	if _, err := adapter.Subscribe(nil, func(entries []entities.TranscriptEntry) {
		received = append(received, entries)
	}, nil); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	if err := adapter.Start(context.Background(), "wss://example.test/join"); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	adapter.OnProviderStatus(ProviderStatusListening)

	now := time.Now().UTC()
	first := []entities.TranscriptEntry{
		{Speaker: entities.SpeakerAgent, Text: "Hello", Timestamp: now},
	}
	full := []entities.TranscriptEntry{
		{Speaker: entities.SpeakerAgent, Text: "Hello, welcome to the interview.", Timestamp: now},
		{Speaker: entities.SpeakerUser, Text: "Thanks, glad to be here.", Timestamp: now.Add(5 * time.Second)},
	}

	adapter.OnProviderTranscript(first)
	adapter.OnProviderTranscript(full)

	got := adapter.Transcript()
	if len(got) != 2 {
		t.Fatalf("transcript should be replaced, not appended: got %d entries", len(got))
	}
	if got[0].Text != full[0].Text || got[1].Text != full[1].Text {
		t.Errorf("transcript content mismatch: %+v", got)
	}
	if len(received) != 2 {
		t.Errorf("expected 2 transcript notifications, got %d", len(received))
	}
}

func TestAdapterIgnoresEventsAfterEnd(t *testing.T) {
	provider := &fakeProvider{}
	adapter := New(provider, nil)

	if err := adapter.Start(context.Background(), "wss://example.test/join"); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	adapter.OnProviderStatus(ProviderStatusListening)
	if err := adapter.End(context.Background()); err != nil {
		t.Fatalf("end failed: %v", err)
	}

	adapter.OnProviderTranscript([]entities.TranscriptEntry{
		{Speaker: entities.SpeakerAgent, Text: "stale"},
	})
	adapter.OnProviderStatus(ProviderStatusListening)
	adapter.OnProviderError(errors.New("stale error"))

	if len(adapter.Transcript()) != 0 {
		t.Errorf("transcript updates after end must be dropped")
	}
	if adapter.Status() != StatusEnded {
		t.Errorf("status must stay ended, got %s", adapter.Status())
	}
	if adapter.Err() != nil {
		t.Errorf("errors after end must be dropped, got %v", adapter.Err())
	}
}

func TestAdapterMuteControls(t *testing.T) {
	provider := &fakeProvider{}
	adapter := New(provider, nil)

	// Controls are inert before the call is connected
	adapter.ToggleMic()
	if adapter.MicMuted() {
		t.Errorf("mic toggle should be ignored while idle")
	}

	if err := adapter.Start(context.Background(), "wss://example.test/join"); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	adapter.OnProviderStatus(ProviderStatusListening)

	adapter.ToggleMic()
	if !adapter.MicMuted() || !provider.micMuted {
		t.Errorf("mic should be muted after toggle")
	}
	if adapter.SpeakerMuted() {
		t.Errorf("speaker state must be independent of the mic")
	}

	adapter.ToggleSpeaker()
	if !adapter.SpeakerMuted() || !provider.spkMuted {
		t.Errorf("speaker should be muted after toggle")
	}

	adapter.ToggleMic()
	if adapter.MicMuted() || provider.micMuted {
		t.Errorf("mic should be unmuted after second toggle")
	}

	if err := adapter.End(context.Background()); err != nil {
		t.Fatalf("end failed: %v", err)
	}
	if adapter.MicMuted() || adapter.SpeakerMuted() {
		t.Errorf("mute flags should reset on end")
	}
}
