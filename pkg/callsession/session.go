// Package callsession wraps the provider's real-time call client behind a
// small state machine. The underlying client owns the actual WebRTC stack
// (codec negotiation, ICE, audio); this adapter only sequences joining,
// leaving and mute state, and relays status/transcript events to at most one
// subscriber.
package callsession

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/tezhire/ultravox-integration/internal/domain/entities"
)

// Status is the adapter's lifecycle state
type Status string

const (
	StatusIdle       Status = "idle"
	StatusConnecting Status = "connecting"
	StatusConnected  Status = "connected"
	StatusEnded      Status = "ended"
	StatusError      Status = "error"
)

// Provider-level status signals, as emitted by the underlying client
const (
	ProviderStatusConnecting   = "connecting"
	ProviderStatusIdle         = "idle"
	ProviderStatusListening    = "listening"
	ProviderStatusThinking     = "thinking"
	ProviderStatusSpeaking     = "speaking"
	ProviderStatusDisconnected = "disconnected"
)

// ErrAlreadySubscribed is returned by Subscribe when a subscription is
// already active on this adapter
var ErrAlreadySubscribed = errors.New("callsession: subscription already active")

// ProviderSession abstracts the external real-time call client
type ProviderSession interface {
	JoinCall(ctx context.Context, joinURL string) error
	LeaveCall(ctx context.Context) error
	MuteMic()
	UnmuteMic()
	MuteSpeaker()
	UnmuteSpeaker()
}

// Observer receives asynchronous events from the underlying client. The
// concrete client implementation forwards its callbacks here.
type Observer interface {
	OnProviderStatus(status string)
	OnProviderTranscript(entries []entities.TranscriptEntry)
	OnProviderError(err error)
}

type subscription struct {
	onStatus     func(Status)
	onTranscript func([]entities.TranscriptEntry)
	onError      func(error)
}

// Adapter manages one live call connection. Only one connection may be
// active per adapter; starting a new one first ends the previous session.
type Adapter struct {
	mu       sync.Mutex
	provider ProviderSession
	logger   *zap.Logger

	status       Status
	live         bool
	micMuted     bool
	speakerMuted bool
	transcript   []entities.TranscriptEntry
	sub          *subscription
	lastErr      error
}

var _ Observer = (*Adapter)(nil)

// New creates an idle adapter over the given provider session
func New(provider ProviderSession, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{
		provider: provider,
		logger:   logger,
		status:   StatusIdle,
	}
}

// Status returns the current adapter state
func (a *Adapter) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

// Transcript returns a copy of the transcript accumulated so far
func (a *Adapter) Transcript() []entities.TranscriptEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]entities.TranscriptEntry, len(a.transcript))
	copy(out, a.transcript)
	return out
}

// MicMuted reports the local microphone mute state
func (a *Adapter) MicMuted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.micMuted
}

// SpeakerMuted reports the local speaker mute state
func (a *Adapter) SpeakerMuted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.speakerMuted
}

// Subscribe registers the single event subscription for this adapter and
// returns an unsubscribe handle. A second active subscription is rejected.
func (a *Adapter) Subscribe(onStatus func(Status), onTranscript func([]entities.TranscriptEntry), onError func(error)) (func(), error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.sub != nil {
		return nil, ErrAlreadySubscribed
	}

	sub := &subscription{
		onStatus:     onStatus,
		onTranscript: onTranscript,
		onError:      onError,
	}
	a.sub = sub

	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		if a.sub == sub {
			a.sub = nil
		}
	}, nil
}

// Start joins the call at joinURL. An active previous session is fully ended
// first so two audio connections never overlap.
func (a *Adapter) Start(ctx context.Context, joinURL string) error {
	a.mu.Lock()
	if a.status == StatusConnecting || a.status == StatusConnected {
		a.mu.Unlock()
		if err := a.End(ctx); err != nil {
			return fmt.Errorf("failed to end previous session: %w", err)
		}
		a.mu.Lock()
	}

	a.status = StatusConnecting
	a.live = true
	a.transcript = nil
	a.lastErr = nil
	a.mu.Unlock()

	a.notifyStatus(StatusConnecting)

	if err := a.provider.JoinCall(ctx, joinURL); err != nil {
		a.mu.Lock()
		a.status = StatusError
		a.live = false
		a.lastErr = err
		a.mu.Unlock()

		a.logger.Error("callsession.join_failed", zap.Error(err))
		a.notifyStatus(StatusError)
		a.notifyError(err)
		return err
	}

	return nil
}

// ToggleMic flips the local microphone mute state
func (a *Adapter) ToggleMic() {
	a.mu.Lock()
	if a.status != StatusConnected {
		a.mu.Unlock()
		return
	}
	a.micMuted = !a.micMuted
	muted := a.micMuted
	a.mu.Unlock()

	if muted {
		a.provider.MuteMic()
	} else {
		a.provider.UnmuteMic()
	}
}

// ToggleSpeaker flips the local speaker mute state, independent of the mic
func (a *Adapter) ToggleSpeaker() {
	a.mu.Lock()
	if a.status != StatusConnected {
		a.mu.Unlock()
		return
	}
	a.speakerMuted = !a.speakerMuted
	muted := a.speakerMuted
	a.mu.Unlock()

	if muted {
		a.provider.MuteSpeaker()
	} else {
		a.provider.UnmuteSpeaker()
	}
}

// End leaves the call and releases the connection. Safe to call repeatedly;
// ending an adapter that is not connecting or connected is a no-op.
func (a *Adapter) End(ctx context.Context) error {
	a.mu.Lock()
	if a.status != StatusConnecting && a.status != StatusConnected {
		a.mu.Unlock()
		return nil
	}
	// Stop acting on provider callbacks before the leave round trip so a
	// late event cannot resurrect the session
	a.live = false
	a.mu.Unlock()

	err := a.provider.LeaveCall(ctx)

	a.mu.Lock()
	a.status = StatusEnded
	a.micMuted = false
	a.speakerMuted = false
	a.mu.Unlock()

	if err != nil {
		a.logger.Warn("callsession.leave_failed", zap.Error(err))
	}
	a.notifyStatus(StatusEnded)
	return err
}

// Close is the teardown hook: a live session is ended exactly as via End so
// the connection is not leaked on unmount.
func (a *Adapter) Close(ctx context.Context) error {
	return a.End(ctx)
}

// OnProviderStatus handles an asynchronous status signal from the client
func (a *Adapter) OnProviderStatus(status string) {
	a.mu.Lock()
	if !a.live {
		a.mu.Unlock()
		return
	}

	var next Status
	switch status {
	case ProviderStatusIdle, ProviderStatusListening, ProviderStatusThinking, ProviderStatusSpeaking:
		if a.status != StatusConnecting {
			a.mu.Unlock()
			return
		}
		next = StatusConnected
	case ProviderStatusDisconnected:
		next = StatusEnded
		a.live = false
	default:
		a.mu.Unlock()
		return
	}

	a.status = next
	a.mu.Unlock()

	a.notifyStatus(next)
}

// OnProviderTranscript handles a transcript update. The payload is the
// authoritative transcript-so-far, not a delta: the stored sequence is
// replaced wholesale.
func (a *Adapter) OnProviderTranscript(entries []entities.TranscriptEntry) {
	a.mu.Lock()
	if !a.live {
		a.mu.Unlock()
		return
	}
	a.transcript = make([]entities.TranscriptEntry, len(entries))
	copy(a.transcript, entries)
	snapshot := a.transcript
	a.mu.Unlock()

	a.notifyTranscript(snapshot)
}

// OnProviderError handles a failure signal from the client
func (a *Adapter) OnProviderError(err error) {
	a.mu.Lock()
	if !a.live {
		a.mu.Unlock()
		return
	}
	a.status = StatusError
	a.live = false
	a.lastErr = err
	a.mu.Unlock()

	a.logger.Error("callsession.provider_error", zap.Error(err))
	a.notifyStatus(StatusError)
	a.notifyError(err)
}

// Err returns the last provider or join error, if any
func (a *Adapter) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

// Notification helpers dispatch outside the adapter lock so a subscriber
// may call back into the adapter.

func (a *Adapter) notifyStatus(status Status) {
	a.mu.Lock()
	sub := a.sub
	a.mu.Unlock()
	if sub != nil && sub.onStatus != nil {
		sub.onStatus(status)
	}
}

func (a *Adapter) notifyTranscript(entries []entities.TranscriptEntry) {
	a.mu.Lock()
	sub := a.sub
	a.mu.Unlock()
	if sub != nil && sub.onTranscript != nil {
		sub.onTranscript(entries)
	}
}

func (a *Adapter) notifyError(err error) {
	a.mu.Lock()
	sub := a.sub
	a.mu.Unlock()
	if sub != nil && sub.onError != nil {
		sub.onError(err)
	}
}
