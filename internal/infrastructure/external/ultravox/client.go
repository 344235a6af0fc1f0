package ultravox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	apperrors "github.com/tezhire/ultravox-integration/errors"
	"github.com/tezhire/ultravox-integration/pkg/config"
)

// Client wraps Ultravox call operations. The API key is supplied per request
// because callers may override the server default via the X-API-Key header.
type Client interface {
	CreateCall(ctx context.Context, apiKey string, callConfig *CallConfig) (*Call, error)
	GetCall(ctx context.Context, apiKey, callID string) (*Call, error)
	EndCall(ctx context.Context, apiKey, callID string) error
	ListMessages(ctx context.Context, apiKey, callID string) ([]Message, error)
	GetAccount(ctx context.Context, apiKey string) (map[string]interface{}, error)
}

// CallConfig is the provider call-creation payload
type CallConfig struct {
	SystemPrompt     string        `json:"systemPrompt"`
	Model            string        `json:"model"`
	Voice            string        `json:"voice,omitempty"`
	LanguageHint     string        `json:"languageHint"`
	MaxDuration      string        `json:"maxDuration"`
	RecordingEnabled bool          `json:"recordingEnabled"`
	SelectedTools    []interface{} `json:"selectedTools"`
}

// Call is the subset of the provider call object this service consumes
type Call struct {
	CallID    string     `json:"callId"`
	JoinURL   string     `json:"joinUrl"`
	Created   *time.Time `json:"created,omitempty"`
	Joined    *time.Time `json:"joined,omitempty"`
	Ended     *time.Time `json:"ended,omitempty"`
	EndReason string     `json:"endReason,omitempty"`
	Recording bool       `json:"recordingEnabled,omitempty"`
}

// Message is one utterance from the provider's call transcript
type Message struct {
	Role   string `json:"role"`
	Text   string `json:"text"`
	Medium string `json:"medium,omitempty"`
}

// Message roles as reported by the provider
const (
	MessageRoleAgent = "MESSAGE_ROLE_AGENT"
	MessageRoleUser  = "MESSAGE_ROLE_USER"
)

type messagesPage struct {
	Results []Message `json:"results"`
	Next    string    `json:"next"`
}

// maxReadRetries bounds backoff retries on idempotent provider reads
const maxReadRetries = 3

// restClient is the real Ultravox client implementation
type restClient struct {
	baseURL string
	client  *http.Client
}

// NewClient creates an Ultravox client. With cfg.UseMock set it returns the
// in-memory mock so the service runs without provider credentials.
func NewClient(cfg *config.UltravoxConfig) Client {
	if cfg.UseMock {
		return newMockClient()
	}

	return &restClient{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.RequestTimeout},
	}
}

// CreateCall creates a new call with the provider. Never retried: a repeat
// on an ambiguous failure could create a duplicate provider-side call.
func (c *restClient) CreateCall(ctx context.Context, apiKey string, callConfig *CallConfig) (*Call, error) {
	body, err := json.Marshal(callConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to encode call config: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/calls", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ultravox call creation failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, upstreamError(resp, "Failed to create interview session")
	}

	var call Call
	if err := json.NewDecoder(resp.Body).Decode(&call); err != nil {
		return nil, fmt.Errorf("failed to decode call response: %w", err)
	}
	return &call, nil
}

// GetCall fetches a call by id, retrying transient failures with bounded
// exponential backoff.
func (c *restClient) GetCall(ctx context.Context, apiKey, callID string) (*Call, error) {
	var call Call
	err := c.getJSON(ctx, apiKey, fmt.Sprintf("%s/calls/%s", c.baseURL, callID), &call)
	if err != nil {
		return nil, err
	}
	return &call, nil
}

// EndCall asks the provider to terminate the call
func (c *restClient) EndCall(ctx context.Context, apiKey, callID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/calls/%s", c.baseURL, callID), nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-API-Key", apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("ultravox call termination failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return upstreamError(resp, "Failed to end interview session")
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

// ListMessages fetches the full transcript message list for a call,
// following provider pagination.
func (c *restClient) ListMessages(ctx context.Context, apiKey, callID string) ([]Message, error) {
	var messages []Message
	url := fmt.Sprintf("%s/calls/%s/messages", c.baseURL, callID)

	for url != "" {
		var page messagesPage
		if err := c.getJSON(ctx, apiKey, url, &page); err != nil {
			return nil, err
		}
		messages = append(messages, page.Results...)
		url = page.Next
	}

	return messages, nil
}

// GetAccount fetches the account behind an API key. Used to validate keys.
func (c *restClient) GetAccount(ctx context.Context, apiKey string) (map[string]interface{}, error) {
	var account map[string]interface{}
	if err := c.getJSON(ctx, apiKey, c.baseURL+"/accounts/me", &account); err != nil {
		return nil, err
	}
	return account, nil
}

// getJSON issues an idempotent GET with retry on transient failures
func (c *restClient) getJSON(ctx context.Context, apiKey, url string, out interface{}) error {
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", apiKey)
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("ultravox request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return upstreamError(resp, "Ultravox request failed")
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return backoff.Permanent(upstreamError(resp, "Ultravox request failed"))
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxElapsedTime = 10 * time.Second

	return backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(bo, maxReadRetries), ctx))
}

// upstreamError turns a non-success provider response into an AppError that
// passes the provider status through. The body is parsed as JSON for a
// human-readable message, falling back to the raw text.
func upstreamError(resp *http.Response, message string) apperrors.AppError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	detail := string(raw)

	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil {
		switch {
		case parsed.Error != "":
			detail = parsed.Error
		case parsed.Message != "":
			detail = parsed.Message
		case parsed.Detail != "":
			detail = parsed.Detail
		}
	}

	return apperrors.ErrUpstream(resp.StatusCode, message, detail)
}
