package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrorCode identifies an application error class independent of HTTP status.
type ErrorCode string

const (
	ErrorCode_HTTP_OK ErrorCode = "OK"

	ErrorCode_INTERNAL         ErrorCode = "INTERNAL"
	ErrorCode_INVALID_ARGUMENT ErrorCode = "INVALID_ARGUMENT"
	ErrorCode_INVALID_PAYLOAD  ErrorCode = "INVALID_PAYLOAD"
	ErrorCode_UNAUTHENTICATED  ErrorCode = "UNAUTHENTICATED"
	ErrorCode_NOT_FOUND        ErrorCode = "NOT_FOUND"

	ErrorCode_SESSION_NOT_FOUND      ErrorCode = "SESSION_NOT_FOUND"
	ErrorCode_RESULTS_NOT_READY      ErrorCode = "RESULTS_NOT_READY"
	ErrorCode_WEBHOOK_INVALID_EVENTS ErrorCode = "WEBHOOK_INVALID_EVENTS"
	ErrorCode_UPSTREAM_CALL_FAILED   ErrorCode = "UPSTREAM_CALL_FAILED"
	ErrorCode_UPSTREAM_KEY_REJECTED  ErrorCode = "UPSTREAM_KEY_REJECTED"
	ErrorCode_DB_QUERY_FAILED        ErrorCode = "DB_QUERY_FAILED"
	ErrorCode_STORAGE_UPLOAD_FAILED  ErrorCode = "STORAGE_UPLOAD_FAILED"
)

// String implements fmt.Stringer
func (c ErrorCode) String() string {
	return string(c)
}

// AppError carries an HTTP status and a stable error code alongside the
// human-readable message.
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// Info returns the human-readable detail string for HTTP error bodies.
// The "details" entry wins, then Raw, so upstream messages survive intact.
func (e AppError) Info() string {
	if d, ok := e.Details["details"]; ok {
		return d
	}
	if e.Raw != nil {
		return e.Raw.Error()
	}
	return ""
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrInvalidPayload(message, details string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  message,
	}.WithDetail("details", details)
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

// ErrMissingAPIKey is returned when neither the X-API-Key header nor the
// server-side default key is available.
func ErrMissingAPIKey() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_UNAUTHENTICATED,
		Message:  "API key is required",
	}
}

// Session Errors
func ErrSessionNotFound(sessionID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_SESSION_NOT_FOUND,
		Message:  "Interview session not found",
	}.WithDetail("session_id", sessionID)
}

func ErrResultsNotReady(sessionID string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_RESULTS_NOT_READY,
		Message:  "Interview has not concluded yet",
	}.WithDetail("session_id", sessionID)
}

// Webhook Errors
func ErrInvalidWebhookEvents(invalid []string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_WEBHOOK_INVALID_EVENTS,
		Message:  "Invalid event types",
	}.WithDetail("details", fmt.Sprintf("The following event types are not supported: %s", strings.Join(invalid, ", ")))
}

// Upstream Errors

// ErrUpstream passes the provider's HTTP status through unchanged.
func ErrUpstream(httpStatus int, message, detail string) AppError {
	return AppError{
		HTTPCode: httpStatus,
		Code:     ErrorCode_UPSTREAM_CALL_FAILED,
		Message:  message,
	}.WithDetail("details", detail)
}

func ErrUpstreamKeyRejected() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_UPSTREAM_KEY_REJECTED,
		Message:  "Invalid security key",
	}
}

// Infrastructure Errors
func ErrDBQuery(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_QUERY_FAILED,
		Message:  "Database query failed",
	}
}

func ErrStorageUpload(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_STORAGE_UPLOAD_FAILED,
		Message:  "Failed to store transcript artifact",
	}
}
