package entities

import "errors"

// Session errors
var (
	ErrSessionNotFound      = errors.New("interview session not found")
	ErrSessionAlreadyExists = errors.New("interview session already exists")
)

// Webhook errors
var (
	ErrWebhookNotFound = errors.New("webhook subscription not found")
)
