package webhook

// RegisterRequest is the webhook subscription payload
type RegisterRequest struct {
	URL    string   `json:"url"`
	Secret string   `json:"secret"`
	Events []string `json:"events"`
}

// RegisterResponse echoes the accepted subscription. Secret is never echoed.
type RegisterResponse struct {
	Success   bool     `json:"success"`
	Message   string   `json:"message"`
	WebhookID string   `json:"webhookId"`
	URL       string   `json:"url"`
	Events    []string `json:"events"`
}
