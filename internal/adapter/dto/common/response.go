package common

// ErrorResponse is the error body shape shared by every endpoint
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
