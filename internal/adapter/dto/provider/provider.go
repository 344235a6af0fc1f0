package provider

// ValidateKeyRequest asks whether an Ultravox API key is usable
type ValidateKeyRequest struct {
	APIKey string `json:"api_key" validate:"required"`
}

// ValidateKeyResponse reports key validity plus the provider account info
type ValidateKeyResponse struct {
	Valid       bool                   `json:"valid"`
	AccountInfo map[string]interface{} `json:"accountInfo,omitempty"`
}
