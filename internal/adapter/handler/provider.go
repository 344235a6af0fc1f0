package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/tezhire/ultravox-integration/errors"
	"github.com/tezhire/ultravox-integration/internal/adapter/dto/common"
	dto "github.com/tezhire/ultravox-integration/internal/adapter/dto/provider"
	"github.com/tezhire/ultravox-integration/internal/infrastructure/external/ultravox"
	httpmw "github.com/tezhire/ultravox-integration/internal/infrastructure/http/middleware"
)

// ProviderHandler exposes direct Ultravox utility endpoints: key validation
// and raw call-message passthrough.
type ProviderHandler struct {
	provider ultravox.Client
	logger   *zap.Logger
}

// NewProviderHandler creates a new provider handler
func NewProviderHandler(provider ultravox.Client, logger *zap.Logger) *ProviderHandler {
	return &ProviderHandler{
		provider: provider,
		logger:   logger,
	}
}

// ValidateKey handles POST /ultravox/validate-key
func (h *ProviderHandler) ValidateKey(c echo.Context) error {
	var req dto.ValidateKeyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Error:   "Invalid request format",
			Details: "Could not parse request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Error: "Security key is required",
		})
	}

	account, err := h.provider.GetAccount(c.Request().Context(), req.APIKey)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrUpstreamKeyRejected())
	}

	return c.JSON(http.StatusOK, dto.ValidateKeyResponse{
		Valid:       true,
		AccountInfo: account,
	})
}

// GetMessages handles GET /ultravox/messages?call_id=
func (h *ProviderHandler) GetMessages(c echo.Context) error {
	callID := c.QueryParam("call_id")
	if callID == "" {
		return c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Error: "Call ID is required",
		})
	}

	messages, err := h.provider.ListMessages(
		c.Request().Context(),
		httpmw.APIKeyFromContext(c),
		callID,
	)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"results": messages,
	})
}
