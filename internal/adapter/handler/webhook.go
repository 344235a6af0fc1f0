package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/tezhire/ultravox-integration/internal/adapter/dto/common"
	dto "github.com/tezhire/ultravox-integration/internal/adapter/dto/webhook"
	webhookUsecase "github.com/tezhire/ultravox-integration/internal/usecase/webhook"
)

// WebhookHandler handles webhook subscription requests
type WebhookHandler struct {
	webhookService webhookUsecase.Service
	logger         *zap.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(webhookService webhookUsecase.Service, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		webhookService: webhookService,
		logger:         logger,
	}
}

// Register handles POST /tezhire/webhooks
func (h *WebhookHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Error:   "Invalid request format",
			Details: "Could not parse request body",
		})
	}

	resp, err := h.webhookService.Register(c.Request().Context(), &req)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, resp)
}
