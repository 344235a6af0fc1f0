package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/tezhire/ultravox-integration/internal/adapter/dto/common"
	dto "github.com/tezhire/ultravox-integration/internal/adapter/dto/session"
	httpmw "github.com/tezhire/ultravox-integration/internal/infrastructure/http/middleware"
	sessionUsecase "github.com/tezhire/ultravox-integration/internal/usecase/session"
)

// SessionHandler handles interview-session HTTP requests
type SessionHandler struct {
	sessionService sessionUsecase.Service
	logger         *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService sessionUsecase.Service, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		logger:         logger,
	}
}

// CreateSession handles POST /tezhire/interview-sessions
func (h *SessionHandler) CreateSession(c echo.Context) error {
	var req dto.SessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Error:   "Invalid request format",
			Details: "Could not parse request body",
		})
	}

	resp, err := h.sessionService.CreateSession(
		c.Request().Context(),
		httpmw.APIKeyFromContext(c),
		&req,
	)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// GetSessionStatus handles GET /tezhire/interview-sessions/:sessionId
func (h *SessionHandler) GetSessionStatus(c echo.Context) error {
	sessionID := c.Param("sessionId")
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Error: "Session ID is required",
		})
	}

	resp, err := h.sessionService.GetSessionStatus(
		c.Request().Context(),
		httpmw.APIKeyFromContext(c),
		sessionID,
	)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// EndSession handles POST /tezhire/interview-sessions/:sessionId/end
func (h *SessionHandler) EndSession(c echo.Context) error {
	sessionID := c.Param("sessionId")
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Error: "Session ID is required",
		})
	}

	// Reason is optional; a malformed body falls back to defaults
	var req dto.EndSessionRequest
	if err := c.Bind(&req); err != nil {
		req = dto.EndSessionRequest{}
	}

	resp, err := h.sessionService.EndSession(
		c.Request().Context(),
		httpmw.APIKeyFromContext(c),
		sessionID,
		req.Reason,
	)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// GetResults handles GET /tezhire/interview-sessions/:sessionId/results
func (h *SessionHandler) GetResults(c echo.Context) error {
	sessionID := c.Param("sessionId")
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Error: "Session ID is required",
		})
	}

	resp, err := h.sessionService.GetResults(
		c.Request().Context(),
		httpmw.APIKeyFromContext(c),
		sessionID,
	)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, resp)
}
