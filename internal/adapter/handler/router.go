package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	httpmw "github.com/tezhire/ultravox-integration/internal/infrastructure/http/middleware"
	"github.com/tezhire/ultravox-integration/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg             *config.Config
	sessionHandler  *SessionHandler
	webhookHandler  *WebhookHandler
	providerHandler *ProviderHandler
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, sessionHandler *SessionHandler, webhookHandler *WebhookHandler, providerHandler *ProviderHandler) *Router {
	return &Router{
		cfg:             cfg,
		sessionHandler:  sessionHandler,
		webhookHandler:  webhookHandler,
		providerHandler: providerHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API group; credential resolution runs before any handler
	api := e.Group("/api", httpmw.ResolveAPIKey(rt.cfg.Ultravox.APIKey))

	rt.setupTezhireRoutes(api)
	rt.setupUltravoxRoutes(api)
}

// setupTezhireRoutes configures the Tezhire-facing integration surface
func (rt *Router) setupTezhireRoutes(g *echo.Group) {
	tezhire := g.Group("/tezhire")

	tezhire.POST("/interview-sessions", rt.sessionHandler.CreateSession)
	tezhire.GET("/interview-sessions/:sessionId", rt.sessionHandler.GetSessionStatus)
	tezhire.POST("/interview-sessions/:sessionId/end", rt.sessionHandler.EndSession)
	tezhire.GET("/interview-sessions/:sessionId/results", rt.sessionHandler.GetResults)

	tezhire.POST("/webhooks", rt.webhookHandler.Register)
}

// setupUltravoxRoutes configures direct provider utility routes
func (rt *Router) setupUltravoxRoutes(g *echo.Group) {
	ultravox := g.Group("/ultravox")

	ultravox.POST("/validate-key", rt.providerHandler.ValidateKey)
	ultravox.GET("/messages", rt.providerHandler.GetMessages)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
