package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/tezhire/ultravox-integration/pkg/validator"

	"github.com/tezhire/ultravox-integration/internal/adapter/handler"
	"github.com/tezhire/ultravox-integration/internal/adapter/repository"
	"github.com/tezhire/ultravox-integration/internal/infrastructure/cache"
	"github.com/tezhire/ultravox-integration/internal/infrastructure/database"
	"github.com/tezhire/ultravox-integration/internal/infrastructure/external/ultravox"
	"github.com/tezhire/ultravox-integration/internal/infrastructure/storage"
	sessionUsecase "github.com/tezhire/ultravox-integration/internal/usecase/session"
	webhookUsecase "github.com/tezhire/ultravox-integration/internal/usecase/webhook"
	"github.com/tezhire/ultravox-integration/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "X-API-Key"},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Apply schema migrations only when explicitly enabled in config.
	// Production deployments should manage schema via scripts/migrate.go.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("DB_AUTO_MIGRATE is enabled in production. Disable it and manage schema with sql-migrate.")
		}
		log.Println("🔄 Applying migrations (development only) ...")
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use scripts/migrate.go for schema changes in CI/CD/production")
	}

	// Initialize Redis
	log.Println("📦 Connecting to Redis...")
	redisStore, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisStore.Close()

	// Initialize transcript artifact storage
	log.Println("🗄️  Connecting to object storage...")
	transcriptStore, err := storage.NewTranscriptStore(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	sessionRepo := repository.NewSessionRepository(db)
	webhookRepo := repository.NewWebhookRepository(db)

	// Initialize Ultravox client
	log.Println("📞 Initializing Ultravox client...")
	providerClient := ultravox.NewClient(&cfg.Ultravox)
	if cfg.Ultravox.UseMock {
		log.Println("⚠️  Ultravox running in MOCK mode (no real provider needed)")
	} else {
		log.Printf("✅ Ultravox client targeting: %s", cfg.Ultravox.BaseURL)
	}

	// Initialize services
	log.Println("🎤 Initializing session service...")
	sessionService := sessionUsecase.NewSessionService(sessionRepo, providerClient, redisStore, transcriptStore, &cfg.Ultravox, logger)

	log.Println("🪝 Initializing webhook service...")
	webhookService := webhookUsecase.NewWebhookService(webhookRepo, logger)

	// Initialize handlers
	log.Println("🚪 Initializing handlers...")
	sessionHandler := handler.NewSessionHandler(sessionService, logger)
	webhookHandler := handler.NewWebhookHandler(webhookService, logger)
	providerHandler := handler.NewProviderHandler(providerClient, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, sessionHandler, webhookHandler, providerHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
