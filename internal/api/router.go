package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/divyandj/pdfchat-api/internal/api/handler"
	"github.com/divyandj/pdfchat-api/internal/api/middleware"
	"github.com/divyandj/pdfchat-api/internal/core/service"
	"github.com/divyandj/pdfchat-api/internal/infrastructure/config"
	mongostore "github.com/divyandj/pdfchat-api/internal/infrastructure/db/mongo"
	redisstore "github.com/divyandj/pdfchat-api/internal/infrastructure/db/redis"
	"github.com/divyandj/pdfchat-api/internal/infrastructure/qa"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Store handles are injected here rather than reached for as globals, so the
// whole dependency graph is visible in one place.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("pdfchat"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	chatRepo := mongostore.NewChatRepository(db)
	chatCache := redisstore.NewChatListCache(rdb)
	qaClient := qa.NewClient(cfg.QA.BaseURL, log)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	chatService := service.NewChatService(chatRepo, chatCache, log)

	authHandler := handler.NewAuthHandler(authService)
	chatHandler := handler.NewChatHandler(chatService, log)
	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/api/auth/signup", authHandler.Signup)
	e.POST("/api/auth/login", authHandler.Login)

	// --- Chat routes (bearer token required) ---
	chats := e.Group("/api/chats", authMiddleware)
	chats.GET("", chatHandler.List)
	chats.GET("/:chatId", chatHandler.Get)
	chats.POST("", chatHandler.Save)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb, qaClient)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
