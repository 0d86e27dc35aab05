package main

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	_ "aura/docs" // swagger docs

	"aura/internal/auth"
	"aura/internal/config"
	"aura/internal/handler"
	"aura/internal/llm"
	"aura/internal/logger"
	"aura/internal/model"
	"aura/internal/pdf"
	"aura/internal/repository"
	"aura/internal/router"
	"aura/internal/service"
	"aura/internal/storage"
)

const (
	groqTimeout     = 30 * time.Second
	deepseekTimeout = 45 * time.Second

	groqDefaultSystemPrompt     = "You are Aura AI, a helpful study assistant. Provide clear, detailed explanations. Format code with proper syntax highlighting."
	deepseekDefaultSystemPrompt = "You are Aura AI, an intelligent study assistant. Provide step-by-step explanations and thorough answers."
)

// @title Aura AI Backend API
// @version 1.0
// @description Study assistant backend: JWT auth, PDF ingestion and AI completion proxying.
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	logger.Init()
	defer logger.Log.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Sugar.Info("No .env file found, using environment variables from OS")
	}

	cfg := config.Load()

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		logger.Sugar.Fatalf("create data dir: %v", err)
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Sugar.Fatalf("create upload dir: %v", err)
	}

	// Flat-file collections
	userStore := storage.NewCollection[model.User](filepath.Join(cfg.DataDir, "users.json"))
	docStore := storage.NewCollection[model.Document](filepath.Join(cfg.DataDir, "pdfs.json"))

	// Initialize repositories
	userRepo := repository.NewUserRepository(userStore)
	docRepo := repository.NewDocumentRepository(docStore)

	// Initialize completion providers, tried in order
	groq := llm.NewProvider("groq", cfg.GroqURL, cfg.GroqAPIKey, cfg.GroqModel,
		groqDefaultSystemPrompt, groqTimeout)
	deepseek := llm.NewProvider("deepseek", cfg.DeepSeekURL, cfg.DeepSeekKey, cfg.DeepSeekModel,
		deepseekDefaultSystemPrompt, deepseekTimeout)

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, jwtService)
	aiService := service.NewAIService(groq, deepseek)
	docService := service.NewDocumentService(docRepo, pdf.NewExtractor(), cfg.UploadDir)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	aiHandler := handler.NewAIHandler(aiService, docService)
	pdfHandler := handler.NewPDFHandler(docService, aiService)

	e := echo.New()
	e.HideBanner = true

	router.Register(e, cfg, authService, authHandler, aiHandler, pdfHandler)

	logger.Sugar.Infow("starting server",
		"port", cfg.ServerPort,
		"dataDir", cfg.DataDir,
		"uploadDir", cfg.UploadDir,
	)

	if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
		logger.Sugar.Fatalf("server start: %v", err)
	}
}
