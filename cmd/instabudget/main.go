package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"instabudget/internal/api"
	"instabudget/internal/api/handlers"
	"instabudget/internal/database"
	"instabudget/internal/repository"
	"instabudget/internal/service"
	"instabudget/internal/storage"
	"instabudget/internal/utils"
	"instabudget/pkg/auth"
	"instabudget/pkg/config"
	"instabudget/pkg/logger"
	"instabudget/pkg/postgres"

	"go.uber.org/zap"
)

// @title InstaBudget API
// @version 1.0
// @description Personal budgeting backend: receipt and voice note scanning, per-category budgets, AI spending insights

// @contact.name API Support
// @contact.email support@instabudget.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting InstaBudget service")

	// Run schema migrations before opening the pool
	if err := database.Migrate(&cfg.Database); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	profileRepo := repository.NewProfileRepository(db, appLogger)
	categoryRepo := repository.NewCategoryRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)
	receiptRepo := repository.NewReceiptRepository(db, appLogger)

	// Object store for receipt uploads
	store, err := storage.NewLocalStore(&cfg.Storage, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize object store", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	clock := utils.SystemClock{}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, clock, appLogger)

	aiClient, err := service.NewGigaChatClient(&cfg.GigaChat, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize AI client", zap.Error(err))
	}
	defer aiClient.Close()

	scanService := service.NewScanService(aiClient, receiptRepo, txRepo, profileRepo, store, clock, appLogger)
	voiceService := service.NewVoiceService(aiClient, scanService, profileRepo, clock, appLogger)
	insightService := service.NewInsightService(aiClient, categoryRepo, txRepo, clock, appLogger)
	profileService := service.NewProfileService(profileRepo, clock, appLogger)
	budgetService := service.NewBudgetService(categoryRepo, txRepo, profileRepo, clock, appLogger)
	transactionService := service.NewTransactionService(txRepo, appLogger)

	// Initialize handlers
	h := api.Handlers{
		Auth:        handlers.NewAuthHandler(authService, appLogger),
		Scan:        handlers.NewScanHandler(scanService, voiceService, appLogger),
		Insight:     handlers.NewInsightHandler(insightService, appLogger),
		Profile:     handlers.NewProfileHandler(profileService, appLogger),
		Budget:      handlers.NewBudgetHandler(budgetService, appLogger),
		Transaction: handlers.NewTransactionHandler(transactionService, appLogger),
	}

	// Setup router
	app := api.SetupRouter(h, jwtManager, store.BaseDir(), appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
