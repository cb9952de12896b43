// Command seed populates the database with a demo user, profile, budget
// categories and a month of sample transactions for local development.
package main

import (
	"context"
	"log"
	"time"

	"instabudget/internal/models"
	"instabudget/internal/repository"
	"instabudget/pkg/auth"
	"instabudget/pkg/config"
	"instabudget/pkg/logger"
	"instabudget/pkg/postgres"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	demoEmail    = "demo@instabudget.app"
	demoUsername = "demo"
	demoPassword = "demo-password"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db, appLogger)
	profileRepo := repository.NewProfileRepository(db, appLogger)
	categoryRepo := repository.NewCategoryRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)

	appLogger.Info("Starting database seeding...")

	if existing, _ := userRepo.GetByEmail(ctx, demoEmail); existing != nil {
		appLogger.Info("Demo user already exists, nothing to do")
		return
	}

	hashed, err := auth.HashPassword(demoPassword)
	if err != nil {
		appLogger.Fatal("Failed to hash demo password", zap.Error(err))
	}

	now := time.Now()
	user := &models.User{
		ID:        uuid.New(),
		Username:  demoUsername,
		Email:     demoEmail,
		Password:  hashed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		appLogger.Fatal("Failed to create demo user", zap.Error(err))
	}

	today := now.UTC().Format("2006-01-02")
	cycleEnd := now.UTC().AddDate(0, 0, models.CycleDays).Format("2006-01-02")
	profile := &models.Profile{
		UserID:            user.ID,
		FullName:          "Demo User",
		PreferredCurrency: "USD",
		CycleDuration:     "monthly",
		CycleStartDate:    &today,
		CycleEndDate:      &cycleEnd,
		BudgetAutoRenew:   true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := profileRepo.Upsert(ctx, profile); err != nil {
		appLogger.Fatal("Failed to create demo profile", zap.Error(err))
	}

	budgets := map[string]int64{
		string(models.CategoryGroceries):     400,
		string(models.CategoryDining):        150,
		string(models.CategoryTransport):     100,
		string(models.CategoryEntertainment): 80,
	}
	for name, limit := range budgets {
		category := &models.BudgetCategory{
			ID:           uuid.New(),
			UserID:       user.ID,
			CategoryName: name,
			LimitAmount:  decimal.NewFromInt(limit),
			SpentAmount:  decimal.Zero,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := categoryRepo.Create(ctx, category); err != nil {
			appLogger.Fatal("Failed to create demo category", zap.Error(err), zap.String("category", name))
		}
	}

	samples := []struct {
		merchant string
		amount   string
		category models.Category
		daysAgo  int
	}{
		{"Whole Foods", "62.40", models.CategoryGroceries, 1},
		{"Trader Joe's", "38.15", models.CategoryGroceries, 5},
		{"Blue Bottle Coffee", "6.75", models.CategoryDining, 2},
		{"Thai Palace", "28.90", models.CategoryDining, 4},
		{"Metro Card", "20.00", models.CategoryTransport, 3},
		{"Cinema City", "17.50", models.CategoryEntertainment, 6},
	}
	for _, s := range samples {
		merchant := s.merchant
		category := string(s.category)
		amount, _ := decimal.NewFromString(s.amount)
		tx := &models.Transaction{
			ID:              uuid.New(),
			UserID:          user.ID,
			Merchant:        &merchant,
			TotalAmount:     amount,
			Currency:        "USD",
			Category:        &category,
			TransactionDate: now.UTC().AddDate(0, 0, -s.daysAgo).Format("2006-01-02"),
			Items:           "[]",
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := txRepo.Create(ctx, tx); err != nil {
			appLogger.Fatal("Failed to create demo transaction", zap.Error(err))
		}
	}

	appLogger.Info("Database seeding completed successfully!",
		zap.String("email", demoEmail),
		zap.String("password", demoPassword),
	)
}
