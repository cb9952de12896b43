package api

import (
	"instabudget/docs"
	"instabudget/internal/api/handlers"
	"instabudget/pkg/auth"
	"instabudget/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	Scan        *handlers.ScanHandler
	Insight     *handlers.InsightHandler
	Profile     *handlers.ProfileHandler
	Budget      *handlers.BudgetHandler
	Transaction *handlers.TransactionHandler
}

func SetupRouter(h Handlers, jwtManager *auth.JWTManager, uploadsDir string, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Swagger - importing the docs package registers the spec via init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Stored receipt images
	app.Static("/uploads", uploadsDir)

	// Auth routes (public)
	authGroup := app.Group("/user/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.Refresh)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	protected.Post("/receipt-scan", h.Scan.ReceiptScan)
	protected.Post("/voice-scan", h.Scan.VoiceScan)
	protected.Post("/ai-insight", h.Insight.AIInsight)

	protected.Post("/upsert-profile", h.Profile.UpsertProfile)
	protected.Get("/profile", h.Profile.GetProfile)

	protected.Get("/budget-categories", h.Budget.ListCategories)
	protected.Post("/budget-categories", h.Budget.CreateCategory)
	protected.Put("/budget-categories", h.Budget.UpdateCategory)
	protected.Delete("/budget-categories", h.Budget.DeleteCategory)

	protected.Get("/transactions", h.Transaction.ListTransactions)
	protected.Put("/transactions/:id", h.Transaction.UpdateTransaction)
	protected.Delete("/transactions/:id", h.Transaction.DeleteTransaction)

	return app
}
