// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"time"

	"tkbet/internal/config"
	"tkbet/internal/handlers"
	"tkbet/internal/metrics"
	"tkbet/internal/middleware"
	"tkbet/internal/models"
	"tkbet/internal/repositories"
	"tkbet/internal/services/auth"
	"tkbet/internal/services/autopay"
	"tkbet/internal/services/card"
	"tkbet/internal/services/dashboard"
	"tkbet/internal/services/game"
	"tkbet/internal/services/registry"
	"tkbet/internal/services/transaction"
	"tkbet/internal/services/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

// Deps exposes the pieces the server binary wires into background tasks.
type Deps struct {
	Transactions transaction.Service
	Claims       repositories.AutoPaymentRepository
}

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, db *gorm.DB) *Deps {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, repositories.CacheService)
	txnRepo := repositories.NewTransactionRepository(db)
	methodRepo := repositories.NewPaymentMethodRepository(db)
	promoRepo := repositories.NewPromotionRepository(db)
	gameRepo := repositories.NewGameRepository(db)
	claimRepo := repositories.NewAutoPaymentRepository(db)

	// Initialize services
	authService := auth.NewService(userRepo)
	userService := user.NewService(userRepo)
	registryService := registry.NewService(methodRepo, promoRepo, repositories.CacheService)
	txnService := transaction.NewService(
		txnRepo,
		methodRepo,
		promoRepo,
		repositories.CacheService,
		repositories.CacheService,
		metrics.TransactionCollector{},
	)
	autopayService := autopay.NewService(claimRepo, txnRepo)
	cardService := card.NewService()
	gameService := game.NewService(gameRepo, game.Config{
		CatalogURL: config.GetEnv("GAME_CATALOG_URL", ""),
		CatalogKey: config.GetEnv("GAME_CATALOG_KEY", ""),
		LaunchURL:  config.GetEnv("GAME_LAUNCH_URL", ""),
		LaunchKey:  config.GetEnv("GAME_LAUNCH_KEY", ""),
		Token:      config.GetEnv("GAME_LAUNCH_TOKEN", ""),
		HomeURL:    config.GetEnv("GAME_HOME_URL", ""),
	})
	dashboardService := dashboard.NewService(userRepo, txnRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	registryHandler := handlers.NewRegistryHandler(registryService)
	txnHandler := handlers.NewTransactionHandler(txnService)
	autopayHandler := handlers.NewAutoPaymentHandler(autopayService)
	sessionHandler := handlers.NewSessionHandler(repositories.CacheService, registryService)
	cardHandler := handlers.NewCardHandler(cardService)
	gameHandler := handlers.NewGameHandler(gameService, userService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	// Credential endpoints get a tighter rate limit than the global one.
	authLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to TKBet API",
			"version": "1.0.0",
		})
	})

	api := app.Group("/api")

	// Public endpoints (no auth required)
	api.Post("/login", authLimiter, authHandler.Login)
	api.Post("/register", authLimiter, userHandler.Register)
	api.Post("/refresh", authHandler.Refresh)

	// Storefront reads that render before login.
	frontend := app.Group("/api/v1/frontend")
	frontend.Get("/deposit-tabs", registryHandler.DepositTabs)
	frontend.Get("/payment-methods", registryHandler.Methods)
	frontend.Get("/promotions", registryHandler.Promotions)
	frontend.Get("/hot-games", gameHandler.HotGames)

	// Protected routes with auth middleware
	protected := api.Use(authMiddleware.Handler)

	protected.Post("/logout", authHandler.Logout)
	protected.Post("/change-password", middleware.HasPermission(models.PermissionChangePassword), authHandler.ChangePassword)
	protected.Get("/me", userHandler.Me)
	protected.Get("/balance", middleware.HasPermission(models.PermissionBalanceRead), userHandler.Balance)
	protected.Get("/transactions", middleware.HasPermission(models.PermissionTransactionRead), txnHandler.MyTransactions)

	// Storefront transaction endpoints.
	frontendAuth := frontend.Use(authMiddleware.Handler)
	frontendAuth.Post("/payment-transactions", middleware.HasPermission(models.PermissionTransactionWrite), txnHandler.CreateDeposit)
	frontendAuth.Post("/deposit-sessions", middleware.HasPermission(models.PermissionTransactionWrite), sessionHandler.Create)
	frontendAuth.Get("/deposit-sessions/:reference", sessionHandler.Get)
	frontendAuth.Post("/card-token", middleware.HasPermission(models.PermissionTransactionWrite), cardHandler.Tokenize)

	app.Post("/api/withdraw-transaction/request", authMiddleware.Handler,
		middleware.HasPermission(models.PermissionTransactionWrite), txnHandler.CreateWithdrawal)

	// Auto-payment claim endpoints, polled by the deposit popup.
	app.Post("/auto-payment", authMiddleware.Handler,
		middleware.HasPermission(models.PermissionTransactionWrite), autopayHandler.Register)
	app.Get("/check-auto-payment/:transactionId", authMiddleware.Handler, autopayHandler.Check)

	// Game launch proxy.
	app.Post("/playgame", authMiddleware.Handler,
		middleware.HasPermission(models.PermissionGamePlay), gameHandler.Play)

	setupAdminRoutes(app, authMiddleware, userHandler, registryHandler, txnHandler, gameHandler, dashboardHandler)

	return &Deps{
		Transactions: txnService,
		Claims:       claimRepo,
	}
}

func setupAdminRoutes(
	app *fiber.App,
	authMiddleware *middleware.AuthMiddleware,
	userHandler *handlers.UserHandler,
	registryHandler *handlers.RegistryHandler,
	txnHandler *handlers.TransactionHandler,
	gameHandler *handlers.GameHandler,
	dashboardHandler *handlers.DashboardHandler,
) {
	admin := app.Group("/api/v1/admin", authMiddleware.Handler, middleware.AdminOnly)

	// Users
	admin.Get("/users", userHandler.List)
	admin.Get("/users/:id", userHandler.AdminGet)
	admin.Get("/users/:id/balance", userHandler.AdminBalance)
	admin.Put("/users/:id", userHandler.AdminUpdate)

	// Payment method registry
	admin.Get("/payment-methods", registryHandler.AdminListMethods)
	admin.Post("/payment-methods", registryHandler.AdminCreateMethod)
	admin.Put("/payment-methods/:id", registryHandler.AdminUpdateMethod)
	admin.Delete("/payment-methods/:id", registryHandler.AdminDeleteMethod)

	// Promotions
	admin.Get("/promotions", registryHandler.AdminListPromotions)
	admin.Post("/promotions", registryHandler.AdminCreatePromotion)
	admin.Put("/promotions/:id", registryHandler.AdminUpdatePromotion)
	admin.Delete("/promotions/:id", registryHandler.AdminDeletePromotion)

	// Transactions
	admin.Get("/transactions", txnHandler.AdminList)
	admin.Put("/transactions/:id/approve", txnHandler.AdminApprove)
	admin.Put("/transactions/:id/reject", txnHandler.AdminReject)

	// Game catalog
	admin.Get("/games", gameHandler.AdminList)
	admin.Post("/games", gameHandler.AdminCreate)
	admin.Put("/games/:id", gameHandler.AdminUpdate)
	admin.Delete("/games/:id", gameHandler.AdminDelete)

	// Legacy admin paths kept for the existing admin SPA.
	legacy := app.Group("/api", authMiddleware.Handler, middleware.AdminOnly)
	legacy.Get("/users", userHandler.List)
	legacy.Get("/users/:id", userHandler.AdminGet)
	legacy.Get("/users/:id/balance", userHandler.AdminBalance)
	legacy.Put("/users/:id", userHandler.AdminUpdate)
	legacy.Get("/count-users", dashboardHandler.CountUsers)
	legacy.Get("/count-affiliates", dashboardHandler.CountAffiliates)
	legacy.Get("/deposit/stats", dashboardHandler.DepositStats)
	legacy.Get("/withdraw-transaction/stats", dashboardHandler.WithdrawStats)
}
