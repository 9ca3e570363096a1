// Package routes defines the API routing configuration.
// It wires repositories, services, and handlers and applies
// authentication middleware where required.
package routes

import (
	"vigil/internal/config"
	"vigil/internal/handlers"
	"vigil/internal/metrics"
	"vigil/internal/middleware"
	"vigil/internal/repositories"
	"vigil/internal/services/auth"
	"vigil/internal/services/classifier"
	"vigil/internal/services/dashboard"
	"vigil/internal/services/rule"
	"vigil/internal/services/transaction"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Repositories
	txRepo := repositories.NewTransactionRepository(db)
	ruleRepo := repositories.NewRuleRepository(db)
	userRepo := repositories.NewUserRepository(db)

	// Services
	authService := auth.NewService(userRepo, config.GetEnv("JWT_SECRET", "vigil"))
	ruleService := rule.NewService(ruleRepo, repositories.CacheService)

	collector := metrics.NewCollector()
	engine := classifier.NewService(ruleService, ruleRepo, txRepo, collector)
	txService := transaction.NewService(txRepo, engine)
	dashboardService := dashboard.NewService(txRepo, repositories.CacheService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	txHandler := handlers.NewTransactionHandler(txService, dashboardService)
	ruleHandler := handlers.NewRuleHandler(ruleService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	api := app.Group("/api")

	// Public
	api.Get("/health", handlers.HealthCheck)
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)

	// Authenticated
	authed := api.Group("/", middleware.Auth)
	authed.Post("/transactions", txHandler.Submit)
	authed.Get("/transactions", txHandler.List)
	authed.Get("/transactions/:id", txHandler.Get)

	authed.Get("/dashboard/summary", dashboardHandler.GetSummary)
	authed.Get("/dashboard/alerts", dashboardHandler.GetAlerts)
	authed.Get("/dashboard/volume", dashboardHandler.GetVolume)
	authed.Get("/dashboard/categories", dashboardHandler.GetCategories)

	// Admin
	admin := api.Group("/admin", middleware.Auth, middleware.AdminOnly)
	admin.Post("/rules", ruleHandler.Create)
	admin.Get("/rules", ruleHandler.List)
	admin.Put("/rules/:id", ruleHandler.Update)
	admin.Put("/transactions/:id/status", txHandler.OverrideStatus)

	// Metrics
	app.Get("/metrics", adaptor.HTTPHandler(collector.Handler()))
}
