package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(
	e *echo.Echo,
	requireAuth echo.MiddlewareFunc,
	healthHandler *HealthCheckHandler,
	authHandler *AuthHandler,
	accountHandler *AccountHandler,
	categoryHandler *CategoryHandler,
	budgetHandler *BudgetHandler,
	transactionHandler *TransactionHandler,
	dashboardHandler *DashboardHandler,
	reportHandler *ReportHandler,
) {
	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// API version 1
	api := e.Group("/api/v1")

	// Auth routes (public)
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Profile routes (protected)
	profile := api.Group("/profile")
	profile.Use(requireAuth)
	profile.GET("", authHandler.GetProfile)
	profile.PUT("", authHandler.UpdateProfile)
	profile.PUT("/password", authHandler.ChangePassword)

	// Account routes (protected)
	accounts := api.Group("/accounts")
	accounts.Use(requireAuth)
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetAccounts)
	accounts.GET("/:id", accountHandler.GetAccount)
	accounts.PUT("/:id", accountHandler.UpdateAccount)
	accounts.DELETE("/:id", accountHandler.DeleteAccount)

	// Category routes (protected)
	categories := api.Group("/categories")
	categories.Use(requireAuth)
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Budget routes (protected)
	budgets := api.Group("/budgets")
	budgets.Use(requireAuth)
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	// Transaction routes (protected). Edits and deletes address the
	// transaction by the id field in the request body.
	transactions := api.Group("/transactions")
	transactions.Use(requireAuth)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("", transactionHandler.UpdateTransaction)
	transactions.DELETE("", transactionHandler.DeleteTransaction)

	// Dashboard routes (protected)
	dashboard := api.Group("/dashboard")
	dashboard.Use(requireAuth)
	dashboard.GET("", dashboardHandler.GetDashboard)

	// Report routes (protected)
	reports := api.Group("/reports")
	reports.Use(requireAuth)
	reports.GET("/monthly", reportHandler.MonthlyReport)
}
