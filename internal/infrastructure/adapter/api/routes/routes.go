package routes

import (
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/permission"
	coreport "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/core"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers groups the HTTP handlers mounted by SetupRoutes
type Handlers struct {
	Transactions *handler.TransactionHandler
	Users        *handler.UserHandler
	Permissions  *handler.PermissionHandler
	Health       *handler.HealthHandler
}

// SetupRoutes configures all the routes for the API.
// Every /api route runs authenticate first, then the permission check of its operation.
func SetupRoutes(router *gin.Engine, h Handlers, authenticate gin.HandlerFunc, checker middleware.PermissionChecker) {
	router.GET("/health", h.Health.Health)

	api := router.Group("/api", authenticate)
	require := func(p permission.Permission) gin.HandlerFunc {
		return middleware.RequirePermission(checker, p)
	}

	transactions := api.Group("/transactions")
	{
		transactions.POST("", require(permission.CreateTransactions), h.Transactions.Create)
		transactions.GET("", require(permission.ViewTransactions), h.Transactions.List)
		transactions.GET("/:id", require(permission.ViewTransactions), h.Transactions.Get)
		transactions.GET("/:id/events", require(permission.ViewTransactions), h.Transactions.Events)
		transactions.POST("/:id/real-amount", require(permission.ValidateTransactions), h.Transactions.SubmitRealAmount)
		transactions.POST("/:id/execute", require(permission.ExecuteTransactions), h.Transactions.Execute)
		transactions.POST("/:id/close", require(permission.CloseTransactions), h.Transactions.Close)
		transactions.POST("/:id/delete-request", require(permission.RequestDeleteTransactions), h.Transactions.RequestDelete)
		transactions.POST("/:id/delete-approval", require(permission.ApproveDeleteTransactions), h.Transactions.ApproveDelete)
	}

	users := api.Group("/users")
	{
		users.POST("", require(permission.ManageUsers), h.Users.Create)
		users.GET("", require(permission.ViewUsers), h.Users.List)
		users.GET("/:id", require(permission.ViewUsers), h.Users.Get)
	}

	api.GET("/me/permissions", h.Permissions.Mine)
	api.GET("/permissions/check", h.Permissions.Check)
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, timeProvider coreport.TimeProvider) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger, timeProvider))
}
