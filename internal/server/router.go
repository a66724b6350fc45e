// Package server assembles the HTTP router.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"fintrack/internal/config"
	_ "fintrack/internal/docs" // swagger spec
	apperrors "fintrack/internal/errors"
	"fintrack/internal/handlers"
	"fintrack/internal/middleware"
	"fintrack/internal/services"
	"fintrack/internal/validator"
)

const healthTimeout = 2 * time.Second

// HealthResponse is returned by the health check.
type HealthResponse struct {
	Status string `json:"status"`
}

// NewRouter wires services, handlers and middleware on top of db.
func NewRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	validator.Register()

	userService := services.NewUserService(db, cfg.BcryptCost)
	categoryService := services.NewCategoryService(db)
	transactionService := services.NewTransactionService(db, userService, categoryService)
	reportService := services.NewReportService(db, cfg.Location)

	auth := middleware.NewAuth(cfg)

	authHandler := handlers.NewAuthHandler(userService, auth)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, cfg.Location)
	reportHandler := handlers.NewReportHandler(reportService, cfg.Location)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(middleware.ErrorHandler())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	api.GET("/health", healthCheck(db))

	// Public routes
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.GET("/transaction_types", categoryHandler.ListTransactionTypes)
	api.GET("/categories", categoryHandler.ListCategories)
	api.GET("/categories/:type_id", categoryHandler.ListCategoriesByType)

	// User-scoped routes
	transactions := api.Group("/transactions")
	transactions.Use(auth.AuthMiddleware())
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)
	transactions.GET("/:user_id", transactionHandler.GetRecentTransactions)
	transactions.GET("/count/:user_id", transactionHandler.CountTransactions)
	transactions.GET("/total/:user_id", reportHandler.GetBalance)
	transactions.GET("/monthly/:user_id", reportHandler.GetMonthlySummary)
	transactions.GET("/monthly-summary/:user_id", reportHandler.GetMonthlySummary)
	transactions.GET("/monthly-incomes/:user_id", reportHandler.GetMonthlyIncomes)
	transactions.GET("/monthly-expenses/:user_id", reportHandler.GetMonthlyExpenses)
	transactions.GET("/paginated/:user_id", reportHandler.ListTransactions)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, apperrors.ErrNotFound.Body())
	})

	return router
}

// healthCheck reports whether the database answers a ping.
// @Summary  Health check
// @Tags     health
// @Produce  json
// @Success  200 {object} HealthResponse
// @Failure  503 {object} HealthResponse
// @Router   /health [get]
func healthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
			return
		}
		c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
	}
}
