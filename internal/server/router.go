// Package server assembles the HTTP API from services and middleware.
package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/JimJafar/pension-tracker/internal/handlers"
	"github.com/JimJafar/pension-tracker/internal/middleware"
	"github.com/JimJafar/pension-tracker/internal/services"

	_ "github.com/JimJafar/pension-tracker/internal/docs" // swagger docs
)

// Options carries the settings the router needs from configuration.
type Options struct {
	CORSOrigin         string
	LoginRatePerMinute int
	Swagger            bool
}

// NewRouter wires every service into its handler and registers the API
// routes. prices is the process-wide quote service.
func NewRouter(db *gorm.DB, prices services.PriceSource, sessions *middleware.Sessions, opts Options) *gin.Engine {
	// Services
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	pensionService := services.NewPensionService(db)
	contributionService := services.NewContributionService(db)
	holdingService := services.NewHoldingService(db)
	stockService := services.NewStockService(prices)
	dashboardService := services.NewDashboardService(db, prices)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, sessions, auditService)
	pensionHandler := handlers.NewPensionHandler(pensionService, auditService)
	contributionHandler := handlers.NewContributionHandler(contributionService, auditService)
	holdingHandler := handlers.NewHoldingHandler(holdingService, auditService)
	stockHandler := handlers.NewStockHandler(stockService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	healthHandler := handlers.NewHealthHandler(stockService)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.CORS(opts.CORSOrigin))
	router.Use(middleware.ErrorHandler())

	if opts.Swagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := router.Group("/api")
	api.GET("/health", healthHandler.Health)

	// Public auth routes
	loginLimiter := middleware.NewRateLimiter(opts.LoginRatePerMinute)
	auth := api.Group("/auth")
	auth.POST("/login", loginLimiter.Middleware(), authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/session", sessions.OptionalAuth(), authHandler.Session)

	// Protected routes
	protected := api.Group("")
	protected.Use(sessions.RequireAuth())

	pensions := protected.Group("/pensions")
	pensions.GET("", pensionHandler.ListPensions)
	pensions.POST("", pensionHandler.CreatePension)
	pensions.GET("/:id", pensionHandler.GetPension)
	pensions.PUT("/:id", pensionHandler.UpdatePension)
	pensions.DELETE("/:id", pensionHandler.DeletePension)
	pensions.GET("/:id/contributions", contributionHandler.ListContributions)
	pensions.POST("/:id/contributions", contributionHandler.CreateContribution)
	pensions.GET("/:id/expected-contributions", contributionHandler.GetExpectedContributions)
	pensions.GET("/:id/missing-contributions", contributionHandler.GetMissingContributions)
	pensions.GET("/:id/holdings", holdingHandler.ListHoldings)
	pensions.POST("/:id/holdings", holdingHandler.CreateHolding)

	contributions := protected.Group("/contributions")
	contributions.PUT("/:id", contributionHandler.UpdateContribution)
	contributions.DELETE("/:id", contributionHandler.DeleteContribution)

	holdings := protected.Group("/holdings")
	holdings.PUT("/:id", holdingHandler.UpdateHolding)
	holdings.DELETE("/:id", holdingHandler.DeleteHolding)

	stocks := protected.Group("/stocks")
	stocks.GET("/prices", stockHandler.GetPrices)
	stocks.GET("/quote/:ticker", stockHandler.GetQuote)

	protected.GET("/dashboard", dashboardHandler.GetDashboard)

	return router
}
