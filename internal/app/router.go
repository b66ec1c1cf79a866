package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"bikerental/internal/handler"
	"bikerental/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	ClientHandler    *handler.ClientHandler
	BikeHandler      *handler.BikeHandler
	RentalHandler    *handler.RentalHandler
	PaymentHandler   *handler.PaymentHandler
	ReportHandler    *handler.ReportHandler
	DashboardHandler *handler.DashboardHandler
	RedisClient      *redis.Client
	NewRelicApp      *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS())

	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
		router.Use(middleware.NoticeErrors())
	}

	router.Use(middleware.Idempotency(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		clients := v1.Group("/clients")
		{
			clients.POST("", deps.ClientHandler.Create)
			clients.GET("", deps.ClientHandler.GetAll)
			clients.GET("/search", deps.ClientHandler.GetAll)
			clients.GET("/:id", deps.ClientHandler.Get)
			clients.PUT("/:id", deps.ClientHandler.Update)
			clients.DELETE("/:id", deps.ClientHandler.Delete)
			clients.GET("/:id/history", deps.ClientHandler.History)
		}

		bikes := v1.Group("/bikes")
		{
			bikes.POST("", deps.BikeHandler.Create)
			bikes.GET("", deps.BikeHandler.GetAll)
			bikes.GET("/search", deps.BikeHandler.GetAll)
			bikes.GET("/available", deps.BikeHandler.GetAvailable)
			bikes.PUT("/:id", deps.BikeHandler.Update)
			bikes.DELETE("/:id", deps.BikeHandler.Delete)
			bikes.POST("/:id/status", deps.BikeHandler.ChangeStatus)
		}

		rentals := v1.Group("/rentals")
		{
			rentals.POST("", deps.RentalHandler.Create)
			rentals.POST("/quote", deps.RentalHandler.Quote)
			rentals.GET("/active", deps.RentalHandler.GetActive)
			rentals.GET("/:id", deps.RentalHandler.Get)
			rentals.POST("/:id/complete", deps.RentalHandler.Complete)
			rentals.POST("/:id/extend", deps.RentalHandler.Extend)
			rentals.DELETE("/:id", deps.RentalHandler.Cancel)
		}

		payments := v1.Group("/payments")
		{
			payments.GET("", deps.PaymentHandler.GetAll)
			payments.GET("/:id", deps.PaymentHandler.Get)
		}

		v1.POST("/reports", deps.ReportHandler.Generate)
		v1.GET("/dashboard", deps.DashboardHandler.Get)
	}

	return router
}
