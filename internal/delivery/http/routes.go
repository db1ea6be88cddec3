package http

import (
	"github.com/gin-gonic/gin"

	"github.com/MarieAhluwalia/nutrimap/config"
	"github.com/MarieAhluwalia/nutrimap/internal/platform/logger"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, log *logger.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(log))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	limited := router.Group("/", RateLimitMiddleware(cfg.RateLimit.PerIP))

	// API v1 routes
	v1 := limited.Group("/api/v1")
	{
		v1.GET("/categories", handler.ListCategories)

		foods := v1.Group("/foods")
		{
			foods.POST("/classify", handler.ClassifyNutrients)
			foods.POST("/swap", handler.SuggestSwap)
			foods.GET("/:name/category", handler.GetFoodCategory)
		}
	}

	// Agent tool calls
	limited.POST("/mcp", handler.CallTool)

	return router
}
