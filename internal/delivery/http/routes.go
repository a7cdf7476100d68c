package http

import (
	"github.com/gin-gonic/gin"
	"github.com/layoutforge/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		images := v1.Group("/images")
		{
			images.POST("/analyze", handler.AnalyzeImages)
		}

		products := v1.Group("/products")
		{
			products.POST("/parse", handler.ParseProducts)
		}

		layouts := v1.Group("/layouts")
		{
			layouts.POST("/generate", handler.GenerateLayouts)
		}
	}

	return router
}
