package http

import (
	"github.com/gin-gonic/gin"

	"github.com/efe-storefront/backend/config"
)

// SetupRouter creates and configures the Gin router. limiter may be nil to
// disable per-IP rate limiting.
func SetupRouter(cfg *config.Config, handler *Handler, limiter *IPRateLimiter) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Slug params reach the codec still percent-encoded; it decodes once
	router.UseRawPath = true
	router.UnescapePathValues = false

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	if limiter != nil {
		v1.Use(limiter.Middleware())
	}
	{
		products := v1.Group("/products")
		{
			products.GET("/:slug", handler.GetProductPage)
			products.GET("/:slug/variants", handler.GetVariantLinks)
		}

		slugs := v1.Group("/slugs")
		{
			slugs.GET("/:slug", handler.DecodeSlug)
			slugs.POST("/visual", handler.BuildVisualSlug)
			slugs.POST("/multi", handler.BuildMultiSlug)
		}

		favorites := v1.Group("/favorites")
		{
			favorites.POST("/resolve", handler.ResolveFavorites)
		}
	}

	return router
}
