package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	// Health checks (no /api/v1 prefix for standard health endpoints)
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadinessCheck)

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(handler.metrics.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health checks
		v1.GET("/health", handler.HealthCheck)
		v1.GET("/ready", handler.ReadinessCheck)

		// Analytic views
		insights := v1.Group("/insights")
		{
			insights.POST("/emotions", handler.Emotions)
			insights.POST("/leaderboard", handler.Leaderboard)
			insights.POST("/inflation", handler.Inflation)
			insights.POST("/trust", handler.Trust)
			insights.POST("/sectors", handler.Sectors)
		}
	}
}
