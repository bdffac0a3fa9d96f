package routes

import (
	"central360/internal/core/container"
	"central360/internal/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(c *container.Container) *gin.Engine {
	if c.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.RequestLogger(c.Logger),
		middleware.RecoveryMiddleware(c.Logger),
		middleware.ErrorDetails(!c.Config.IsProduction()),
	)

	RegisterUtilityRoutes(router, c)
	RegisterAPIRoutes(router, c)

	return router
}

func RegisterAPIRoutes(router *gin.Engine, c *container.Container) {
	api := router.Group("/api/v1")
	writeLimit := middleware.WriteRateLimit(c.WriteLimiter)

	c.StockHandler.RegisterRoutes(api, writeLimit)
	c.StockItemHandler.RegisterRoutes(api, writeLimit)
	c.SectorHandler.RegisterRoutes(api, writeLimit)
}

func RegisterUtilityRoutes(router *gin.Engine, c *container.Container) {
	health := c.HealthChecker.Handler()
	router.GET("/health", health)
	router.GET("/api/health", health)
}
