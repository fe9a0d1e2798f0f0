package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/onflows/telemetry-backend-go/internal/config"
	"github.com/onflows/telemetry-backend-go/internal/handler"
	"github.com/onflows/telemetry-backend-go/internal/middleware"
)

// SetupRouter wires middleware and routes.
func SetupRouter(cfg *config.Config, activityHandler *handler.ActivityHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Telemetry Backend API is running",
		})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(cfg.RateLimit, cfg.RateLimitWindow))
	if cfg.JWTSecret != "" {
		api.Use(middleware.Auth(cfg.JWTSecret))
	}
	{
		api.POST("/sync", activityHandler.SyncActivities)

		activities := api.Group("/activities")
		{
			activities.GET("", activityHandler.ListActivities)
			activities.POST("/:id/process", activityHandler.ProcessActivity)
			activities.GET("/:id/rows", activityHandler.GetRows)
			activities.GET("/:id/artifacts", activityHandler.GetArtifacts)
			activities.GET("/:id/windows", activityHandler.GetWindows)
		}
	}

	return r
}
