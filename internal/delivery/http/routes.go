package http

import (
	"github.com/gin-gonic/gin"

	"github.com/nutriplan/engine/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/meal", handler.SuggestMeal)
		v1.POST("/meal/compose", handler.ComposeMeal)
		v1.POST("/plan", handler.GeneratePlan)

		nutrition := v1.Group("/nutrition")
		{
			nutrition.POST("/score", handler.ScoreNutrition)
		}
	}

	return router
}
