package routes

import (
	"time"

	"voyago/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterPipelineRoutes registers the resolution pipeline endpoints.
func RegisterPipelineRoutes(r *gin.Engine, ph *handlers.PipelineHandler) {
	api := r.Group("/api/pipeline")
	{
		api.POST("/run", ph.Run)
		api.POST("/tag", ph.Tag)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, ph *handlers.PipelineHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterPipelineRoutes(r, ph)
	RegisterHealthRoute(r)
}
