package routes

import (
	"github.com/gin-gonic/gin"

	"xcribe/internal/api/auth"
	"xcribe/internal/api/v1/handlers"
	"xcribe/internal/api/v1/services"
)

// ServiceContainer bundles the services the v1 routes need.
type ServiceContainer struct {
	Auth           *auth.Service
	Profiles       services.ProfileService
	Transcriptions services.TranscriptionService
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	authHandler := handlers.NewAuthHandler(container.Auth)
	router.POST("/auth/login", authHandler.Login)

	// Everything past the login gate requires a session token.
	protected := router.Group("")
	protected.Use(container.Auth.RequireAuth())

	profileHandler := handlers.NewProfileHandler(container.Profiles)
	profiles := protected.Group("/profiles")
	{
		profiles.GET("", profileHandler.List)
		profiles.GET("/:id", profileHandler.Get)
		profiles.POST("", profileHandler.Create)
		profiles.PUT("/:id", profileHandler.Update)
		profiles.DELETE("/:id", profileHandler.Delete)
	}

	transcriptionHandler := handlers.NewTranscriptionHandler(container.Transcriptions, container.Profiles)
	transcriptions := protected.Group("/transcriptions")
	{
		transcriptions.POST("", transcriptionHandler.Create)
		transcriptions.POST("/export", transcriptionHandler.Export)
	}
}
