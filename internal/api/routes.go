package api

import (
	"alcyxob/adaptive-coach/internal/domain"
	"alcyxob/adaptive-coach/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Services bundles what the handlers depend on.
type Services struct {
	Auth       service.AuthService
	Profile    service.ProfileService
	Exercise   service.ExerciseService
	Workout    service.WorkoutService
	Adaptation service.AdaptationService
}

func SetupRoutes(router *gin.Engine, jwtSecret string, services Services) {
	authHandler := NewAuthHandler(services.Auth)
	profileHandler := NewProfileHandler(services.Profile)
	exerciseHandler := NewExerciseHandler(services.Exercise)
	workoutHandler := NewWorkoutHandler(services.Workout)
	adaptationHandler := NewAdaptationHandler(services.Adaptation)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(jwtSecret))
	{
		protected.GET("/profile", profileHandler.GetProfile)
		protected.PUT("/profile", profileHandler.UpdateProfile)

		// Trainers curate the catalog; everyone can read it.
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.POST("", RoleMiddleware(domain.RoleTrainer), exerciseHandler.CreateExercise)
			exerciseGroup.POST("/:id/media-upload-url", RoleMiddleware(domain.RoleTrainer), exerciseHandler.RequestMediaUpload)
			exerciseGroup.GET("/:id/media-url", exerciseHandler.GetMediaURL)
		}

		workoutGroup := protected.Group("/workouts")
		workoutGroup.Use(RoleMiddleware(domain.RoleClient))
		{
			workoutGroup.GET("", workoutHandler.ListWorkouts)
			workoutGroup.GET("/today", workoutHandler.GetTodayWorkout)
			workoutGroup.POST("/generate", workoutHandler.GenerateWorkout)
			workoutGroup.POST("/:id/complete", workoutHandler.CompleteExercise)
			workoutGroup.GET("/:id/score", workoutHandler.ScoreWorkout)
			workoutGroup.POST("/:id/adaptations", adaptationHandler.ApplyAdaptation)
		}

		protected.GET("/progress", RoleMiddleware(domain.RoleClient), workoutHandler.GetProgress)

		adaptationGroup := protected.Group("/adaptations")
		adaptationGroup.Use(RoleMiddleware(domain.RoleClient))
		{
			adaptationGroup.GET("/insights", adaptationHandler.GetInsights)
			adaptationGroup.GET("/history", adaptationHandler.GetHistory)
		}
	}
}
