package routes

import (
	"task-review-api/controllers"
	"task-review-api/middleware"
	"task-review-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/register", controllers.Register)
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Task Review API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)

			// Submissions
			submissions := protected.Group("/submissions")
			{
				submissions.GET("", controllers.GetSubmissions)
				submissions.GET("/:id", controllers.GetSubmission)
				submissions.GET("/:id/file", controllers.DownloadSubmissionFile)

				// Only contributors create submissions
				submissions.POST("", middleware.RequireRole(models.RoleContributor), controllers.CreateSubmission)

				// Reviewer workflow
				submissions.POST("/:id/claim", middleware.RequireRole(models.RoleReviewer), controllers.ClaimSubmission)
				submissions.POST("/:id/unclaim", middleware.RequireRole(models.RoleReviewer), controllers.UnclaimSubmission)
				submissions.POST("/:id/review", middleware.RequireRole(models.RoleReviewer), controllers.SubmitReview)

				// Only admin removes individual submissions
				submissions.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteSubmission)
			}

			// Admin user management
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/users", controllers.GetUsers)
				admin.DELETE("/users", controllers.DeleteUser)
			}
		}

	}

	// 404 handler for unknown routes
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "Endpoint not found"})
	})
}
