package routes

import (
	"time"

	"photo-review-api/controllers"
	"photo-review-api/middleware"

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
					"message": "Photo Review API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile and standing
			protected.GET("/profile", controllers.GetProfile)
			protected.GET("/user/strikes", controllers.GetStrikes)
			protected.POST("/user/reset-strikes", controllers.ResetStrikes)

			// Photos
			photos := protected.Group("/photos")
			{
				photos.POST("", middleware.RateLimit("upload", 5, time.Minute), controllers.UploadPhoto)
				photos.GET("", controllers.GetMyPhotos)
				photos.GET("/analytics", controllers.GetPhotoAnalytics)
			}

			// Review workflow
			protected.GET("/assignments", controllers.GetAssignments)
			protected.POST("/reviews", controllers.SubmitReview)
			protected.POST("/rate-reviews", controllers.RateReviews)
			protected.GET("/feedback", controllers.GetFeedback)

			// Development helpers (blocked in production)
			admin := protected.Group("/admin")
			{
				admin.POST("/fix-review-counts", controllers.FixReviewCounts)
				admin.POST("/photos/:id/simulate-reviews", controllers.SimulateReviews)
			}
		}
	}
}
