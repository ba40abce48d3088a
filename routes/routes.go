package routes

import (
	"legal-aid-api/controllers"
	"legal-aid-api/middleware"
	"legal-aid-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, docs *controllers.DocumentController, webhooks *controllers.WebhookController) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)

			// Inbound automation gateway (shared-secret header, no session)
			public.POST("/webhooks/automation", webhooks.AutomationResult)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Legal Aid API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Auth management
			protected.POST("/logout", controllers.Logout)

			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/profile", controllers.UpdateProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Clients
			clients := protected.Group("/clients")
			{
				clients.GET("", controllers.GetClients)
				clients.POST("", controllers.CreateClient)
				clients.GET("/:id", controllers.GetClient)
				clients.PUT("/:id", controllers.UpdateClient)
				clients.DELETE("/:id", controllers.DeleteClient)
			}

			// Cases
			cases := protected.Group("/cases")
			{
				cases.GET("", controllers.GetCases)
				cases.POST("", controllers.CreateCase)
				cases.GET("/:id", controllers.GetCase)
				cases.PUT("/:id", controllers.UpdateCase)
				cases.DELETE("/:id", controllers.DeleteCase)
			}

			// Documents
			documents := protected.Group("/documents")
			{
				documents.GET("", docs.List)
				documents.POST("", docs.Create)
				documents.GET("/:id", docs.Get)
				documents.PATCH("/:id/status", docs.UpdateStatus)
				documents.DELETE("/:id", docs.Delete)
			}

			// Dashboard
			protected.GET("/dashboard/stats", controllers.GetDashboardStats)

			// User management (admin only)
			users := protected.Group("/users", middleware.RequireRole(models.RoleAdmin))
			{
				users.GET("", controllers.GetUsers)
				users.PUT("/:id/active", controllers.SetUserActive)
			}
		}
	}
}
