package routes

import (
	"github.com/gin-gonic/gin"

	"document-approval-api/controllers"
	"document-approval-api/middleware"
	"document-approval-api/models"
	"document-approval-api/services"
)

// SetupRoutes registers every endpoint. Role gates follow the capability
// table: uploaders and admins submit, approver-side roles decide, admins own
// user and workflow management.
func SetupRoutes(router *gin.Engine, ctl *controllers.Set, tokens *services.TokenService, users services.UserStore) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/login", ctl.Auth.Login)
			public.POST("/logout", ctl.Auth.Logout)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Document Approval API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(tokens, users))
		{
			// Session and profile
			protected.GET("/me", ctl.Auth.Me)
			protected.PUT("/change-password", ctl.Auth.ChangePassword)

			// Dashboard
			protected.GET("/dashboard", ctl.Dashboard.Get)

			// Workflow templates
			workflows := protected.Group("/workflows")
			{
				workflows.GET("", ctl.Workflows.List)
				workflows.GET("/:id", ctl.Workflows.Get)
				workflows.POST("", middleware.RequireRole(models.RoleAdmin), ctl.Workflows.Create)
				workflows.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), ctl.Workflows.Deactivate)
			}

			// Documents
			documents := protected.Group("/documents")
			{
				documents.GET("", ctl.Documents.List)
				documents.GET("/:id", ctl.Documents.Get)
				documents.GET("/:id/download", ctl.Documents.Download)
				documents.POST("",
					middleware.RequireRole(models.RoleUploader, models.RoleAdmin),
					ctl.Documents.Upload)

				// Decisions on a document's live step
				documents.POST("/:id/decision",
					middleware.RequireRole(models.RoleApprover, models.RoleCEO, models.RoleAdmin),
					ctl.Approvals.Decide)
				documents.POST("/:id/skip",
					middleware.RequireRole(models.RoleUploader, models.RoleAdmin),
					ctl.Approvals.Skip)
			}

			// Approver queue and history
			approvals := protected.Group("/approvals")
			{
				approvals.GET("/queue", ctl.Approvals.Queue)
				approvals.GET("/history", ctl.Approvals.History)
			}

			// User management (admin only)
			adminUsers := protected.Group("/users")
			adminUsers.Use(middleware.RequireRole(models.RoleAdmin))
			{
				adminUsers.GET("", ctl.Users.List)
				adminUsers.POST("", ctl.Users.Create)
				adminUsers.PUT("/:id", ctl.Users.Update)
				adminUsers.DELETE("/:id", ctl.Users.Deactivate)
			}
		}
	}
}
