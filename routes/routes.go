package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"idea-portal-api/controllers"
	"idea-portal-api/middleware"
)

func SetupRoutes(router *gin.Engine) {
	// Public routes. Paths match the frontend contract exactly.
	public := router.Group("")
	{
		// OTP authentication
		public.POST("/request-otp", controllers.RequestOTP)
		public.POST("/resend-otp", controllers.RequestOTP)
		public.POST("/verify-otp", controllers.VerifyOTP)
		public.POST("/getUserDetails", controllers.GetUserDetails)

		// Idea submission
		public.POST("/submit-form", controllers.SubmitForm)
		public.GET("/submissions", controllers.ListIdeas)

		// Idea workflow
		public.GET("/ideas", controllers.ListIdeas)
		public.GET("/idea/:id", controllers.GetIdea)
		public.GET("/user-ideas/:employeeId", controllers.GetUserIdeas)
		public.PUT("/update-status/:id", controllers.UpdateIdeaStatus)
		public.POST("/approveIdea", controllers.ApproveIdea)
		public.PUT("/reject-ideas/:id", controllers.RejectIdea)

		// Health check
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"message": "Idea Portal API is running",
			})
		})

		// Prometheus metrics
		public.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// Protected routes (require the session token from /verify-otp)
	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/me", controllers.GetMe)
		protected.GET("/notifications", controllers.GetMyNotifications)
		protected.PUT("/notifications/:id/read", controllers.MarkNotificationRead)

		admin := protected.Group("", middleware.RequireAdmin())
		admin.GET("/ideas-summary", controllers.GetIdeaSummary)
	}
}
