package routes

import (
	"campus-canteen-api/handlers"
	"campus-canteen-api/middleware"
	"campus-canteen-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Cafeterias & menus (no auth needed)
		public.GET("/cafeterias", handlers.ListCafeterias)
		public.GET("/cafeterias/:id", handlers.GetCafeteria)
		public.GET("/cafeterias/:id/menu", handlers.GetMenu)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
		auth.PUT("/profile", handlers.UpdateProfile)

		// Vendor onboarding: any account may apply or check its application
		auth.POST("/registration", handlers.SubmitRegistration)
		auth.GET("/registration", handlers.GetMyRegistration)
	}

	// ── Student routes ─────────────────────────────────────────────
	student := r.Group("/api/student")
	student.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleStudent))
	{
		student.POST("/orders", handlers.Checkout)
		student.GET("/orders", handlers.GetMyOrders)
		student.GET("/orders/:id", handlers.GetOrderDetail)
		student.PUT("/orders/:id/cancel", handlers.CancelOrder)
	}

	// ── Owner routes ───────────────────────────────────────────────
	owner := r.Group("/api/owner")
	owner.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleOwner))
	{
		// Cafeteria management
		owner.GET("/cafeteria", handlers.GetMyCafeteria)
		owner.PUT("/cafeteria", handlers.UpdateCafeteria)
		owner.PUT("/cafeteria/open", handlers.SetCafeteriaOpen)

		// Menu management
		owner.POST("/menu", handlers.AddMenuItem)
		owner.PUT("/menu/:itemId", handlers.UpdateMenuItem)
		owner.DELETE("/menu/:itemId", handlers.DeleteMenuItem)

		// Order management
		owner.GET("/orders", handlers.GetCafeteriaOrders)
		owner.PUT("/orders/:id/status", handlers.UpdateOrderStatus)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/registrations", handlers.AdminListRegistrations)
		admin.PUT("/registrations/:id/decision", handlers.AdminDecideRegistration)
		admin.GET("/users", handlers.AdminListUsers)
		admin.GET("/cafeterias", handlers.AdminListCafeterias)
		admin.GET("/orders", handlers.AdminListOrders)
	}
}
