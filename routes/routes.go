package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tillpoint/handlers"
	"tillpoint/middleware"
)

// RegisterAuthRoutes registers login, registration, and admin management.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/auth")
	{
		api.POST("/login", hb.Auth.LoginAdmin)
		api.POST("/staff/login", hb.Auth.LoginStaff)
		api.POST("/reset-password", hb.Auth.ResetPassword)
		api.POST("/logout", hb.Auth.Logout)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.PUT("/me", middleware.RequireAdmin(), hb.Auth.UpdateMyProfile)

		super := protected.Group("")
		super.Use(middleware.RequireSuperAdmin())
		super.POST("/register", hb.Auth.RegisterAdmin)
		super.GET("/admins", hb.Auth.ListAdmins)
		super.PUT("/admins/:uid", hb.Auth.UpdateAdmin)
		super.DELETE("/admins/:uid", hb.Auth.DeleteAdmin)
	}
}

// RegisterStaffRoutes registers staff management and rating views.
func RegisterStaffRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/staff")
	api.Use(middleware.JWTAuthMiddleware())
	{
		// Staff read their own performance.
		api.GET("/performance", middleware.RequireStaff(), hb.Staff.GetMyPerformance)

		admin := api.Group("")
		admin.Use(middleware.RequireAdmin())
		admin.POST("", hb.Staff.CreateStaff)
		admin.GET("", hb.Staff.ListStaff)
		admin.GET("/leaderboard", hb.Staff.GetLeaderboard)
		admin.GET("/:id", hb.Staff.GetStaff)
		admin.PUT("/:id", hb.Staff.UpdateStaff)
		admin.DELETE("/:id", hb.Staff.DeleteStaff)
		admin.POST("/:id/regenerate-pin", hb.Staff.RegeneratePIN)
	}
}

// RegisterCatalogRoutes registers the business/service/item hierarchy.
// Item listing stays public so menus can be browsed without signing in.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/business")
	{
		api.GET("/:businessId/services/:serviceId/items", hb.Catalog.ListItems)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.GET("/mine", middleware.RequireAdmin(), hb.Catalog.GetMyBusiness)

		admin := protected.Group("")
		admin.Use(middleware.RequireAdmin())
		admin.POST("", hb.Catalog.CreateBusiness)
		admin.GET("/:businessId", hb.Catalog.GetBusiness)
		admin.PUT("/:businessId", hb.Catalog.UpdateBusiness)
		admin.DELETE("/:businessId", hb.Catalog.DeleteBusiness)

		admin.POST("/:businessId/services", hb.Catalog.CreateService)
		admin.GET("/:businessId/services", hb.Catalog.ListServices)
		admin.PUT("/:businessId/services/:serviceId", hb.Catalog.UpdateService)
		admin.DELETE("/:businessId/services/:serviceId", hb.Catalog.DeleteService)

		admin.POST("/:businessId/services/:serviceId/items", hb.Catalog.CreateItem)
		admin.PUT("/:businessId/services/:serviceId/items/:itemId", hb.Catalog.UpdateItem)
		admin.DELETE("/:businessId/services/:serviceId/items/:itemId", hb.Catalog.DeleteItem)
		admin.POST("/:businessId/services/:serviceId/items/:itemId/image", hb.Catalog.UploadItemImage)

		super := protected.Group("")
		super.Use(middleware.RequireSuperAdmin())
		super.GET("", hb.Catalog.ListBusinesses)
	}
}

// RegisterSessionRoutes registers POS sessions and the rating endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/sessions")
	{
		staff := api.Group("")
		staff.Use(middleware.JWTAuthMiddleware(), middleware.RequireStaff())
		staff.POST("", hb.Session.CreateSession)
		staff.GET("", hb.Session.ListMySessions)
		staff.POST("/:sessionID/rating", hb.Rating.SubmitRating)

		authed := api.Group("")
		authed.Use(middleware.JWTAuthMiddleware())
		authed.GET("/:sessionID", hb.Session.GetSession)
		authed.POST("/:sessionID/verify", middleware.RequireAdmin(), hb.Rating.VerifyRating)
	}
}

// RegisterAnalyticsRoutes registers the ranked rating views (admin only).
func RegisterAnalyticsRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/analytics")
	api.Use(middleware.JWTAuthMiddleware(), middleware.RequireAdmin())
	{
		api.GET("/top-staff", hb.Analytics.TopStaff)
		api.GET("/top-business", hb.Analytics.TopBusinesses)
		api.GET("/top-services", hb.Analytics.TopServices)
		api.GET("/top-items", hb.Analytics.TopItems)
	}
}

// RegisterSubscriptionRoutes registers the billing lifecycle.
func RegisterSubscriptionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/subscriptions")
	api.Use(middleware.JWTAuthMiddleware())
	{
		admin := api.Group("")
		admin.Use(middleware.RequireAdmin())
		admin.POST("", hb.Subscription.Subscribe)
		admin.GET("/mine", hb.Subscription.GetMySubscription)
		// Reads refresh the date-tracked status, so refresh is the same handler.
		admin.POST("/refresh-status", hb.Subscription.GetMySubscription)
		admin.POST("/receipt", hb.Subscription.SubmitReceipt)
		admin.DELETE("/mine", hb.Subscription.Unsubscribe)

		super := api.Group("")
		super.Use(middleware.RequireSuperAdmin())
		super.GET("", hb.Subscription.GetAll)
		super.GET("/pending", hb.Subscription.GetPending)
		super.POST("/create", hb.Subscription.CreateForAdmin)
		super.POST("/:id/approve", hb.Subscription.Approve)
		super.POST("/:id/reject", hb.Subscription.Reject)
		super.POST("/:id/expire-soon", hb.Subscription.ExpireSoon)
		super.POST("/:id/expire-now", hb.Subscription.ExpireNow)
		super.PUT("/:id", hb.Subscription.Edit)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "tillpoint up"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterStaffRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterSessionRoutes(r, hb)
	RegisterAnalyticsRoutes(r, hb)
	RegisterSubscriptionRoutes(r, hb)
	RegisterHealthRoute(r)
}
