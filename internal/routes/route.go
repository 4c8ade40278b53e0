package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventtickets/internal/container"
	"github.com/joshua-takyi/eventtickets/internal/handlers"
	"github.com/joshua-takyi/eventtickets/internal/helpers"
	"github.com/joshua-takyi/eventtickets/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     container.Config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "X-RateLimit-Remaining"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.RateLimit(container.Redis, container.Config.RateLimitMax, container.Config.RateLimitWindow, container.Logger))

	api.GET("/status", handlers.Status())
	api.GET("/health", handlers.Health(container.HealthChecks))

	authenticated := middleware.AuthMiddleware(container.AuthService, container.Logger)
	staffOnly := middleware.RequireRole(helpers.RoleStaff)
	adminOnly := middleware.RequireRole(helpers.RoleAdmin)

	eventRoutes := api.Group("/events")
	{
		eventRoutes.GET("", handlers.ListEvents(container.CatalogService))
		eventRoutes.GET("/:id", handlers.GetEvent(container.CatalogService))
		eventRoutes.POST("", authenticated, adminOnly, handlers.CreateEvent(container.CatalogService))
		eventRoutes.PUT("/:id", authenticated, adminOnly, handlers.UpdateEvent(container.CatalogService))
		eventRoutes.DELETE("/:id", authenticated, adminOnly, handlers.DeleteEvent(container.CatalogService))
	}

	orderRoutes := api.Group("/orders")
	{
		orderRoutes.POST("", handlers.CreateOrder(container.OrderService))
		orderRoutes.GET("/:id", handlers.GetOrder(container.OrderService))
		orderRoutes.GET("", authenticated, staffOnly, handlers.ListOrders(container.OrderService))
		orderRoutes.PATCH("/:id/status", authenticated, staffOnly, handlers.UpdateOrderStatus(container.OrderService))
		orderRoutes.POST("/:id/checkin", authenticated, staffOnly, handlers.CheckInGuest(container.CheckinService))
		orderRoutes.GET("/:id/checkin", authenticated, staffOnly, handlers.GetCheckinStatus(container.CheckinService))
	}

	settingsRoutes := api.Group("/settings")
	{
		settingsRoutes.GET("", handlers.GetPublicSettings(container.SettingsService))
		settingsRoutes.GET("/bank", handlers.GetBankDetails(container.SettingsService))
		settingsRoutes.GET("/admin", authenticated, staffOnly, handlers.GetAdminSettings(container.SettingsService))
		settingsRoutes.PUT("", authenticated, adminOnly, handlers.UpdateSettings(container.SettingsService))
	}

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/login", handlers.Login(container.AuthService))
		authRoutes.GET("/verify", authenticated, handlers.Verify())
		authRoutes.POST("/logout", authenticated, handlers.Logout())
		authRoutes.POST("/change-password", authenticated, handlers.ChangePassword(container.AuthService))
	}

	return r
}
