package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"laundry-service-server/config"
	"laundry-service-server/database"
	"laundry-service-server/jobs"
	"laundry-service-server/middleware"
	"laundry-service-server/realtime"
	"laundry-service-server/routes"
	"laundry-service-server/services"
	ws "laundry-service-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database (runs migrations)
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	seedServiceCatalog()

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Disable automatic redirects for trailing slashes
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security middleware stack
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.InputValidationMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.AuditLogMiddleware())

	// Websocket hub for the admin dashboard
	hub := ws.NewHub()
	go hub.Run()

	// Realtime sync layer: write paths publish change events, the syncer
	// debounces them, refetches collections and derives notifications.
	db := database.GetDB()
	syncer := realtime.NewSyncer(
		realtime.NewGormBackend(db),
		realtime.NewGormNotificationSink(db),
		hub,
	)
	syncer.Start()
	defer syncer.Stop()

	routes.Init(syncer, hub)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Laundry Service Server is running",
			"time":    time.Now().UTC(),
		})
	})

	// Dashboard websocket endpoint
	router.GET("/api/v1/ws/admin", routes.ServeAdminWebSocket)

	// API routes
	api := router.Group("/api/v1")
	{
		// Auth routes (no authentication required) - with strict rate limiting
		authRoutes := api.Group("/auth")
		authRoutes.Use(middleware.AuthRateLimitMiddleware())
		routes.RegisterAuthRoutes(authRoutes)

		// Public routes
		api.GET("/services", routes.GetServiceCatalog)
		api.GET("/plans", routes.GetSubscriptionPlans)
		api.POST("/contact", routes.SubmitContactMessage)

		// Protected customer routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			orderRoutes := protected.Group("/orders")
			routes.RegisterOrderRoutes(orderRoutes)
			routes.RegisterOrderMediaRoutes(orderRoutes)

			supportRoutes := protected.Group("/support-tickets")
			routes.RegisterSupportRoutes(supportRoutes)

			subscriptionRoutes := protected.Group("/subscriptions")
			routes.RegisterSubscriptionRoutes(subscriptionRoutes)

			protected.POST("/notifications/register-token", routes.RegisterPushToken)
		}

		// Admin authentication (no authentication required)
		adminAuth := api.Group("/admin/auth")
		adminAuth.Use(middleware.AuthRateLimitMiddleware())
		adminAuth.POST("/login", routes.AdminLogin)

		// Admin routes (protected with admin authentication)
		adminRoutes := api.Group("/admin")
		adminRoutes.Use(middleware.AdminAuthMiddleware())
		{
			routes.RegisterAdminRoutes(adminRoutes)
			routes.RegisterAdminOrderRoutes(adminRoutes)
			routes.RegisterAdminNotificationRoutes(adminRoutes)
			routes.RegisterAdminSupportRoutes(adminRoutes)
			routes.RegisterAdminSubscriptionRoutes(adminRoutes)
			routes.RegisterAdminContactRoutes(adminRoutes)
			routes.RegisterAdminServiceRoutes(adminRoutes)
			routes.RegisterAdminTripRoutes(adminRoutes)
			routes.RegisterAdminPaymentRoutes(adminRoutes)
		}
	}

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start background jobs
	staleOrderJob := jobs.NewStaleOrderJob(syncer.Feed(), 24*time.Hour)
	staleOrderJob.Start()
	defer staleOrderJob.Stop()

	// Token cleanup job
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			jwtService := services.NewJWTService()
			if err := jwtService.CleanupExpiredTokens(); err != nil {
				log.Printf("❌ Token cleanup failed: %v", err)
			}
		}
	}()

	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
