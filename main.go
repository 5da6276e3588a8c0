package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Private-Fox7/Empathy-Pulse/config"
	"github.com/Private-Fox7/Empathy-Pulse/jobs"
	"github.com/Private-Fox7/Empathy-Pulse/middleware"
	"github.com/Private-Fox7/Empathy-Pulse/routes"
	"github.com/Private-Fox7/Empathy-Pulse/services"
	"github.com/Private-Fox7/Empathy-Pulse/store"
	ws "github.com/Private-Fox7/Empathy-Pulse/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize the document store
	if err := store.Initialize(); err != nil {
		log.Fatal("Failed to initialize document store:", err)
	}

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

	// Security headers (must be first)
	router.Use(middleware.SecurityHeadersMiddleware())

	// Input validation
	router.Use(middleware.InputValidationMiddleware())

	// Rate limiting
	router.Use(middleware.RateLimitMiddleware())

	// Secure CORS
	router.Use(middleware.CORSMiddleware())

	// Audit logging
	router.Use(middleware.AuditLogMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Empathy Pulse server is running",
			"time":    time.Now().UTC(),
		})
	})

	// WebSocket hub for pushing priority alerts to admin dashboards
	hub := ws.NewHub()
	go hub.Run()

	adminWSHandler := ws.NewAdminHandler(hub)
	router.GET("/api/v1/ws/admin", adminWSHandler.HandleAdmin)

	// Wire up the sentiment pipeline and alert evaluation
	classifierService := services.NewClassifierService()
	alertService := services.NewAlertService(store.Data, hub, config.AppConfig.Alerts.Threshold)
	routes.InitServices(classifierService, alertService)

	// API routes
	api := router.Group("/api/v1")
	{
		// Employee auth routes (no authentication required) - with strict rate limiting
		authRoutes := api.Group("/auth")
		authRoutes.Use(middleware.AuthRateLimitMiddleware())
		routes.RegisterAuthRoutes(authRoutes)

		// Employee feedback routes (protected)
		feedbackRoutes := api.Group("/feedback")
		feedbackRoutes.Use(middleware.AuthMiddleware())
		routes.RegisterFeedbackRoutes(feedbackRoutes)

		// Admin authentication routes (no authentication required)
		adminAuth := api.Group("/admin/auth")
		adminAuth.GET("/setup-status", routes.AdminSetupStatus)
		adminAuth.POST("/setup", middleware.AuthRateLimitMiddleware(), routes.AdminSetup)
		adminAuth.POST("/login", middleware.AuthRateLimitMiddleware(), routes.AdminLogin)

		// Admin routes (protected with admin authentication)
		adminRoutes := api.Group("/admin")
		adminRoutes.Use(routes.AdminAuthMiddleware())
		{
			// Admin current user
			adminRoutes.GET("/auth/me", routes.GetCurrentAdmin)

			// Admin dashboard
			adminRoutes.GET("/dashboard/stats", routes.GetDashboardStats)

			// Admin feedback management
			adminRoutes.GET("/feedback", routes.GetAllFeedback)
			adminRoutes.POST("/feedback/:id/complete", routes.MarkFeedbackComplete)
			adminRoutes.POST("/feedback/:id/dismiss-alert", routes.DismissAlert)
			adminRoutes.GET("/alerts", routes.GetActiveAlerts)

			// Admin employee management
			adminRoutes.GET("/employees", routes.GetAllEmployees)
			adminRoutes.POST("/employees", routes.CreateEmployee)
			adminRoutes.DELETE("/employees/:emp_id", routes.DeleteEmployee)

			// Report export
			adminRoutes.GET("/export", routes.ExportReport)
		}
	}

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start background jobs
	alertJob := jobs.NewAlertJob(alertService)
	alertJob.Start()
	defer alertJob.Stop()

	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
