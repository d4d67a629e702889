package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"bookmyrepair-server/config"
	"bookmyrepair-server/database"
	"bookmyrepair-server/jobs"
	"bookmyrepair-server/middleware"
	"bookmyrepair-server/routes"
	"bookmyrepair-server/services"
	ws "bookmyrepair-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	if err := seedDefaultCatalog(); err != nil {
		log.Printf("⚠️ Catalog seeding failed: %v", err)
	}

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "BookMyRepair server is running",
			"time":    time.Now().UTC(),
		})
	})

	// Tracking hub for status and live-location events
	hub := ws.NewHub()
	go hub.Run()

	notifier := services.NewDispatcher(config.AppConfig)
	bookingHandler := routes.NewBookingHandler(notifier, hub)

	api := router.Group("/api")
	{
		// Booking routes (public, tracked by id or tracking pair)
		bookingRoutes := api.Group("/bookings")
		bookingHandler.RegisterBookingRoutes(bookingRoutes)

		// Admin authentication routes (no authentication required)
		adminAuth := api.Group("/admin")
		routes.RegisterAdminAuthRoutes(adminAuth)

		// Protected routes for roster and catalog management
		protected := api.Group("")
		protected.Use(middleware.AdminAuthMiddleware())

		technicianRoutes := protected.Group("/technicians")
		routes.RegisterTechnicianRoutes(technicianRoutes)

		routes.RegisterCatalogRoutes(api, protected)
	}

	// Start background jobs
	staleLocationJob := jobs.NewStaleLocationJob()
	staleLocationJob.Start()
	defer staleLocationJob.Stop()

	port := config.AppConfig.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
