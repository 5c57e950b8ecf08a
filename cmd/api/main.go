package main

import (
	"log"
	"os"
	"time"

	"task-review-api/config"
	"task-review-api/middleware"
	"task-review-api/routes"
	"task-review-api/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Send logs to stdout and the log file
	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	// Initialize database and file storage
	config.InitDB()
	config.InitStorage()

	// Set Gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Add logging middleware
	router.Use(gin.Logger())

	// Add recovery middleware
	router.Use(gin.Recovery())

	// Add security headers middleware
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	})

	// Add CORS middleware
	router.Use(middleware.CORSMiddleware())

	// Optional: Add rate limiting (uncomment in production)
	// router.Use(middleware.RateLimitMiddleware(100))

	// Setup routes
	routes.SetupRoutes(router)

	// Schedule the orphan-file sweep when configured, e.g. "@hourly"
	if schedule := os.Getenv("ORPHAN_SWEEP_SCHEDULE"); schedule != "" {
		grace, _ := time.ParseDuration(os.Getenv("ORPHAN_SWEEP_GRACE"))
		job := services.NewOrphanSweepJob(config.DB, config.FileStore(), grace)

		scheduler := cron.New()
		if _, err := scheduler.AddJob(schedule, job); err != nil {
			log.Fatal("Invalid ORPHAN_SWEEP_SCHEDULE:", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
		log.Printf("Orphan sweep scheduled: %s", schedule)
	}

	// Start server
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
