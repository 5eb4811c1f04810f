package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"hrdocs-api/internal/adapters/http/middleware"
	"hrdocs-api/internal/adapters/http/routes"
	"hrdocs-api/internal/adapters/persistence/models"
	"hrdocs-api/internal/adapters/persistence/repositories"
	"hrdocs-api/internal/config"
	"hrdocs-api/internal/core/services"
	"hrdocs-api/internal/pkg/password"

	"github.com/gofiber/fiber/v2"

	_ "hrdocs-api/docs" // Swagger docs
)

// @title HR Docs API
// @version 1.0
// @description Identity and session API of the HR document-tracking backend

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}
	password.Cost = cfg.BcryptCost

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed the initial admin in dev only
	if cfg.IsDev() {
		if err := config.NewSeeder(db, cfg.Seed).Run(); err != nil {
			log.Printf("⚠️ Warning: Failed to seed database: %v", err)
		}
	}

	// Start the refresh session retention job
	cleanup := services.NewSessionCleanupService(
		repositories.NewRefreshTokenRepository(db),
		cfg.Session.CleanupCron,
		cfg.Session.Retention(),
	)
	if err := cleanup.Start(); err != nil {
		log.Fatalf("❌ Failed to start session cleanup: %v", err)
	}
	defer cleanup.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "HR Docs API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
