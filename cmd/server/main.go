package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"shopno-backend/internal/adapters/http/middleware"
	"shopno-backend/internal/adapters/http/routes"
	"shopno-backend/internal/adapters/persistence/models"
	"shopno-backend/internal/adapters/persistence/repositories"
	"shopno-backend/internal/config"
	"shopno-backend/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "shopno-backend/docs" // Swagger docs
)

// @title Shopno Somiti API
// @version 1.0
// @description সমবায় সমিতি হিসাবরক্ষণ ব্যবস্থা - Shopno Somiti v1.0 API

// @contact.name API Support
// @contact.email support@somiti360.com

// @host api.somiti360.com
// @BasePath /api/v1
// @schemes https

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

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed the initial superadmin account
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed initial data: %v", err)
	}

	// Start the deposit reminder sweep
	reminder := services.NewReminderService(
		repositories.NewMemberRepository(db),
		repositories.NewDepositRepository(db),
		cfg.Society.ReminderCron,
	)
	reminder.Start()
	defer reminder.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Shopno Somiti API v1.0",
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
