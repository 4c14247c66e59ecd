package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"festival-registration-backend/internal/config"
	"festival-registration-backend/internal/handlers"
	"festival-registration-backend/internal/notifier"
	"festival-registration-backend/internal/repositories"
	"festival-registration-backend/internal/services"
	"festival-registration-backend/pkg/database"
	"festival-registration-backend/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	// Initialize logger
	logger.Init()

	// Load configuration
	cfg, err := config.NewConfigFromEnv()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// Initialize database
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// Run migrations
	if err := repositories.AutoMigrate(db); err != nil {
		log.Fatalf("Migration error: %v", err)
	}

	// Initialize repositories
	repo := repositories.NewRepository(db)

	// Registration change channel + live counter (optional)
	var changes notifier.Publisher = notifier.NoopPublisher{}
	var counter *notifier.Counter
	if cfg.RabbitURL != "" {
		client, err := notifier.NewClient(cfg.RabbitURL, cfg.RabbitExchange, cfg.RabbitQueue)
		if err != nil {
			log.Fatalf("RabbitMQ connection error: %v", err)
		}
		defer client.Close()
		changes = client

		counter = notifier.NewCounter(client, repo.RegistrationRepo)
		if err := counter.Start(context.Background()); err != nil {
			log.Fatalf("Registration counter error: %v", err)
		}
		defer counter.Stop()
	}

	// Initialize services
	authSvc := services.NewAuthService(repo, cfg)
	deptSvc := services.NewDepartmentService(repo, cfg)
	eventSvc := services.NewEventService(repo, cfg)
	regSvc := services.NewRegistrationService(repo, cfg, changes)
	adminSvc := services.NewAdminService(repo, cfg)

	// Initialize handlers
	handler := handlers.NewHandler(authSvc, deptSvc, eventSvc, regSvc, adminSvc, repo, counter, cfg)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Festival Registration API",
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Create upload directories
	for _, dir := range []string{cfg.EventImageDir, cfg.PaymentQRDir, cfg.TicketQRDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create upload directory %s: %v", dir, err)
		}
	}

	// Static file serving: uploads are publicly retrievable by URL
	app.Static("/event-images", cfg.EventImageDir)
	app.Static("/payment-qrcodes", cfg.PaymentQRDir)
	app.Static("/ticket-qrcodes", cfg.TicketQRDir)

	// Register routes
	api := app.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("🚀 Server starting on %s", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped gracefully")
}
