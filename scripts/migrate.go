package main

import (
	"log"

	"festival-registration-backend/internal/config"
	"festival-registration-backend/internal/models"
	"festival-registration-backend/internal/repositories"
	"festival-registration-backend/internal/utils"
	"festival-registration-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

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

	log.Println("✅ Database migrations completed successfully")

	// Create default main admin if not exists
	if err := createDefaultAdmin(db); err != nil {
		log.Fatalf("Failed to create default admin: %v", err)
	}

	log.Println("✅ Default main admin created (if not exists)")
	log.Println("🎉 Migration process completed!")
}

func createDefaultAdmin(db *gorm.DB) error {
	adminEmail := "admin@festival.local"
	adminPassword := "admin123"

	// Check if admin user already exists
	var existingUser models.User
	if err := db.Where("email = ?", adminEmail).First(&existingUser).Error; err == nil {
		log.Println("ℹ️  Default admin user already exists")
		return nil
	}

	// Hash password
	hashedPassword, err := utils.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	// Create account + main_admin role row
	user := &models.User{
		ID:       uuid.New(),
		Email:    adminEmail,
		Password: hashedPassword,
	}
	if err := db.Create(user).Error; err != nil {
		return err
	}

	admin := &models.Admin{
		ID:       user.ID,
		Role:     models.RoleMainAdmin,
		Username: adminEmail,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Default main admin created:")
	log.Printf("   Email: %s", adminEmail)
	log.Printf("   Password: %s", adminPassword)

	return nil
}
