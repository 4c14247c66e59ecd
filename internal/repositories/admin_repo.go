package repositories

import (
	"errors"
	"fmt"

	"festival-registration-backend/internal/models"

	"gorm.io/gorm"
)

type adminRepo struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) GetAdminByID(id string) (*models.Admin, error) {
	if id == "" {
		return nil, errors.New("admin ID cannot be empty")
	}

	var admin models.Admin
	if err := r.db.Where("id = ?", id).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepo) ListAdmins() ([]models.Admin, error) {
	var admins []models.Admin
	if err := r.db.Order("created_at ASC").Find(&admins).Error; err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	return admins, nil
}

func (r *adminRepo) CreateAdmin(admin *models.Admin) error {
	if admin == nil {
		return errors.New("admin cannot be nil")
	}

	// One admin row per identity.
	var existing models.Admin
	if err := r.db.Where("id = ?", admin.ID).First(&existing).Error; err == nil {
		return fmt.Errorf("user %s is already an admin", admin.ID)
	}

	return r.db.Create(admin).Error
}

func (r *adminRepo) DeleteAdmin(id string) error {
	if id == "" {
		return errors.New("admin ID cannot be empty")
	}

	result := r.db.Where("id = ?", id).Delete(&models.Admin{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete admin: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("admin not found with ID: %s", id)
	}

	return nil
}
