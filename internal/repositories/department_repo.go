package repositories

import (
	"errors"
	"fmt"

	"festival-registration-backend/internal/models"

	"gorm.io/gorm"
)

type departmentRepo struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepo{db: db}
}

func (r *departmentRepo) CreateDepartment(dept *models.Department) error {
	if dept == nil {
		return errors.New("department cannot be nil")
	}
	return r.db.Create(dept).Error
}

func (r *departmentRepo) GetDepartmentByID(id string) (*models.Department, error) {
	if id == "" {
		return nil, errors.New("department ID cannot be empty")
	}

	var dept models.Department
	if err := r.db.
		Preload("Coordinators", func(db *gorm.DB) *gorm.DB {
			return db.Order("coordinators.name ASC")
		}).
		Where("id = ?", id).
		First(&dept).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("department not found with ID: %s", id)
		}
		return nil, fmt.Errorf("failed to get department: %w", err)
	}

	return &dept, nil
}

func (r *departmentRepo) ListDepartments() ([]models.Department, error) {
	var depts []models.Department
	if err := r.db.Order("name ASC").Find(&depts).Error; err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return depts, nil
}

func (r *departmentRepo) UpdateDepartment(dept *models.Department) error {
	if dept == nil {
		return errors.New("department cannot be nil")
	}

	var existing models.Department
	if err := r.db.Where("id = ?", dept.ID).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("department not found with ID: %s", dept.ID)
		}
		return fmt.Errorf("failed to check department existence: %w", err)
	}

	return r.db.Save(dept).Error
}

// DeleteDepartment removes the row; dependent events and coordinators go
// with it through the ON DELETE CASCADE constraints.
func (r *departmentRepo) DeleteDepartment(id string) error {
	if id == "" {
		return errors.New("department ID cannot be empty")
	}

	result := r.db.Where("id = ?", id).Delete(&models.Department{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete department: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("department not found with ID: %s", id)
	}

	return nil
}

func (r *departmentRepo) CountDepartments() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Department{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *departmentRepo) CreateCoordinator(coord *models.Coordinator) error {
	if coord == nil {
		return errors.New("coordinator cannot be nil")
	}

	// Coordinators must attach to an existing department.
	var dept models.Department
	if err := r.db.Where("id = ?", coord.DepartmentID).First(&dept).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("department not found with ID: %s", coord.DepartmentID)
		}
		return fmt.Errorf("failed to check department existence: %w", err)
	}

	return r.db.Create(coord).Error
}

func (r *departmentRepo) GetCoordinatorByID(id string) (*models.Coordinator, error) {
	if id == "" {
		return nil, errors.New("coordinator ID cannot be empty")
	}

	var coord models.Coordinator
	if err := r.db.Where("id = ?", id).First(&coord).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("coordinator not found with ID: %s", id)
		}
		return nil, fmt.Errorf("failed to get coordinator: %w", err)
	}

	return &coord, nil
}

func (r *departmentRepo) ListCoordinatorsByDepartment(departmentID string) ([]models.Coordinator, error) {
	if departmentID == "" {
		return nil, errors.New("department ID cannot be empty")
	}

	var coords []models.Coordinator
	if err := r.db.
		Where("department_id = ?", departmentID).
		Order("name ASC").
		Find(&coords).Error; err != nil {
		return nil, fmt.Errorf("failed to list coordinators: %w", err)
	}

	return coords, nil
}

func (r *departmentRepo) UpdateCoordinator(coord *models.Coordinator) error {
	if coord == nil {
		return errors.New("coordinator cannot be nil")
	}
	return r.db.Save(coord).Error
}

func (r *departmentRepo) DeleteCoordinator(id string) error {
	if id == "" {
		return errors.New("coordinator ID cannot be empty")
	}

	result := r.db.Where("id = ?", id).Delete(&models.Coordinator{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete coordinator: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("coordinator not found with ID: %s", id)
	}

	return nil
}
