package repositories

import (
	"errors"
	"fmt"
	"time"

	"festival-registration-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type registrationRepo struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepo{db: db}
}

func (r *registrationRepo) CreateRegistration(reg *models.Registration) error {
	if reg == nil {
		return errors.New("registration cannot be nil")
	}
	return r.db.Create(reg).Error
}

func (r *registrationRepo) GetRegistrationByID(id string) (*models.Registration, error) {
	if id == "" {
		return nil, errors.New("registration ID cannot be empty")
	}

	var reg models.Registration
	if err := r.db.Preload("Event").Where("id = ?", id).First(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("registration not found with ID: %s", id)
		}
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}

	return &reg, nil
}

func (r *registrationRepo) ListRegistrationsByUser(userID string) ([]models.Registration, error) {
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}

	var regs []models.Registration
	if err := r.db.Preload("Event").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&regs).Error; err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}

	return regs, nil
}

// ListRegistrations pages through registrations, optionally restricted to a
// set of event ids (the caller's admin scope) and a payment status.
func (r *registrationRepo) ListRegistrations(offset, limit int, eventIDs []uuid.UUID, status string) ([]models.Registration, int64, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var regs []models.Registration
	var total int64

	query := r.db.Model(&models.Registration{})
	if eventIDs != nil {
		query = query.Where("event_id IN ?", eventIDs)
	}
	if status != "" {
		query = query.Where("payment_status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count registrations: %w", err)
	}

	if err := query.
		Preload("Event").
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&regs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list registrations: %w", err)
	}

	return regs, total, nil
}

// UpdatePaymentStatus writes the single status field plus updated_at.
// Last write wins; there is no optimistic locking on admin edits.
func (r *registrationRepo) UpdatePaymentStatus(id, status string) error {
	result := r.db.Model(&models.Registration{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_status": status,
			"updated_at":     time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update payment status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("registration not found with ID: %s", id)
	}

	return nil
}

func (r *registrationRepo) DeleteRegistration(id string) error {
	if id == "" {
		return errors.New("registration ID cannot be empty")
	}

	result := r.db.Where("id = ?", id).Delete(&models.Registration{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete registration: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("registration not found with ID: %s", id)
	}

	return nil
}

func (r *registrationRepo) CountByEvent(eventID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Registration{}).
		Where("event_id = ?", eventID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *registrationRepo) CountByEventAndUser(eventID, userID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Registration{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *registrationRepo) CountByStatus(status string) (int64, error) {
	var count int64
	query := r.db.Model(&models.Registration{})
	if status != "" {
		query = query.Where("payment_status = ?", status)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
