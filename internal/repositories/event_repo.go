package repositories

import (
	"errors"
	"fmt"

	"festival-registration-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type eventRepo struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) CreateEvent(event *models.Event) error {
	if event == nil {
		return errors.New("event cannot be nil")
	}

	// Events must attach to an existing department.
	var dept models.Department
	if err := r.db.Where("id = ?", event.DepartmentID).First(&dept).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("department not found with ID: %s", event.DepartmentID)
		}
		return fmt.Errorf("failed to check department existence: %w", err)
	}

	return r.db.Create(event).Error
}

func (r *eventRepo) GetEventByID(id string) (*models.Event, error) {
	if id == "" {
		return nil, errors.New("event ID cannot be empty")
	}

	var event models.Event
	if err := r.db.Where("id = ?", id).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("event not found with ID: %s", id)
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return &event, nil
}

// ListEvents retrieves a paginated list of events with optional filters.
func (r *eventRepo) ListEvents(offset, limit int, filters *EventFilters) ([]models.Event, int64, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var events []models.Event
	var total int64

	query := r.db.Model(&models.Event{})

	if filters != nil {
		if filters.DepartmentID != "" {
			query = query.Where("department_id = ?", filters.DepartmentID)
		}
		if filters.EventType != "" {
			query = query.Where("event_type = ?", filters.EventType)
		}
		if filters.Trending != nil {
			query = query.Where("is_trending = ?", *filters.Trending)
		}
		if filters.Search != "" {
			searchTerm := "%" + filters.Search + "%"
			query = query.Where("title ILIKE ? OR description ILIKE ?", searchTerm, searchTerm)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	if err := query.
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}

	return events, total, nil
}

func (r *eventRepo) UpdateEvent(event *models.Event) error {
	if event == nil {
		return errors.New("event cannot be nil")
	}

	var existing models.Event
	if err := r.db.Where("id = ?", event.ID).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("event not found with ID: %s", event.ID)
		}
		return fmt.Errorf("failed to check event existence: %w", err)
	}

	return r.db.Save(event).Error
}

func (r *eventRepo) DeleteEvent(id string) error {
	if id == "" {
		return errors.New("event ID cannot be empty")
	}

	result := r.db.Where("id = ?", id).Delete(&models.Event{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete event: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("event not found with ID: %s", id)
	}

	return nil
}

func (r *eventRepo) CountEvents() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Event{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListEventIDsByDepartment returns the ids of every event owned by a
// department. Used to scope a department admin's registration listing.
func (r *eventRepo) ListEventIDsByDepartment(departmentID string) ([]uuid.UUID, error) {
	if departmentID == "" {
		return nil, errors.New("department ID cannot be empty")
	}

	var ids []uuid.UUID
	if err := r.db.Model(&models.Event{}).
		Where("department_id = ?", departmentID).
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list event ids: %w", err)
	}

	return ids, nil
}
