package services

import (
	"errors"
	"time"

	"festival-registration-backend/internal/authz"
	"festival-registration-backend/internal/config"
	"festival-registration-backend/internal/models"
	"festival-registration-backend/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type EventService struct {
	repo *repositories.Repository
	cfg  *config.Config
}

func NewEventService(repo *repositories.Repository, cfg *config.Config) *EventService {
	return &EventService{repo: repo, cfg: cfg}
}

type EventRequest struct {
	DepartmentID        string
	Title               string
	Description         string
	EventType           string
	TeamSize            int
	RegistrationFee     float64
	Venue               string
	ConductionVenue     string
	Date                *time.Time
	FacultyCoordinators []models.EventCoordinator
	StudentCoordinators []models.EventCoordinator
	IsTrending          bool
}

func (s *EventService) CreateEvent(admin *models.Admin, req EventRequest) (*models.Event, error) {
	deptID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return nil, errors.New("invalid department ID")
	}
	if !authz.CanCreateEvent(admin, deptID) {
		return nil, ErrPermissionDenied
	}
	if req.TeamSize < 1 {
		return nil, errors.New("team size must be at least 1")
	}
	if req.RegistrationFee < 0 {
		return nil, errors.New("registration fee cannot be negative")
	}

	event := &models.Event{
		ID:                  uuid.New(),
		DepartmentID:        deptID,
		Title:               req.Title,
		Description:         req.Description,
		EventType:           req.EventType,
		TeamSize:            req.TeamSize,
		RegistrationFee:     req.RegistrationFee,
		Venue:               req.Venue,
		ConductionVenue:     req.ConductionVenue,
		Date:                req.Date,
		FacultyCoordinators: datatypes.NewJSONSlice(req.FacultyCoordinators),
		StudentCoordinators: datatypes.NewJSONSlice(req.StudentCoordinators),
		IsTrending:          req.IsTrending,
	}

	if err := s.repo.EventRepo.CreateEvent(event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) UpdateEvent(admin *models.Admin, id string, req EventRequest) (*models.Event, error) {
	event, err := s.repo.EventRepo.GetEventByID(id)
	if err != nil {
		return nil, err
	}
	if !authz.CanEditEvent(admin, event) {
		return nil, ErrPermissionDenied
	}

	deptID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return nil, errors.New("invalid department ID")
	}
	if deptID != event.DepartmentID {
		// Moving an event between departments is a department-level change.
		if !authz.CanChangeEventDepartment(admin) {
			return nil, ErrPermissionDenied
		}
		if !authz.CanCreateEvent(admin, deptID) {
			return nil, ErrPermissionDenied
		}
		event.DepartmentID = deptID
	}
	if req.TeamSize < 1 {
		return nil, errors.New("team size must be at least 1")
	}
	if req.RegistrationFee < 0 {
		return nil, errors.New("registration fee cannot be negative")
	}

	event.Title = req.Title
	event.Description = req.Description
	event.EventType = req.EventType
	event.TeamSize = req.TeamSize
	event.RegistrationFee = req.RegistrationFee
	event.Venue = req.Venue
	event.ConductionVenue = req.ConductionVenue
	event.Date = req.Date
	event.FacultyCoordinators = datatypes.NewJSONSlice(req.FacultyCoordinators)
	event.StudentCoordinators = datatypes.NewJSONSlice(req.StudentCoordinators)
	event.IsTrending = req.IsTrending

	if err := s.repo.EventRepo.UpdateEvent(event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) DeleteEvent(admin *models.Admin, id string) error {
	event, err := s.repo.EventRepo.GetEventByID(id)
	if err != nil {
		return err
	}
	if !authz.CanDeleteEvent(admin, event) {
		return ErrPermissionDenied
	}
	return s.repo.EventRepo.DeleteEvent(id)
}

// SetEventImage stores the public URL of an uploaded event image.
func (s *EventService) SetEventImage(admin *models.Admin, id, imageURL string) (*models.Event, error) {
	return s.setEventURL(admin, id, func(e *models.Event) { e.ImageURL = imageURL })
}

// SetPaymentQR stores the public URL of an uploaded payment QR code.
func (s *EventService) SetPaymentQR(admin *models.Admin, id, qrURL string) (*models.Event, error) {
	return s.setEventURL(admin, id, func(e *models.Event) { e.PaymentQRURL = qrURL })
}

func (s *EventService) setEventURL(admin *models.Admin, id string, apply func(*models.Event)) (*models.Event, error) {
	event, err := s.repo.EventRepo.GetEventByID(id)
	if err != nil {
		return nil, err
	}
	if !authz.CanEditEvent(admin, event) {
		return nil, ErrPermissionDenied
	}

	apply(event)
	if err := s.repo.EventRepo.UpdateEvent(event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) ListEvents(page, pageSize int, filters *repositories.EventFilters) ([]models.Event, int64, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize
	events, total, err := s.repo.EventRepo.ListEvents(offset, pageSize, filters)
	if err != nil {
		return nil, 0, 0, err
	}

	totalPages := (int(total) + pageSize - 1) / pageSize
	return events, total, totalPages, nil
}

func (s *EventService) GetEvent(id string) (*models.Event, error) {
	return s.repo.EventRepo.GetEventByID(id)
}
