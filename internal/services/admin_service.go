package services

import (
	"errors"

	"festival-registration-backend/internal/authz"
	"festival-registration-backend/internal/config"
	"festival-registration-backend/internal/models"
	"festival-registration-backend/internal/repositories"

	"github.com/google/uuid"
)

type AdminService struct {
	repo *repositories.Repository
	cfg  *config.Config
}

func NewAdminService(repo *repositories.Repository, cfg *config.Config) *AdminService {
	return &AdminService{repo: repo, cfg: cfg}
}

type CreateAdminRequest struct {
	UserID       string
	Role         string
	DepartmentID string
	EventID      string
}

// CreateAdmin grants a role to an existing user. A main admin may create
// any role; a department admin may create only event admins for events in
// its own department; an event admin may create none. Scope invariants are
// enforced structurally before the write.
func (s *AdminService) CreateAdmin(creator *models.Admin, req CreateAdminRequest) (*models.Admin, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, errors.New("invalid user ID")
	}

	user, err := s.repo.UserRepo.GetUserByID(req.UserID)
	if err != nil {
		return nil, errors.New("user not found")
	}

	admin := &models.Admin{
		ID:       userID,
		Role:     req.Role,
		Username: user.Email,
	}

	var targetEvent *models.Event

	switch req.Role {
	case models.RoleMainAdmin:
		// No scope.
	case models.RoleDepartmentAdmin:
		if req.DepartmentID == "" {
			return nil, errors.New("department_admin requires a department_id")
		}
		deptID, err := uuid.Parse(req.DepartmentID)
		if err != nil {
			return nil, errors.New("invalid department ID")
		}
		if _, err := s.repo.DepartmentRepo.GetDepartmentByID(req.DepartmentID); err != nil {
			return nil, errors.New("department not found")
		}
		admin.DepartmentID = &deptID
	case models.RoleEventAdmin:
		if req.EventID == "" {
			return nil, errors.New("event_admin requires an event_id")
		}
		eventID, err := uuid.Parse(req.EventID)
		if err != nil {
			return nil, errors.New("invalid event ID")
		}
		targetEvent, err = s.repo.EventRepo.GetEventByID(req.EventID)
		if err != nil {
			return nil, errors.New("event not found")
		}
		admin.EventID = &eventID
		// department_id on an event admin, when present, mirrors the
		// event's owning department.
		deptID := targetEvent.DepartmentID
		admin.DepartmentID = &deptID
	default:
		return nil, errors.New("role must be main_admin, department_admin or event_admin")
	}

	if !authz.CanCreateAdmin(creator, req.Role, targetEvent) {
		return nil, ErrPermissionDenied
	}
	if !authz.ValidScope(admin) {
		return nil, errors.New("admin scope is inconsistent with its role")
	}

	if err := s.repo.AdminRepo.CreateAdmin(admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *AdminService) DeleteAdmin(caller *models.Admin, id string) error {
	if !authz.CanDeleteAdmin(caller) {
		return ErrPermissionDenied
	}
	if caller.ID.String() == id {
		return errors.New("cannot delete your own admin account")
	}
	return s.repo.AdminRepo.DeleteAdmin(id)
}

func (s *AdminService) ListAdmins(caller *models.Admin) ([]models.Admin, error) {
	if caller == nil {
		return nil, ErrPermissionDenied
	}
	return s.repo.AdminRepo.ListAdmins()
}

// SearchUsers backs the admin-creation user picker: id and email for every
// identity, optionally filtered. Main and department admins may search.
func (s *AdminService) SearchUsers(caller *models.Admin, search string) ([]models.User, error) {
	if caller == nil || caller.Role == models.RoleEventAdmin {
		return nil, ErrPermissionDenied
	}
	return s.repo.UserRepo.SearchUsers(search, 50)
}

type Stats struct {
	Departments   int64 `json:"departments"`
	Events        int64 `json:"events"`
	Registrations int64 `json:"registrations"`
	Pending       int64 `json:"pending"`
	Verified      int64 `json:"verified"`
	Rejected      int64 `json:"rejected"`
}

func (s *AdminService) GetStats(caller *models.Admin) (*Stats, error) {
	if caller == nil || caller.Role != models.RoleMainAdmin {
		return nil, ErrPermissionDenied
	}

	stats := &Stats{}
	var err error

	if stats.Departments, err = s.repo.DepartmentRepo.CountDepartments(); err != nil {
		return nil, err
	}
	if stats.Events, err = s.repo.EventRepo.CountEvents(); err != nil {
		return nil, err
	}
	if stats.Registrations, err = s.repo.RegistrationRepo.CountByStatus(""); err != nil {
		return nil, err
	}
	if stats.Pending, err = s.repo.RegistrationRepo.CountByStatus(models.StatusPending); err != nil {
		return nil, err
	}
	if stats.Verified, err = s.repo.RegistrationRepo.CountByStatus(models.StatusVerified); err != nil {
		return nil, err
	}
	if stats.Rejected, err = s.repo.RegistrationRepo.CountByStatus(models.StatusRejected); err != nil {
		return nil, err
	}

	return stats, nil
}
