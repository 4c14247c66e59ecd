package services

import (
	"errors"

	"festival-registration-backend/internal/authz"
	"festival-registration-backend/internal/config"
	"festival-registration-backend/internal/models"
	"festival-registration-backend/internal/repositories"

	"github.com/google/uuid"
)

// ErrPermissionDenied is returned by every service mutation whose
// authorization check fails. Checks always run before any write.
var ErrPermissionDenied = errors.New("permission denied")

type DepartmentService struct {
	repo *repositories.Repository
	cfg  *config.Config
}

func NewDepartmentService(repo *repositories.Repository, cfg *config.Config) *DepartmentService {
	return &DepartmentService{repo: repo, cfg: cfg}
}

type DepartmentRequest struct {
	Name      string
	ShortName string
	Icon      string
}

func (s *DepartmentService) CreateDepartment(admin *models.Admin, req DepartmentRequest) (*models.Department, error) {
	if !authz.CanManageDepartments(admin) {
		return nil, ErrPermissionDenied
	}

	dept := &models.Department{
		ID:        uuid.New(),
		Name:      req.Name,
		ShortName: req.ShortName,
		Icon:      req.Icon,
	}
	if err := s.repo.DepartmentRepo.CreateDepartment(dept); err != nil {
		return nil, err
	}
	return dept, nil
}

func (s *DepartmentService) UpdateDepartment(admin *models.Admin, id string, req DepartmentRequest) (*models.Department, error) {
	if !authz.CanManageDepartments(admin) {
		return nil, ErrPermissionDenied
	}

	dept, err := s.repo.DepartmentRepo.GetDepartmentByID(id)
	if err != nil {
		return nil, err
	}

	dept.Name = req.Name
	dept.ShortName = req.ShortName
	dept.Icon = req.Icon

	if err := s.repo.DepartmentRepo.UpdateDepartment(dept); err != nil {
		return nil, err
	}
	return dept, nil
}

// DeleteDepartment removes the department; the database cascades the delete
// to its events and coordinators.
func (s *DepartmentService) DeleteDepartment(admin *models.Admin, id string) error {
	if !authz.CanManageDepartments(admin) {
		return ErrPermissionDenied
	}
	return s.repo.DepartmentRepo.DeleteDepartment(id)
}

func (s *DepartmentService) ListDepartments() ([]models.Department, error) {
	return s.repo.DepartmentRepo.ListDepartments()
}

func (s *DepartmentService) GetDepartment(id string) (*models.Department, error) {
	return s.repo.DepartmentRepo.GetDepartmentByID(id)
}

type CoordinatorRequest struct {
	Name        string
	PhoneNumber string
}

func (s *DepartmentService) AddCoordinator(admin *models.Admin, departmentID string, req CoordinatorRequest) (*models.Coordinator, error) {
	deptID, err := uuid.Parse(departmentID)
	if err != nil {
		return nil, errors.New("invalid department ID")
	}
	if !authz.CanManageCoordinators(admin, deptID) {
		return nil, ErrPermissionDenied
	}

	coord := &models.Coordinator{
		ID:           uuid.New(),
		DepartmentID: deptID,
		Name:         req.Name,
		PhoneNumber:  req.PhoneNumber,
	}
	if err := s.repo.DepartmentRepo.CreateCoordinator(coord); err != nil {
		return nil, err
	}
	return coord, nil
}

func (s *DepartmentService) UpdateCoordinator(admin *models.Admin, id string, req CoordinatorRequest) (*models.Coordinator, error) {
	coord, err := s.repo.DepartmentRepo.GetCoordinatorByID(id)
	if err != nil {
		return nil, err
	}
	if !authz.CanManageCoordinators(admin, coord.DepartmentID) {
		return nil, ErrPermissionDenied
	}

	coord.Name = req.Name
	coord.PhoneNumber = req.PhoneNumber

	if err := s.repo.DepartmentRepo.UpdateCoordinator(coord); err != nil {
		return nil, err
	}
	return coord, nil
}

func (s *DepartmentService) DeleteCoordinator(admin *models.Admin, id string) error {
	coord, err := s.repo.DepartmentRepo.GetCoordinatorByID(id)
	if err != nil {
		return err
	}
	if !authz.CanManageCoordinators(admin, coord.DepartmentID) {
		return ErrPermissionDenied
	}
	return s.repo.DepartmentRepo.DeleteCoordinator(id)
}
