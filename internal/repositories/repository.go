package repositories

import (
	"festival-registration-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository struct {
	DB               *gorm.DB
	UserRepo         UserRepository
	ProfileRepo      ProfileRepository
	DepartmentRepo   DepartmentRepository
	EventRepo        EventRepository
	RegistrationRepo RegistrationRepository
	AdminRepo        AdminRepository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:               db,
		UserRepo:         NewUserRepository(db),
		ProfileRepo:      NewProfileRepository(db),
		DepartmentRepo:   NewDepartmentRepository(db),
		EventRepo:        NewEventRepository(db),
		RegistrationRepo: NewRegistrationRepository(db),
		AdminRepo:        NewAdminRepository(db),
	}
}

func AutoMigrate(db *gorm.DB) error {
	// Enable UUID extension
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Department{},
		&models.Coordinator{},
		&models.Event{},
		&models.Registration{},
		&models.Admin{},
	)
}

// Interface definitions
type UserRepository interface {
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	CreateUser(user *models.User) error
	UpdateUser(user *models.User) error
	SearchUsers(search string, limit int) ([]models.User, error)
}

type ProfileRepository interface {
	GetProfileByID(id string) (*models.Profile, error)
	CreateProfile(profile *models.Profile) error
	UpdateProfile(profile *models.Profile) error
}

type DepartmentRepository interface {
	CreateDepartment(dept *models.Department) error
	GetDepartmentByID(id string) (*models.Department, error)
	ListDepartments() ([]models.Department, error)
	UpdateDepartment(dept *models.Department) error
	DeleteDepartment(id string) error
	CountDepartments() (int64, error)

	// Coordinators
	CreateCoordinator(coord *models.Coordinator) error
	GetCoordinatorByID(id string) (*models.Coordinator, error)
	ListCoordinatorsByDepartment(departmentID string) ([]models.Coordinator, error)
	UpdateCoordinator(coord *models.Coordinator) error
	DeleteCoordinator(id string) error
}

type EventFilters struct {
	DepartmentID string
	EventType    string
	Trending     *bool
	Search       string
}

type EventRepository interface {
	CreateEvent(event *models.Event) error
	GetEventByID(id string) (*models.Event, error)
	ListEvents(offset, limit int, filters *EventFilters) ([]models.Event, int64, error)
	UpdateEvent(event *models.Event) error
	DeleteEvent(id string) error
	CountEvents() (int64, error)
	ListEventIDsByDepartment(departmentID string) ([]uuid.UUID, error)
}

type RegistrationRepository interface {
	CreateRegistration(reg *models.Registration) error
	GetRegistrationByID(id string) (*models.Registration, error)
	ListRegistrationsByUser(userID string) ([]models.Registration, error)
	ListRegistrations(offset, limit int, eventIDs []uuid.UUID, status string) ([]models.Registration, int64, error)
	UpdatePaymentStatus(id, status string) error
	DeleteRegistration(id string) error
	CountByEvent(eventID string) (int64, error)
	CountByEventAndUser(eventID, userID string) (int64, error)
	CountByStatus(status string) (int64, error)
}

type AdminRepository interface {
	GetAdminByID(id string) (*models.Admin, error)
	ListAdmins() ([]models.Admin, error)
	CreateAdmin(admin *models.Admin) error
	DeleteAdmin(id string) error
}
