package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Admin roles.
const (
	RoleMainAdmin       = "main_admin"
	RoleDepartmentAdmin = "department_admin"
	RoleEventAdmin      = "event_admin"
)

// Registration payment statuses.
const (
	StatusPending  = "Pending"
	StatusVerified = "Verified"
	StatusRejected = "Rejected"
)

// Registration payment methods.
const (
	PaymentQRCode = "QR Code"
	PaymentCash   = "Cash"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile holds registrant details, one row per user (same id).
// USN is immutable after creation.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	USN       string    `gorm:"column:usn;not null" json:"usn"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Department struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	ShortName string    `gorm:"not null" json:"short_name"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Events       []Event       `gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE" json:"events,omitempty"`
	Coordinators []Coordinator `gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE" json:"coordinators,omitempty"`
}

type Coordinator struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	DepartmentID uuid.UUID `gorm:"type:uuid;index;not null" json:"department_id"`
	Name         string    `gorm:"not null" json:"name"`
	PhoneNumber  string    `json:"phone_number"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// EventCoordinator is a faculty or student coordinator embedded in an
// event's JSON coordinator lists (distinct from department Coordinator rows).
type EventCoordinator struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

type Event struct {
	ID                  uuid.UUID                             `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	DepartmentID        uuid.UUID                             `gorm:"type:uuid;index;not null" json:"department_id"`
	Title               string                                `gorm:"not null" json:"title"`
	Description         string                                `gorm:"type:text" json:"description"`
	EventType           string                                `gorm:"not null" json:"event_type"`
	TeamSize            int                                   `gorm:"not null;default:1" json:"team_size"`
	RegistrationFee     float64                               `gorm:"default:0" json:"registration_fee"`
	Venue               string                                `json:"venue"`
	ConductionVenue     string                                `json:"conduction_venue"`
	Date                *time.Time                            `json:"date"`
	ImageURL            string                                `json:"image_url"`
	PaymentQRURL        string                                `gorm:"column:payment_qr_url" json:"payment_qr_url"`
	FacultyCoordinators datatypes.JSONSlice[EventCoordinator] `gorm:"type:jsonb" json:"faculty_coordinators"`
	StudentCoordinators datatypes.JSONSlice[EventCoordinator] `gorm:"type:jsonb" json:"student_coordinators"`
	IsTrending          bool                                  `gorm:"default:false" json:"is_trending"`
	CreatedAt           time.Time                             `json:"created_at"`
	UpdatedAt           time.Time                             `json:"updated_at"`

	// Relations
	Department    Department     `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Registrations []Registration `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"registrations,omitempty"`
}

type TeamMember struct {
	Name  string `json:"name"`
	USN   string `json:"usn"`
	Phone string `json:"phone"`
}

// TeamMemberList is a jsonb column. Rows written by earlier clients sometimes
// hold a bare string instead of a JSON array; Scan degrades those to an empty
// list so one bad row cannot fail a whole listing.
type TeamMemberList []TeamMember

func (l TeamMemberList) Value() (driver.Value, error) {
	if l == nil {
		l = TeamMemberList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *TeamMemberList) Scan(value interface{}) error {
	*l = TeamMemberList{}
	if value == nil {
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return nil
	}

	var members []TeamMember
	if err := json.Unmarshal(raw, &members); err != nil {
		// Malformed data degrades to an empty list.
		return nil
	}
	*l = members
	return nil
}

func (TeamMemberList) GormDataType() string {
	return "jsonb"
}

type Registration struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EventID       uuid.UUID      `gorm:"type:uuid;index;not null" json:"event_id"`
	UserID        uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	TeamID        string         `gorm:"not null" json:"team_id"`
	TeamMembers   TeamMemberList `gorm:"type:jsonb" json:"team_members"`
	PaymentMethod string         `gorm:"type:varchar(20);not null" json:"payment_method"`
	PaymentStatus string         `gorm:"type:varchar(20);not null;default:'Pending'" json:"payment_status"`
	TicketQRPath  string         `gorm:"column:ticket_qr_path" json:"ticket_qr_path"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`

	// Relations
	Event Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

// Admin grants a user an administrative role. ID equals the user's id.
// department_id is set iff the role is department_admin; event_id is set
// iff the role is event_admin.
type Admin struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Role         string     `gorm:"type:varchar(30);not null" json:"role"`
	DepartmentID *uuid.UUID `gorm:"type:uuid" json:"department_id"`
	EventID      *uuid.UUID `gorm:"type:uuid" json:"event_id"`
	Username     string     `gorm:"not null" json:"username"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
