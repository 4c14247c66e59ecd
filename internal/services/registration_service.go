package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"festival-registration-backend/internal/authz"
	"festival-registration-backend/internal/config"
	"festival-registration-backend/internal/models"
	"festival-registration-backend/internal/notifier"
	"festival-registration-backend/internal/repositories"
	"festival-registration-backend/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10,13}$`)

type RegistrationService struct {
	repo    *repositories.Repository
	cfg     *config.Config
	changes notifier.Publisher
}

func NewRegistrationService(repo *repositories.Repository, cfg *config.Config, changes notifier.Publisher) *RegistrationService {
	if changes == nil {
		changes = notifier.NoopPublisher{}
	}
	return &RegistrationService{repo: repo, cfg: cfg, changes: changes}
}

// ValidateTeamMembers checks each member and the team size bound against
// the event's team_size. Runs before any write.
func ValidateTeamMembers(members []models.TeamMember, teamSize int) error {
	if len(members) < 1 {
		return errors.New("at least one team member is required")
	}
	if len(members) > teamSize {
		return fmt.Errorf("team cannot exceed %d members for this event", teamSize)
	}

	for i, m := range members {
		if len(strings.TrimSpace(m.Name)) < 2 {
			return fmt.Errorf("member %d: name must be at least 2 characters", i+1)
		}
		usn := strings.TrimSpace(m.USN)
		if len(usn) < 5 || len(usn) > 10 {
			return fmt.Errorf("member %d: USN must be 5-10 characters", i+1)
		}
		if !phonePattern.MatchString(strings.TrimSpace(m.Phone)) {
			return fmt.Errorf("member %d: phone must be 10-13 digits", i+1)
		}
	}

	return nil
}

type CreateRegistrationRequest struct {
	EventID       string
	UserID        string
	TeamMembers   []models.TeamMember
	PaymentMethod string
}

// CreateRegistration registers a team for an event. Core fields are
// immutable afterwards; only payment_status mutates, through
// UpdatePaymentStatus. Nothing prevents the same user from registering
// twice for the same event.
func (s *RegistrationService) CreateRegistration(req CreateRegistrationRequest) (*models.Registration, error) {
	event, err := s.repo.EventRepo.GetEventByID(req.EventID)
	if err != nil {
		return nil, errors.New("event not found")
	}

	if err := ValidateTeamMembers(req.TeamMembers, event.TeamSize); err != nil {
		return nil, err
	}

	if req.PaymentMethod != models.PaymentQRCode && req.PaymentMethod != models.PaymentCash {
		return nil, errors.New("payment method must be QR Code or Cash")
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, errors.New("invalid user ID")
	}

	// Duplicate registrations by the same user are allowed; surface them in
	// the logs so the registration desk can spot double payments.
	if prior, err := s.repo.RegistrationRepo.CountByEventAndUser(req.EventID, req.UserID); err == nil && prior > 0 {
		logrus.WithFields(logrus.Fields{
			"event_id": req.EventID,
			"user_id":  req.UserID,
			"existing": prior,
		}).Warn("user already registered for this event")
	}

	teamID, err := utils.NewTeamID()
	if err != nil {
		return nil, err
	}

	reg := &models.Registration{
		ID:            uuid.New(),
		EventID:       event.ID,
		UserID:        userID,
		TeamID:        teamID,
		TeamMembers:   req.TeamMembers,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: models.StatusPending,
	}

	// Ticket QR encodes the team token for the registration desk.
	filename, err := utils.GenerateQRCodeImage(teamID, s.cfg.TicketQRDir)
	if err != nil {
		logrus.WithError(err).WithField("team_id", teamID).Error("failed to generate ticket QR")
	} else {
		reg.TicketQRPath = "/ticket-qrcodes/" + filename
	}

	if err := s.repo.RegistrationRepo.CreateRegistration(reg); err != nil {
		return nil, err
	}

	s.changes.PublishChange(notifier.RegistrationChange{
		Action:         notifier.ActionInsert,
		RegistrationID: reg.ID.String(),
		EventID:        reg.EventID.String(),
		PaymentStatus:  reg.PaymentStatus,
	})

	return reg, nil
}

// UpdatePaymentStatus transitions a registration between Pending, Verified
// and Rejected. Any state is reachable from any other; re-applying the
// current status is a no-op success. Only a scoped admin may call this.
func (s *RegistrationService) UpdatePaymentStatus(admin *models.Admin, registrationID, status string) (*models.Registration, error) {
	if status != models.StatusPending && status != models.StatusVerified && status != models.StatusRejected {
		return nil, errors.New("status must be Pending, Verified or Rejected")
	}

	reg, err := s.repo.RegistrationRepo.GetRegistrationByID(registrationID)
	if err != nil {
		return nil, err
	}

	if !authz.CanManageRegistration(admin, &reg.Event) {
		return nil, ErrPermissionDenied
	}

	if reg.PaymentStatus == status {
		return reg, nil
	}

	if err := s.repo.RegistrationRepo.UpdatePaymentStatus(registrationID, status); err != nil {
		return nil, err
	}
	reg.PaymentStatus = status

	s.changes.PublishChange(notifier.RegistrationChange{
		Action:         notifier.ActionUpdate,
		RegistrationID: reg.ID.String(),
		EventID:        reg.EventID.String(),
		PaymentStatus:  status,
		ActorID:        admin.ID.String(),
	})

	return reg, nil
}

// DeleteRegistration removes a registration row; same scoping as status
// mutation.
func (s *RegistrationService) DeleteRegistration(admin *models.Admin, registrationID string) error {
	reg, err := s.repo.RegistrationRepo.GetRegistrationByID(registrationID)
	if err != nil {
		return err
	}

	if !authz.CanManageRegistration(admin, &reg.Event) {
		return ErrPermissionDenied
	}

	if err := s.repo.RegistrationRepo.DeleteRegistration(registrationID); err != nil {
		return err
	}

	s.changes.PublishChange(notifier.RegistrationChange{
		Action:         notifier.ActionDelete,
		RegistrationID: reg.ID.String(),
		EventID:        reg.EventID.String(),
		ActorID:        admin.ID.String(),
	})

	return nil
}

func (s *RegistrationService) ListByUser(userID string) ([]models.Registration, error) {
	return s.repo.RegistrationRepo.ListRegistrationsByUser(userID)
}

// ListForAdmin pages registrations visible to the caller: every event for a
// main admin, the department's events for a department admin, exactly the
// assigned event for an event admin. An explicit event filter narrows the
// scope further and must itself be inside the scope.
func (s *RegistrationService) ListForAdmin(admin *models.Admin, eventID, status string, page, pageSize int) ([]models.Registration, int64, int, error) {
	if admin == nil {
		return nil, 0, 0, ErrPermissionDenied
	}
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	var scope []uuid.UUID
	switch admin.Role {
	case models.RoleMainAdmin:
		scope = nil
	case models.RoleDepartmentAdmin:
		if admin.DepartmentID == nil {
			return nil, 0, 0, ErrPermissionDenied
		}
		ids, err := s.repo.EventRepo.ListEventIDsByDepartment(admin.DepartmentID.String())
		if err != nil {
			return nil, 0, 0, err
		}
		if ids == nil {
			// A department with no events is an empty scope, not an
			// unrestricted one; nil is reserved for main admins.
			ids = []uuid.UUID{}
		}
		scope = ids
	case models.RoleEventAdmin:
		if admin.EventID == nil {
			return nil, 0, 0, ErrPermissionDenied
		}
		scope = []uuid.UUID{*admin.EventID}
	default:
		return nil, 0, 0, ErrPermissionDenied
	}

	if eventID != "" {
		filterID, err := uuid.Parse(eventID)
		if err != nil {
			return nil, 0, 0, errors.New("invalid event ID")
		}
		if scope == nil {
			scope = []uuid.UUID{filterID}
		} else {
			found := false
			for _, id := range scope {
				if id == filterID {
					found = true
					break
				}
			}
			if !found {
				return nil, 0, 0, ErrPermissionDenied
			}
			scope = []uuid.UUID{filterID}
		}
	}

	if scope != nil && len(scope) == 0 {
		return []models.Registration{}, 0, 0, nil
	}

	offset := (page - 1) * pageSize
	regs, total, err := s.repo.RegistrationRepo.ListRegistrations(offset, pageSize, scope, status)
	if err != nil {
		return nil, 0, 0, err
	}

	totalPages := (int(total) + pageSize - 1) / pageSize
	return regs, total, totalPages, nil
}

func (s *RegistrationService) CountByEvent(eventID string) (int64, error) {
	return s.repo.RegistrationRepo.CountByEvent(eventID)
}
