package handlers

import (
	"strconv"

	"festival-registration-backend/internal/middleware"
	"festival-registration-backend/internal/models"
	"festival-registration-backend/internal/services"
	"festival-registration-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TeamMemberDTO struct {
	Name  string `json:"name" validate:"required,min=2"`
	USN   string `json:"usn" validate:"required,min=5,max=10"`
	Phone string `json:"phone" validate:"required,min=10,max=13"`
}

type CreateRegistrationRequest struct {
	EventID       string          `json:"event_id" validate:"required,uuid"`
	TeamMembers   []TeamMemberDTO `json:"team_members" validate:"required,min=1,dive"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof='QR Code' Cash"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Verified Rejected"`
}

// CreateRegistration registers the caller's team for an event.
func (h *Handler) CreateRegistration(c *fiber.Ctx) error {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusUnauthorized)
	}

	var req CreateRegistrationRequest
	if err := middleware.ValidateBody(&req)(c); err != nil {
		return err
	}

	members := make([]models.TeamMember, 0, len(req.TeamMembers))
	for _, m := range req.TeamMembers {
		members = append(members, models.TeamMember{
			Name:  m.Name,
			USN:   m.USN,
			Phone: m.Phone,
		})
	}

	reg, err := h.regSvc.CreateRegistration(services.CreateRegistrationRequest{
		EventID:       req.EventID,
		UserID:        userID,
		TeamMembers:   members,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, reg, "Registration created successfully", fiber.StatusCreated)
}

func (h *Handler) ListMyRegistrations(c *fiber.Ctx) error {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusUnauthorized)
	}

	regs, err := h.regSvc.ListByUser(userID)
	if err != nil {
		return utils.Error(c, "Failed to fetch registrations", fiber.StatusInternalServerError)
	}

	return utils.Success(c, regs, "Registrations retrieved successfully")
}

// ListRegistrations pages registrations inside the caller's admin scope.
func (h *Handler) ListRegistrations(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))

	regs, total, totalPages, err := h.regSvc.ListForAdmin(
		middleware.GetAdminFromContext(c),
		c.Query("event_id"),
		c.Query("status"),
		page, pageSize,
	)
	if err != nil {
		return serviceError(c, err)
	}

	meta := &utils.Meta{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPages,
	}

	return utils.SuccessWithMeta(c, regs, meta, "Registrations retrieved successfully")
}

// UpdatePaymentStatus verifies, rejects or resets a registration's payment.
func (h *Handler) UpdatePaymentStatus(c *fiber.Ctx) error {
	registrationID := c.Params("id")
	if _, err := uuid.Parse(registrationID); err != nil {
		return utils.Error(c, "Invalid registration ID", fiber.StatusBadRequest)
	}

	var req UpdateStatusRequest
	if err := middleware.ValidateBody(&req)(c); err != nil {
		return err
	}

	reg, err := h.regSvc.UpdatePaymentStatus(middleware.GetAdminFromContext(c), registrationID, req.Status)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, reg, "Payment status updated successfully")
}

func (h *Handler) DeleteRegistration(c *fiber.Ctx) error {
	registrationID := c.Params("id")
	if _, err := uuid.Parse(registrationID); err != nil {
		return utils.Error(c, "Invalid registration ID", fiber.StatusBadRequest)
	}

	if err := h.regSvc.DeleteRegistration(middleware.GetAdminFromContext(c), registrationID); err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, nil, "Registration deleted successfully")
}
