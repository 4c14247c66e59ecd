package handlers

import (
	"festival-registration-backend/internal/middleware"
	"festival-registration-backend/internal/services"
	"festival-registration-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateAdminRequest struct {
	UserID       string `json:"user_id" validate:"required,uuid"`
	Role         string `json:"role" validate:"required,oneof=main_admin department_admin event_admin"`
	DepartmentID string `json:"department_id" validate:"omitempty,uuid"`
	EventID      string `json:"event_id" validate:"omitempty,uuid"`
}

func (h *Handler) ListAdmins(c *fiber.Ctx) error {
	admins, err := h.adminSvc.ListAdmins(middleware.GetAdminFromContext(c))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, admins, "Admins retrieved successfully")
}

// CreateAdmin grants a role to a user, subject to the caller's own scope.
func (h *Handler) CreateAdmin(c *fiber.Ctx) error {
	var req CreateAdminRequest
	if err := middleware.ValidateBody(&req)(c); err != nil {
		return err
	}

	admin, err := h.adminSvc.CreateAdmin(middleware.GetAdminFromContext(c), services.CreateAdminRequest{
		UserID:       req.UserID,
		Role:         req.Role,
		DepartmentID: req.DepartmentID,
		EventID:      req.EventID,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, admin, "Admin created successfully", fiber.StatusCreated)
}

func (h *Handler) DeleteAdmin(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return utils.Error(c, "Invalid admin ID", fiber.StatusBadRequest)
	}

	if err := h.adminSvc.DeleteAdmin(middleware.GetAdminFromContext(c), id); err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, nil, "Admin deleted successfully")
}

// SearchUsers lists identities (id + email) for the admin-creation picker.
func (h *Handler) SearchUsers(c *fiber.Ctx) error {
	users, err := h.adminSvc.SearchUsers(middleware.GetAdminFromContext(c), c.Query("search"))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, users, "Users retrieved successfully")
}

func (h *Handler) GetStats(c *fiber.Ctx) error {
	stats, err := h.adminSvc.GetStats(middleware.GetAdminFromContext(c))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, stats, "Stats retrieved successfully")
}
