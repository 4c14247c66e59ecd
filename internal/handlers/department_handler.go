package handlers

import (
	"festival-registration-backend/internal/middleware"
	"festival-registration-backend/internal/services"
	"festival-registration-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type DepartmentRequest struct {
	Name      string `json:"name" validate:"required"`
	ShortName string `json:"short_name" validate:"required"`
	Icon      string `json:"icon"`
}

type CoordinatorRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	PhoneNumber string `json:"phone_number" validate:"required,min=10,max=13"`
}

func (h *Handler) ListDepartments(c *fiber.Ctx) error {
	depts, err := h.deptSvc.ListDepartments()
	if err != nil {
		return utils.Error(c, "Failed to fetch departments", fiber.StatusInternalServerError)
	}
	return utils.Success(c, depts, "Departments retrieved successfully")
}

func (h *Handler) GetDepartment(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return utils.Error(c, "Invalid department ID", fiber.StatusBadRequest)
	}

	dept, err := h.deptSvc.GetDepartment(id)
	if err != nil {
		return utils.Error(c, "Department not found", fiber.StatusNotFound)
	}
	return utils.Success(c, dept, "Department retrieved successfully")
}

func (h *Handler) CreateDepartment(c *fiber.Ctx) error {
	var req DepartmentRequest
	if err := middleware.ValidateBody(&req)(c); err != nil {
		return err
	}

	dept, err := h.deptSvc.CreateDepartment(middleware.GetAdminFromContext(c), services.DepartmentRequest{
		Name:      req.Name,
		ShortName: req.ShortName,
		Icon:      req.Icon,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, dept, "Department created successfully", fiber.StatusCreated)
}

func (h *Handler) UpdateDepartment(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return utils.Error(c, "Invalid department ID", fiber.StatusBadRequest)
	}

	var req DepartmentRequest
	if err := middleware.ValidateBody(&req)(c); err != nil {
		return err
	}

	dept, err := h.deptSvc.UpdateDepartment(middleware.GetAdminFromContext(c), id, services.DepartmentRequest{
		Name:      req.Name,
		ShortName: req.ShortName,
		Icon:      req.Icon,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, dept, "Department updated successfully")
}

func (h *Handler) DeleteDepartment(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return utils.Error(c, "Invalid department ID", fiber.StatusBadRequest)
	}

	if err := h.deptSvc.DeleteDepartment(middleware.GetAdminFromContext(c), id); err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, nil, "Department deleted successfully")
}

func (h *Handler) AddCoordinator(c *fiber.Ctx) error {
	departmentID := c.Params("id")
	if _, err := uuid.Parse(departmentID); err != nil {
		return utils.Error(c, "Invalid department ID", fiber.StatusBadRequest)
	}

	var req CoordinatorRequest
	if err := middleware.ValidateBody(&req)(c); err != nil {
		return err
	}

	coord, err := h.deptSvc.AddCoordinator(middleware.GetAdminFromContext(c), departmentID, services.CoordinatorRequest{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, coord, "Coordinator added successfully", fiber.StatusCreated)
}

func (h *Handler) UpdateCoordinator(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return utils.Error(c, "Invalid coordinator ID", fiber.StatusBadRequest)
	}

	var req CoordinatorRequest
	if err := middleware.ValidateBody(&req)(c); err != nil {
		return err
	}

	coord, err := h.deptSvc.UpdateCoordinator(middleware.GetAdminFromContext(c), id, services.CoordinatorRequest{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, coord, "Coordinator updated successfully")
}

func (h *Handler) DeleteCoordinator(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return utils.Error(c, "Invalid coordinator ID", fiber.StatusBadRequest)
	}

	if err := h.deptSvc.DeleteCoordinator(middleware.GetAdminFromContext(c), id); err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, nil, "Coordinator deleted successfully")
}
