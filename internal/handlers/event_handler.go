package handlers

import (
	"strconv"
	"time"

	"festival-registration-backend/internal/middleware"
	"festival-registration-backend/internal/models"
	"festival-registration-backend/internal/repositories"
	"festival-registration-backend/internal/services"
	"festival-registration-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type EventCoordinatorDTO struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

type EventRequest struct {
	DepartmentID        string                `json:"department_id" validate:"required,uuid"`
	Title               string                `json:"title" validate:"required"`
	Description         string                `json:"description"`
	EventType           string                `json:"event_type" validate:"required"`
	TeamSize            int                   `json:"team_size" validate:"required,gte=1"`
	RegistrationFee     float64               `json:"registration_fee" validate:"gte=0"`
	Venue               string                `json:"venue"`
	ConductionVenue     string                `json:"conduction_venue"`
	Date                string                `json:"date"`
	FacultyCoordinators []EventCoordinatorDTO `json:"faculty_coordinators" validate:"dive"`
	StudentCoordinators []EventCoordinatorDTO `json:"student_coordinators" validate:"dive"`
	IsTrending          bool                  `json:"is_trending"`
}

func (r *EventRequest) toService() (services.EventRequest, error) {
	var date *time.Time
	if r.Date != "" {
		parsed, err := time.Parse(time.RFC3339, r.Date)
		if err != nil {
			return services.EventRequest{}, err
		}
		date = &parsed
	}

	return services.EventRequest{
		DepartmentID:        r.DepartmentID,
		Title:               r.Title,
		Description:         r.Description,
		EventType:           r.EventType,
		TeamSize:            r.TeamSize,
		RegistrationFee:     r.RegistrationFee,
		Venue:               r.Venue,
		ConductionVenue:     r.ConductionVenue,
		Date:                date,
		FacultyCoordinators: toEventCoordinators(r.FacultyCoordinators),
		StudentCoordinators: toEventCoordinators(r.StudentCoordinators),
		IsTrending:          r.IsTrending,
	}, nil
}

func toEventCoordinators(dtos []EventCoordinatorDTO) []models.EventCoordinator {
	coords := make([]models.EventCoordinator, 0, len(dtos))
	for _, d := range dtos {
		coords = append(coords, models.EventCoordinator{
			Name:  d.Name,
			Phone: d.Phone,
			Role:  d.Role,
		})
	}
	return coords
}

// ListEvents returns a paginated event list with optional search, department,
// type and trending filters.
func (h *Handler) ListEvents(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))

	filters := &repositories.EventFilters{
		DepartmentID: c.Query("department_id"),
		EventType:    c.Query("event_type"),
		Search:       c.Query("search"),
	}
	if trending := c.Query("trending"); trending != "" {
		val := trending == "true" || trending == "1"
		filters.Trending = &val
	}

	events, total, totalPages, err := h.eventSvc.ListEvents(page, pageSize, filters)
	if err != nil {
		return utils.Error(c, "Failed to fetch events", fiber.StatusInternalServerError)
	}

	meta := &utils.Meta{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPages,
	}

	return utils.SuccessWithMeta(c, events, meta, "Events retrieved successfully")
}

func (h *Handler) GetEvent(c *fiber.Ctx) error {
	eventID := c.Params("id")
	if _, err := uuid.Parse(eventID); err != nil {
		return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
	}

	event, err := h.eventSvc.GetEvent(eventID)
	if err != nil {
		return utils.Error(c, "Event not found", fiber.StatusNotFound)
	}

	return utils.Success(c, event, "Event retrieved successfully")
}

// GetRegistrationCount serves the live registration counter. The count comes
// from the change-feed worker when it has observed the event, otherwise from
// a direct query.
func (h *Handler) GetRegistrationCount(c *fiber.Ctx) error {
	eventID := c.Params("id")
	if _, err := uuid.Parse(eventID); err != nil {
		return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
	}

	if h.counter != nil {
		if count, ok := h.counter.Count(eventID); ok {
			return utils.Success(c, fiber.Map{"event_id": eventID, "count": count}, "Registration count")
		}
	}

	count, err := h.regSvc.CountByEvent(eventID)
	if err != nil {
		return utils.Error(c, "Failed to count registrations", fiber.StatusInternalServerError)
	}

	return utils.Success(c, fiber.Map{"event_id": eventID, "count": count}, "Registration count")
}

func (h *Handler) CreateEvent(c *fiber.Ctx) error {
	var req EventRequest
	if err := middleware.ValidateBody(&req)(c); err != nil {
		return err
	}

	svcReq, err := req.toService()
	if err != nil {
		return utils.Error(c, "Invalid date format", fiber.StatusBadRequest)
	}

	event, err := h.eventSvc.CreateEvent(middleware.GetAdminFromContext(c), svcReq)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, event, "Event created successfully", fiber.StatusCreated)
}

func (h *Handler) UpdateEvent(c *fiber.Ctx) error {
	eventID := c.Params("id")
	if _, err := uuid.Parse(eventID); err != nil {
		return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
	}

	var req EventRequest
	if err := middleware.ValidateBody(&req)(c); err != nil {
		return err
	}

	svcReq, err := req.toService()
	if err != nil {
		return utils.Error(c, "Invalid date format", fiber.StatusBadRequest)
	}

	event, err := h.eventSvc.UpdateEvent(middleware.GetAdminFromContext(c), eventID, svcReq)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, event, "Event updated successfully")
}

func (h *Handler) DeleteEvent(c *fiber.Ctx) error {
	eventID := c.Params("id")
	if _, err := uuid.Parse(eventID); err != nil {
		return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
	}

	if err := h.eventSvc.DeleteEvent(middleware.GetAdminFromContext(c), eventID); err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, nil, "Event deleted successfully")
}

// UploadEventImage stores an event image and records its public URL.
func (h *Handler) UploadEventImage(c *fiber.Ctx) error {
	return h.uploadEventFile(c, h.cfg.EventImageDir, "/event-images/", h.eventSvc.SetEventImage)
}

// UploadPaymentQR stores a payment QR code image and records its public URL.
func (h *Handler) UploadPaymentQR(c *fiber.Ctx) error {
	return h.uploadEventFile(c, h.cfg.PaymentQRDir, "/payment-qrcodes/", h.eventSvc.SetPaymentQR)
}

func (h *Handler) uploadEventFile(c *fiber.Ctx, destDir, urlPrefix string, apply func(*models.Admin, string, string) (*models.Event, error)) error {
	eventID := c.Params("id")
	if _, err := uuid.Parse(eventID); err != nil {
		return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.Error(c, "File is required", fiber.StatusBadRequest)
	}
	if file.Size > h.cfg.MaxUploadSize {
		return utils.Error(c, "File too large", fiber.StatusBadRequest)
	}
	if err := utils.ValidateImageFile(file); err != nil {
		return utils.Error(c, err.Error(), fiber.StatusBadRequest)
	}

	filename := utils.GenerateUniqueFilename(file.Filename)
	if err := utils.SaveUploadedFile(file, destDir, filename); err != nil {
		return utils.Error(c, "Failed to save file", fiber.StatusInternalServerError)
	}

	event, err := apply(middleware.GetAdminFromContext(c), eventID, urlPrefix+filename)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, event, "File uploaded successfully")
}
