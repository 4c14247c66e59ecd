package handlers

import (
	"errors"

	"festival-registration-backend/internal/config"
	"festival-registration-backend/internal/middleware"
	"festival-registration-backend/internal/notifier"
	"festival-registration-backend/internal/repositories"
	"festival-registration-backend/internal/services"
	"festival-registration-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	authSvc  *services.AuthService
	deptSvc  *services.DepartmentService
	eventSvc *services.EventService
	regSvc   *services.RegistrationService
	adminSvc *services.AdminService
	repo     *repositories.Repository
	counter  *notifier.Counter // nil when the broker is unconfigured
	cfg      *config.Config
}

func NewHandler(
	authSvc *services.AuthService,
	deptSvc *services.DepartmentService,
	eventSvc *services.EventService,
	regSvc *services.RegistrationService,
	adminSvc *services.AdminService,
	repo *repositories.Repository,
	counter *notifier.Counter,
	cfg *config.Config,
) *Handler {
	return &Handler{
		authSvc:  authSvc,
		deptSvc:  deptSvc,
		eventSvc: eventSvc,
		regSvc:   regSvc,
		adminSvc: adminSvc,
		repo:     repo,
		counter:  counter,
		cfg:      cfg,
	}
}

func (h *Handler) RegisterRoutes(router fiber.Router) {
	// Public routes
	auth := router.Group("/auth")
	{
		auth.Post("/signup", h.SignUp)
		auth.Post("/login", h.Login)
		auth.Post("/otp/request", h.RequestLoginCode)
		auth.Post("/otp/login", h.LoginWithCode)
	}

	departments := router.Group("/departments")
	{
		departments.Get("/", h.ListDepartments)
		departments.Get("/:id", h.GetDepartment)
	}

	events := router.Group("/events")
	{
		events.Get("/", h.ListEvents)
		events.Get("/:id", h.GetEvent)
		events.Get("/:id/registrations/count", h.GetRegistrationCount)
	}

	// Protected routes (JWT required)
	protected := router.Group("", middleware.JWTMiddleware(h.cfg))
	{
		protected.Get("/auth/me", h.GetSession)
		protected.Patch("/auth/password", h.UpdatePassword)
		protected.Get("/profile", h.GetProfile)
		protected.Put("/profile", h.UpdateProfile)

		protected.Post("/registrations", h.CreateRegistration)
		protected.Get("/registrations/mine", h.ListMyRegistrations)

		// Admin surface. Role scoping happens in the services; this
		// gate only requires that an Admin row exists.
		admin := protected.Group("/admin", middleware.RequireAdmin(h.repo.AdminRepo))
		{
			admin.Post("/departments", h.CreateDepartment)
			admin.Put("/departments/:id", h.UpdateDepartment)
			admin.Delete("/departments/:id", h.DeleteDepartment)
			admin.Post("/departments/:id/coordinators", h.AddCoordinator)
			admin.Put("/coordinators/:id", h.UpdateCoordinator)
			admin.Delete("/coordinators/:id", h.DeleteCoordinator)

			admin.Post("/events", h.CreateEvent)
			admin.Put("/events/:id", h.UpdateEvent)
			admin.Delete("/events/:id", h.DeleteEvent)
			admin.Post("/events/:id/image", h.UploadEventImage)
			admin.Post("/events/:id/payment-qr", h.UploadPaymentQR)

			admin.Get("/registrations", h.ListRegistrations)
			admin.Patch("/registrations/:id/status", h.UpdatePaymentStatus)
			admin.Delete("/registrations/:id", h.DeleteRegistration)

			admin.Get("/admins", h.ListAdmins)
			admin.Post("/admins", h.CreateAdmin)
			admin.Delete("/admins/:id", h.DeleteAdmin)
			admin.Get("/users", h.SearchUsers)
			admin.Get("/stats", h.GetStats)
		}
	}
}

// ErrorHandler handles global errors.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	if code >= 500 {
		logrus.WithError(err).WithField("path", c.Path()).Error("internal error")
	}

	return utils.Error(c, message, code)
}

// serviceError maps a service failure onto the response envelope:
// authorization denials become 403, everything else a 400.
func serviceError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrPermissionDenied) {
		return utils.Error(c, "Permission denied", fiber.StatusForbidden)
	}
	return utils.Error(c, err.Error(), fiber.StatusBadRequest)
}
