package handlers

import (
	"festival-registration-backend/internal/middleware"
	"festival-registration-backend/internal/services"
	"festival-registration-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=2"`
	USN      string `json:"usn" validate:"required,min=5,max=10"`
	Phone    string `json:"phone" validate:"required,min=10,max=13"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RequestCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type LoginWithCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"required,min=2"`
	Phone string `json:"phone" validate:"required,min=10,max=13"`
}

// SignUp creates an account with its profile and returns a token.
func (h *Handler) SignUp(c *fiber.Ctx) error {
	var req SignUpRequest
	if err := middleware.ValidateBody(&req)(c); err != nil {
		return err
	}

	resp, err := h.authSvc.SignUp(services.SignUpRequest{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		USN:      req.USN,
		Phone:    req.Phone,
	})
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusBadRequest)
	}

	return utils.Success(c, resp, "Account created successfully", fiber.StatusCreated)
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := middleware.ValidateBody(&req)(c); err != nil {
		return err
	}

	resp, err := h.authSvc.Authenticate(req.Email, req.Password)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusUnauthorized)
	}

	return utils.Success(c, resp, "Login successful")
}

// RequestLoginCode issues a one-time sign-in code. Always answers 200 so the
// endpoint cannot be used to probe for registered emails.
func (h *Handler) RequestLoginCode(c *fiber.Ctx) error {
	var req RequestCodeRequest
	if err := middleware.ValidateBody(&req)(c); err != nil {
		return err
	}

	if err := h.authSvc.RequestLoginCode(req.Email); err != nil {
		return utils.Error(c, err.Error(), fiber.StatusInternalServerError)
	}

	return utils.Success(c, nil, "If the account exists, a code has been sent")
}

func (h *Handler) LoginWithCode(c *fiber.Ctx) error {
	var req LoginWithCodeRequest
	if err := middleware.ValidateBody(&req)(c); err != nil {
		return err
	}

	resp, err := h.authSvc.LoginWithCode(req.Email, req.Code)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusUnauthorized)
	}

	return utils.Success(c, resp, "Login successful")
}

// GetSession resolves the caller's identity, profile and admin role in one
// call; clients re-fetch it on every auth state change.
func (h *Handler) GetSession(c *fiber.Ctx) error {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusUnauthorized)
	}

	session, err := h.authSvc.ResolveSession(userID)
	if err != nil {
		return utils.Error(c, "User not found", fiber.StatusNotFound)
	}

	return utils.Success(c, session, "Session resolved")
}

func (h *Handler) UpdatePassword(c *fiber.Ctx) error {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusUnauthorized)
	}

	var req UpdatePasswordRequest
	if err := middleware.ValidateBody(&req)(c); err != nil {
		return err
	}

	if err := h.authSvc.UpdatePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		return utils.Error(c, err.Error(), fiber.StatusBadRequest)
	}

	return utils.Success(c, nil, "Password updated successfully")
}

func (h *Handler) GetProfile(c *fiber.Ctx) error {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusUnauthorized)
	}

	profile, err := h.authSvc.GetProfile(userID)
	if err != nil {
		return utils.Error(c, "Profile not found", fiber.StatusNotFound)
	}

	return utils.Success(c, profile, "Profile retrieved successfully")
}

func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusUnauthorized)
	}

	var req UpdateProfileRequest
	if err := middleware.ValidateBody(&req)(c); err != nil {
		return err
	}

	profile, err := h.authSvc.UpdateProfile(userID, services.UpdateProfileRequest{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusBadRequest)
	}

	return utils.Success(c, profile, "Profile updated successfully")
}
