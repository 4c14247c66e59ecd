package middleware

import (
	"errors"

	"festival-registration-backend/internal/config"
	"festival-registration-backend/internal/models"
	"festival-registration-backend/internal/repositories"
	"festival-registration-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(cfg.JWTSecret),
		ContextKey:   "user",
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			user := c.Locals("user").(*jwt.Token)
			claims := user.Claims.(jwt.MapClaims)
			c.Locals("user_id", claims["user_id"])
			c.Locals("user_email", claims["email"])
			return c.Next()
		},
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	return utils.Error(c, "Unauthorized", fiber.StatusUnauthorized)
}

// RequireAdmin resolves the caller's Admin row into locals. A user without
// one gets a 403; only unexpected lookup failures are logged.
func RequireAdmin(adminRepo repositories.AdminRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := GetUserIDFromContext(c)
		if err != nil {
			return utils.Error(c, "Authentication required", fiber.StatusUnauthorized)
		}

		admin, err := adminRepo.GetAdminByID(userID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				logrus.WithError(err).WithField("user_id", userID).Error("admin lookup failed")
			}
			return utils.Error(c, "Admin access required", fiber.StatusForbidden)
		}

		c.Locals("admin", admin)
		return c.Next()
	}
}

func GetUserIDFromContext(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "User not authenticated")
	}
	return userID, nil
}

// GetAdminFromContext returns the Admin row placed by RequireAdmin.
func GetAdminFromContext(c *fiber.Ctx) *models.Admin {
	admin, _ := c.Locals("admin").(*models.Admin)
	return admin
}
