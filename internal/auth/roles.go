package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// RequireActive ensures the authenticated account is not disabled.
// Runs after AuthMiddleware.Handle.
func RequireActive() fiber.Handler {
	return func(c *fiber.Ctx) error {
		account, ok := AccountFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("could not validate credentials")
		}
		if !account.IsActive {
			return apperrors.NewAccountDisabled()
		}
		return c.Next()
	}
}

// RequireAdmin ensures the active account carries the admin flag.
// Runs after RequireActive.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		account, ok := AccountFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("could not validate credentials")
		}
		if !account.IsAdmin {
			return apperrors.NewForbidden("not enough permissions")
		}
		return c.Next()
	}
}
