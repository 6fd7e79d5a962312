package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/workdesk-service/pkg/util"
)

// RequireFeature gates a route on a role capability. The same checks drive
// which controls the frontend renders; here they are enforced.
func RequireFeature(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Account == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.Account.HasFeature(name) {
			return apperrors.NewForbidden("missing capability: " + name)
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures a caller is signed in without any capability check.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
