package middleware

import (
	"porto/internal/models"
	"porto/internal/services"

	"github.com/gofiber/fiber/v2"
)

// userKey is the Locals key the resolved identity is stored under.
const userKey = "user"

// OptionalIdentity resolves the bearer identity when one is present and
// stores it for downstream handlers. It never rejects a request: malformed
// headers and invalid tokens simply mean anonymous.
func OptionalIdentity(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if user := authService.ResolveUser(c.Get("Authorization")); user != nil {
			c.Locals(userKey, user)
		}
		return c.Next()
	}
}

// RequireAdmin rejects anonymous callers with 401 and authenticated
// non-admins with 403. A failed allowlist lookup is indistinguishable from
// not being an admin.
func RequireAdmin(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := authService.ResolveUser(c.Get("Authorization"))
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "unauthorized",
			})
		}

		if !authService.IsAdmin(user.ID) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"detail": "forbidden",
			})
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

// UserFromContext returns the identity stored by either guard, or nil.
func UserFromContext(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}
