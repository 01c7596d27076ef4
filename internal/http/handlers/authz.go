package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"bookhaven/internal/domain"
	applog "bookhaven/internal/log"
	"bookhaven/internal/services"
)

// Authenticate resolves an optional bearer token into the request user.
// A missing or bad token leaves the request anonymous; the per-route
// gates below decide whether that is acceptable.
func Authenticate(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if token, found := strings.CutPrefix(header, "Bearer "); found && token != "" {
			u, err := auth.UserFromToken(token)
			if err != nil {
				applog.Security(c, "auth.token.invalid", map[string]any{"err": err.Error()})
			} else {
				c.Locals("user", u)
			}
		}
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

func roleOf(c *fiber.Ctx) domain.Role {
	if u := currentUser(c); u != nil {
		return u.Role
	}
	return domain.Anonymous
}

// RequireAuth rejects anonymous callers with 401.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if currentUser(c) == nil {
			return fail(c, fiber.StatusUnauthorized, "Not authorized, no valid token")
		}
		return c.Next()
	}
}

// RequireAdmin distinguishes a missing credential (401) from an
// insufficient one (403).
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch roleOf(c) {
		case domain.Anonymous:
			return fail(c, fiber.StatusUnauthorized, "Not authorized, no valid token")
		case domain.Customer:
			applog.Security(c, "access.denied.admin", nil)
			return fail(c, fiber.StatusForbidden, "Admin access required")
		case domain.Admin:
			return c.Next()
		}
		return fail(c, fiber.StatusForbidden, "Admin access required")
	}
}
