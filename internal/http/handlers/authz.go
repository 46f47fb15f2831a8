package handlers

import (
	"strings"

	"aquaroom/internal/domain"
	applog "aquaroom/internal/log"
	"aquaroom/internal/services"

	"github.com/gofiber/fiber/v2"
)

// adminRoles are the role spellings accepted on the admin surface; the
// legacy API issued lowercase and long-form variants.
var adminRoles = map[string]bool{
	"ADMIN":         true,
	"admin":         true,
	"ADMINISTRATOR": true,
}

// RequireAdmin authenticates via the sid session cookie or a Bearer
// token, and requires an admin role either way.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := currentUser(c, auth)
		if u == nil {
			return fail(c, fiber.StatusUnauthorized, "authentication required")
		}
		if !adminRoles[u.Role] {
			applog.Security(c, "access.denied.admin", map[string]any{"user_id": u.ID, "role": u.Role})
			return fail(c, fiber.StatusForbidden, "admin access required")
		}
		c.Locals("user", u)
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx, auth *services.AuthService) *domain.User {
	if sid := c.Cookies("sid"); sid != "" {
		if u, err := auth.CurrentUser(sid); err == nil && u != nil {
			return u
		}
	}
	if h := c.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		tok := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if u, err := auth.TokenUser(tok); err == nil && u != nil {
			return u
		}
		applog.Security(c, "auth.token.invalid", nil)
	}
	return nil
}
