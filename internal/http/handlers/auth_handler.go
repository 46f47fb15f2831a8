package handlers

import (
	"errors"
	"strings"
	"time"

	applog "aquaroom/internal/log"
	"aquaroom/internal/services"
	"aquaroom/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	return sid
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{"Err": ""})
}

// Login accepts either a form post (login page) or a JSON body (API
// clients). Both bind the sid cookie to the user on success.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email, pass, asJSON := credentials(c)

	if _, ok := validate.Email(email); !ok {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return loginFailed(c, asJSON)
	}
	u, err := h.Auth.Login(sid, email, pass)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return loginFailed(c, asJSON)
	}

	applog.Audit(c, "auth.login.success", map[string]any{"email": email})
	if asJSON {
		return ok(c, fiber.Map{"id": u.ID, "email": u.Email, "name": u.Name, "role": u.Role})
	}
	return c.Redirect("/admin")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", nil)
	if wantsJSON(c) {
		return ok(c, fiber.Map{"loggedOut": true})
	}
	return c.Redirect("/login")
}

// POST /api/auth/token mints a bearer token for headless API clients.
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	tok, err := h.Auth.IssueToken(body.Email, body.Password)
	if err != nil {
		if errors.Is(err, services.ErrBadCreds) {
			applog.Security(c, "auth.token.fail", map[string]any{"email": body.Email})
			return fail(c, fiber.StatusUnauthorized, "invalid email or password")
		}
		applog.Error(c, "auth.token.fail", err, nil)
		return failErr(c, err)
	}
	applog.Audit(c, "auth.token.issued", map[string]any{"email": body.Email})
	return ok(c, fiber.Map{"token": tok, "tokenType": "Bearer"})
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	u := currentUser(c, h.Auth)
	if u == nil {
		return fail(c, fiber.StatusUnauthorized, "authentication required")
	}
	return ok(c, fiber.Map{"id": u.ID, "email": u.Email, "name": u.Name, "role": u.Role})
}

func credentials(c *fiber.Ctx) (email, pass string, asJSON bool) {
	if wantsJSON(c) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&body); err == nil {
			return body.Email, body.Password, true
		}
		return "", "", true
	}
	return c.FormValue("email"), c.FormValue("password"), false
}

func wantsJSON(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON)
}

func loginFailed(c *fiber.Ctx, asJSON bool) error {
	if asJSON {
		return fail(c, fiber.StatusUnauthorized, "invalid email or password")
	}
	return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": "Invalid email or password"})
}
