package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"tearoomcms/internal/auth"
)

// LoginPage renders the sign-in form, or skips it when a valid session exists.
func (h *Admin) LoginPage(c *fiber.Ctx) error {
	if _, err := h.auth.Authorize(c.Cookies(auth.SessionCookie)); err == nil {
		return c.Redirect(AdminPath + "/" + defaultSection)
	}
	return c.Render("admin/login", fiber.Map{"Title": "Sign In", "Email": ""})
}

// Login handles the sign-in form submission.
func (h *Admin) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")

	token, err := h.auth.Login(c.UserContext(), email, c.FormValue("password"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).Render("admin/login", fiber.Map{
			"Title": "Sign In",
			"Email": email,
			"error": auth.Message(err),
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     AdminPath,
		MaxAge:   int(h.auth.Sessions().TTL().Seconds()),
		Secure:   !h.devMode,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	log.Info().Str("email", email).Msg("admin signed in")
	return c.Redirect(AdminPath+"/"+defaultSection, fiber.StatusSeeOther)
}

// Logout clears the session cookie.
func (h *Admin) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     AdminPath,
		MaxAge:   -1,
		Secure:   !h.devMode,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Redirect(LoginPath, fiber.StatusSeeOther)
}
