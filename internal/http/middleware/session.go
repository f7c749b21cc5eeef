package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// AdminEmailLocalKey is the key under which RequireSession stores the signed-in administrator.
const AdminEmailLocalKey = "admin_email"

// SessionVerifier validates a session token and returns the administrator email.
type SessionVerifier func(token string) (string, error)

// RequireSession redirects to loginPath unless the cookie holds a valid session.
func RequireSession(cookie, loginPath string, verify SessionVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, err := verify(c.Cookies(cookie))
		if err != nil {
			log.Debug().Err(err).Str("path", c.Path()).Msg("no valid session, redirecting to login")
			return c.Redirect(loginPath)
		}

		c.Locals(AdminEmailLocalKey, email)
		return c.Next()
	}
}
