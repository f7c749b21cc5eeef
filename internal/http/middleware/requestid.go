package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	// RequestIDHeader is the header request ids are read from and echoed in.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is the fiber locals key holding the request id.
	RequestIDLocalKey = "request_id"

	maxRequestIDLen = 64
)

// RequestID ensures every request carries an id. An inbound X-Request-ID is kept unless it is
// longer than 64 bytes; otherwise a UUID is generated. The id is stored in locals, echoed in the
// response and attached to a zerolog logger in the user context, so zerolog.Ctx(ctx) in services
// logs it too.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}

		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)

		l := log.With().Str("request_id", id).Logger()
		c.SetUserContext(l.WithContext(c.UserContext()))

		return c.Next()
	}
}
