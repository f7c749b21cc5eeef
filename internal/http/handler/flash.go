package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog/log"
)

const (
	flashCookie = "cms_flash"
	flashTTL    = 10 * time.Minute

	flashKindKey    = "kind"
	flashMessageKey = "message"
)

// Flash is a one-shot message shown on the next admin page.
type Flash struct {
	Kind    string
	Message string
}

const (
	flashSuccess = "success"
	flashError   = "error"
)

// newFlashStore keeps pending flash messages server side. The cookie only carries the session id.
func newFlashStore(devMode bool) *session.Store {
	return session.New(session.Config{
		Expiration:     flashTTL,
		KeyLookup:      "cookie:" + flashCookie,
		CookiePath:     AdminPath,
		CookieSecure:   !devMode,
		CookieHTTPOnly: true,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *Admin) setFlash(c *fiber.Ctx, kind, message string) {
	sess, err := h.flashes.Get(c)
	if err != nil {
		log.Warn().Err(err).Msg("flash session unavailable")
		return
	}
	sess.Set(flashKindKey, kind)
	sess.Set(flashMessageKey, message)
	if err := sess.Save(); err != nil {
		log.Warn().Err(err).Msg("failed to save flash message")
	}
}

// popFlash returns the pending flash message, if any, and clears it.
func (h *Admin) popFlash(c *fiber.Ctx) *Flash {
	sess, err := h.flashes.Get(c)
	if err != nil || sess.Fresh() {
		return nil
	}

	kind, _ := sess.Get(flashKindKey).(string)
	msg, _ := sess.Get(flashMessageKey).(string)
	if err := sess.Destroy(); err != nil {
		log.Warn().Err(err).Msg("failed to clear flash message")
	}

	if msg == "" {
		return nil
	}
	if kind != flashSuccess {
		kind = flashError
	}
	return &Flash{Kind: kind, Message: msg}
}
