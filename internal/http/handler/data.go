package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"tearoomcms/internal/content"
)

// PublicData serves the current public data of a kind in the static file format.
//
// @Summary      Public content
// @Description  Returns carousel, menus, jobs or instagram data through the fallback chain (cache, live store, static file, empty).
// @Tags         public
// @Produce      json
// @Param        kind  path  string  true  "carousel, menus, jobs or instagram"
// @Success      200
// @Failure      404  {object}  errorPayload
// @Router       /data/{kind}.json [get]
func PublicData(mgr *content.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, err := mgr.Fetch(c.UserContext(), content.Kind(c.Params("kind")))
		if errors.Is(err, content.ErrUnknownKind) {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "unknown content kind")
		}
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		c.Set(fiber.HeaderCacheControl, "public, max-age=60")
		return c.JSON(v)
	}
}
