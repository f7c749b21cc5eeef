package handler

import (
	"github.com/gofiber/fiber/v2"

	"tearoomcms/internal/content"
)

// Home renders the home page: carousel and Instagram grid.
func Home(mgr *content.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		return c.Render("index", fiber.Map{
			"Title":     "",
			"Slides":    mgr.Carousel(ctx),
			"Instagram": mgr.InstagramGrid(ctx),
			"JobCount":  len(mgr.Jobs(ctx)),
		})
	}
}

// Menus renders one card per menu type.
func Menus(mgr *content.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		return c.Render("menus", fiber.Map{
			"Title":    "Menus",
			"Cards":    content.MenuCards(mgr.Menus(ctx)),
			"JobCount": len(mgr.Jobs(ctx)),
		})
	}
}

// Careers renders the active job postings.
func Careers(mgr *content.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		jobs := mgr.Jobs(c.UserContext())
		return c.Render("careers", fiber.Map{
			"Title":        "Careers",
			"Jobs":         content.JobViews(jobs, mgr.ContactEmail()),
			"ContactEmail": mgr.ContactEmail(),
			"JobCount":     len(jobs),
		})
	}
}
