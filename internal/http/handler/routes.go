package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"tearoomcms/internal/content"
)

// Deps are the dependencies of the HTTP routes.
type Deps struct {
	Content *content.Manager
	// Store is pinged by /health. May be nil.
	Store Pinger
	// Admin serves the admin panel. When nil, every admin route shows the configuration error page.
	Admin *Admin
	// ConfigErr is the configuration error that disabled the admin panel.
	ConfigErr error
	// Recheck loads the configuration again for the retry link of the error page.
	Recheck func() error
}

// RegisterRoutes attaches the public site, the public data API, health checks and the admin panel.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.Store))
	app.Get("/healthz", Liveness())

	app.Get("/", Home(d.Content))
	app.Get("/menus", Menus(d.Content))
	app.Get("/careers", Careers(d.Content))
	app.Get("/data/:kind.json", PublicData(d.Content))

	if d.Admin != nil {
		d.Admin.Init(app)
		return
	}

	page := ConfigErrorPage(d.ConfigErr, d.Recheck)
	app.All(AdminPath, page)
	app.All(AdminPath+"/*", page)
}

// ConfigErrorPage renders the setup instructions for a configuration error. The retry link
// validates the configuration source again; a valid configuration takes effect after a restart.
func ConfigErrorPage(cfgErr error, recheck func() error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		msg := "configuration is missing"
		if cfgErr != nil {
			msg = cfgErr.Error()
		}

		if c.Query("retry") != "" && recheck != nil {
			if err := recheck(); err != nil {
				msg = err.Error()
			} else {
				msg = "The configuration is valid now. Restart the service to enable the admin panel."
			}
			log.Info().Str("result", msg).Msg("configuration recheck")
		}

		return c.Status(fiber.StatusServiceUnavailable).Render("admin/config_error", fiber.Map{
			"Title": "Configuration Error",
			"Error": msg,
			"Retry": c.Path() + "?retry=1",
		})
	}
}
