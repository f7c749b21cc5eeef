package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"tearoomcms/internal/auth"
	"tearoomcms/internal/http/middleware"
	"tearoomcms/internal/model"
	"tearoomcms/internal/service"
)

const (
	// AdminPath is the root of the admin panel.
	AdminPath = "/admin"
	// LoginPath is the admin sign-in page.
	LoginPath = AdminPath + "/login"

	defaultSection = "carousel"
)

var jobTypes = []model.JobType{model.JobFullTime, model.JobPartTime, model.JobSeasonal, model.JobCasual}

// AdminServices are the use cases behind the admin sections.
type AdminServices struct {
	Carousel  service.CarouselService
	Menus     service.MenuService
	Instagram service.InstagramService
	Jobs      service.JobService
}

// Admin serves the admin panel.
type Admin struct {
	auth    *auth.Service
	svc     AdminServices
	flashes *session.Store
	devMode bool
}

// NewAdmin creates the admin panel handler.
func NewAdmin(authSvc *auth.Service, svc AdminServices, devMode bool) *Admin {
	return &Admin{
		auth:    authSvc,
		svc:     svc,
		flashes: newFlashStore(devMode),
		devMode: devMode,
	}
}

// Init registers the admin routes. Everything but sign-in requires a session.
func (h *Admin) Init(app *fiber.App) {
	app.Get(LoginPath, h.LoginPage)
	app.Post(LoginPath, h.Login)
	app.Post(AdminPath+"/logout", h.Logout)

	app.Route(AdminPath, func(router fiber.Router) {
		router.Use(middleware.RequireSession(auth.SessionCookie, LoginPath, h.auth.Authorize))

		router.Get("/", func(c *fiber.Ctx) error {
			return c.Redirect(AdminPath + "/" + defaultSection)
		})
		router.Get("/:section", h.Section)

		router.Post("/carousel", h.UploadCarousel)
		router.Post("/carousel/:id/delete", h.DeleteCarousel)
		router.Post("/menus", h.UploadMenu)
		router.Post("/menus/:type/delete", h.DeleteMenu)
		router.Post("/instagram", h.SaveInstagram)
		router.Post("/jobs", h.CreateJob)
		router.Post("/jobs/:id/delete", h.DeleteJob)
	}, "admin")
}

// Section renders one admin section with its current list.
func (h *Admin) Section(c *fiber.Ctx) error {
	ctx := c.UserContext()
	section := c.Params("section")

	data := fiber.Map{
		"Title":      "Admin",
		"Section":    section,
		"AdminEmail": c.Locals(middleware.AdminEmailLocalKey),
		"Flash":      h.popFlash(c),
	}

	var err error
	switch section {
	case "carousel":
		data["Items"], err = h.svc.Carousel.List(ctx)
	case "menus":
		data["Items"], err = h.svc.Menus.List(ctx)
		data["MenuTypes"] = model.MenuTypes
	case "instagram":
		data["Settings"], err = h.svc.Instagram.Get(ctx)
	case "jobs":
		data["Items"], err = h.svc.Jobs.List(ctx)
		data["JobTypes"] = jobTypes
	default:
		return fiber.ErrNotFound
	}
	if err != nil {
		log.Error().Err(err).Str("section", section).Msg("failed to load admin section")
		data["Error"] = err.Error()
	}

	return c.Render("admin/"+section, data)
}

// done flashes the outcome of a flow and redirects back to its section.
func (h *Admin) done(c *fiber.Ctx, section, success string, err error) error {
	switch {
	case err == nil:
		h.setFlash(c, flashSuccess, success)
	case errors.Is(err, service.ErrValidation):
		h.setFlash(c, flashError, err.Error())
	default:
		log.Error().Err(err).Str("section", section).Str("request_id", requestIDFromCtx(c)).Msg("admin operation failed")
		h.setFlash(c, flashError, err.Error())
	}
	return c.Redirect(AdminPath+"/"+section, fiber.StatusSeeOther)
}

// confirmed renders the confirmation page unless the form carries confirm=yes.
func confirmed(c *fiber.Ctx, message, back string) (bool, error) {
	if c.FormValue("confirm") == "yes" {
		return true, nil
	}
	return false, c.Render("admin/confirm", fiber.Map{
		"Title":   "Confirm",
		"Message": message,
		"Action":  c.OriginalURL(),
		"Back":    back,
	})
}

// uploadedFile returns the "file" form field, or nil when none was sent.
// The caller closes the returned closer.
func uploadedFile(c *fiber.Ctx) (*service.File, func(), error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, func() {}, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, errors.Wrap(err, "open uploaded file")
	}

	return &service.File{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
	}, func() { _ = f.Close() }, nil
}

// UploadCarousel handles POST /admin/carousel.
func (h *Admin) UploadCarousel(c *fiber.Ctx) error {
	f, closeFile, err := uploadedFile(c)
	defer closeFile()
	if err == nil {
		_, err = h.svc.Carousel.Upload(c.UserContext(), f)
	}
	return h.done(c, "carousel", service.MsgImageUploaded, err)
}

// DeleteCarousel handles POST /admin/carousel/:id/delete.
func (h *Admin) DeleteCarousel(c *fiber.Ctx) error {
	if ok, err := confirmed(c, "Are you sure you want to delete this image?", AdminPath+"/carousel"); !ok {
		return err
	}
	err := h.svc.Carousel.Delete(c.UserContext(), c.Params("id"))
	return h.done(c, "carousel", service.MsgImageDeleted, err)
}

// UploadMenu handles POST /admin/menus.
func (h *Admin) UploadMenu(c *fiber.Ctx) error {
	f, closeFile, err := uploadedFile(c)
	defer closeFile()
	if err == nil {
		_, err = h.svc.Menus.Upload(c.UserContext(), model.MenuType(c.FormValue("type")), f)
	}
	return h.done(c, "menus", service.MsgMenuUploaded, err)
}

// DeleteMenu handles POST /admin/menus/:type/delete.
func (h *Admin) DeleteMenu(c *fiber.Ctx) error {
	if ok, err := confirmed(c, "Are you sure you want to delete this menu?", AdminPath+"/menus"); !ok {
		return err
	}
	err := h.svc.Menus.Delete(c.UserContext(), model.MenuType(c.Params("type")))
	return h.done(c, "menus", service.MsgMenuDeleted, err)
}

// SaveInstagram handles POST /admin/instagram.
func (h *Admin) SaveInstagram(c *fiber.Ctx) error {
	_, err := h.svc.Instagram.Save(c.UserContext(), c.FormValue("access_token"), c.FormValue("user_id"))
	return h.done(c, "instagram", service.MsgInstagramSaved, err)
}

// CreateJob handles POST /admin/jobs.
func (h *Admin) CreateJob(c *fiber.Ctx) error {
	_, err := h.svc.Jobs.Create(c.UserContext(), service.JobInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Type:        c.FormValue("type"),
		Salary:      c.FormValue("salary"),
	})
	return h.done(c, "jobs", service.MsgJobCreated, err)
}

// DeleteJob handles POST /admin/jobs/:id/delete.
func (h *Admin) DeleteJob(c *fiber.Ctx) error {
	if ok, err := confirmed(c, "Are you sure you want to delete this job posting?", AdminPath+"/jobs"); !ok {
		return err
	}
	err := h.svc.Jobs.Delete(c.UserContext(), c.Params("id"))
	return h.done(c, "jobs", service.MsgJobDeleted, err)
}
