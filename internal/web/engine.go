// Package web holds the HTML views of the public site and the admin panel.
package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/template/html/v2"
	"github.com/rs/zerolog/log"

	"tearoomcms/internal/model"
)

// Extension is the file extension of the view templates.
const Extension = ".gohtml"

// NewEngine creates the view engine. In dev mode templates are read from disk and reloaded on
// every render.
func NewEngine(devMode bool) *html.Engine {
	engine := html.NewFileSystem(http.FS(templateEmbedFS{embeddedTemplates}), Extension)

	if devMode {
		engine = html.New("./internal/web/templates", Extension)
		engine.ShouldReload = true

		log.Warn().Msg("dev mode enabled: using local filesystem for templates")
	}

	engine.AddFunc("menuTitle", func(t model.MenuType) string {
		s := string(t)
		if s == "" {
			return ""
		}
		return strings.ToUpper(s[:1]) + s[1:] + " Menu"
	})
	engine.AddFunc("jobLabel", func(t model.JobType) string {
		return t.Label()
	})
	engine.AddFunc("date", func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2 January 2006")
	})
	engine.AddFunc("deref", func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	})

	return engine
}
