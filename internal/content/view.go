package content

import (
	"net/url"
	"sort"
	"strings"
	"time"

	"tearoomcms/internal/model"
)

const (
	// InstagramGridSize is the number of tiles in the Instagram section.
	InstagramGridSize = 6
	captionLimit      = 100

	pdfViewer = "https://mozilla.github.io/pdf.js/web/viewer.html"

	displayDate = "2 January 2006"
)

// SortSlides returns a copy of slides ordered by Order, highest first.
func SortSlides(slides []model.PublicSlide) []model.PublicSlide {
	out := append([]model.PublicSlide(nil), slides...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order > out[j].Order })
	return out
}

// ActiveJobs returns the active postings ordered by posting date, newest first.
func ActiveJobs(jobs []model.PublicJob) []model.PublicJob {
	out := make([]model.PublicJob, 0, len(jobs))
	for _, j := range jobs {
		if j.IsActive {
			out = append(out, j)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return parseDate(out[i].DatePosted).After(parseDate(out[j].DatePosted))
	})
	return out
}

func parseDate(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatDisplayDate(s string, fallback string) string {
	t := parseDate(s)
	if t.IsZero() {
		return fallback
	}
	return t.Format(displayDate)
}

// JobView is a posting prepared for the careers page.
type JobView struct {
	model.PublicJob
	TypeLabel string
	Posted    string
	ApplyURL  string
}

// JobViews prepares postings for display. contactEmail is used when a posting has no
// application address.
func JobViews(jobs []model.PublicJob, contactEmail string) []JobView {
	out := make([]JobView, 0, len(jobs))
	for _, j := range jobs {
		email := j.ApplicationEmail
		if email == "" {
			email = contactEmail
		}
		out = append(out, JobView{
			PublicJob: j,
			TypeLabel: j.Type.Label(),
			Posted:    formatDisplayDate(j.DatePosted, "Recently"),
			ApplyURL:  ApplyURL(email, j.Title),
		})
	}
	return out
}

// ApplyURL returns a mailto link with the subject "Application for <title>".
func ApplyURL(email, title string) string {
	subject := strings.ReplaceAll(url.QueryEscape("Application for "+title), "+", "%20")
	return "mailto:" + email + "?subject=" + subject
}

type menuInfo struct {
	title       string
	description string
}

var menuInfos = map[model.MenuType]menuInfo{
	model.MenuFood:     {"Food Menu", "Delicious homemade dishes"},
	model.MenuDrinks:   {"Drinks Menu", "Hot and cold beverages"},
	model.MenuIceCream: {"Ice Cream Menu", "Artisan ice cream flavors"},
	model.MenuSpecials: {"Specials Menu", "Seasonal and daily specials"},
}

// MenuCard is one card of the menus page. Menu is nil when no menu of the type was uploaded.
type MenuCard struct {
	Type        model.MenuType
	Title       string
	Description string
	Menu        *model.PublicMenu
}

// Available reports whether the card has a menu to show.
func (c MenuCard) Available() bool { return c.Menu != nil }

// IsPDF reports whether the menu is a PDF document.
func (c MenuCard) IsPDF() bool {
	return c.Menu != nil && c.Menu.FileType == model.FileTypePDF
}

// ViewerURL opens the PDF menu in the pdf.js viewer at 50% zoom.
func (c MenuCard) ViewerURL() string {
	if c.Menu == nil {
		return ""
	}
	return pdfViewer + "?file=" + url.QueryEscape(c.Menu.URL) + "#zoom=50"
}

// Updated returns the upload date for display.
func (c MenuCard) Updated() string {
	if c.Menu == nil {
		return ""
	}
	return formatDisplayDate(c.Menu.UploadDate, "")
}

// MenuCards returns exactly one card per known menu type, in display order.
func MenuCards(menus model.PublicMenus) []MenuCard {
	cards := make([]MenuCard, 0, len(model.MenuTypes))
	for _, t := range model.MenuTypes {
		info := menuInfos[t]
		card := MenuCard{Type: t, Title: info.title, Description: info.description}
		if m, ok := menus[t]; ok {
			m := m
			card.Menu = &m
		}
		cards = append(cards, card)
	}
	return cards
}

// InstagramTile is one cell of the Instagram grid.
type InstagramTile struct {
	ImageURL    string
	Caption     string
	Permalink   string
	Placeholder bool
}

// InstagramTiles turns posts into at most InstagramGridSize tiles. Videos show their thumbnail.
func InstagramTiles(posts []model.InstagramPost) []InstagramTile {
	if len(posts) > InstagramGridSize {
		posts = posts[:InstagramGridSize]
	}

	tiles := make([]InstagramTile, 0, len(posts))
	for _, p := range posts {
		img := p.MediaURL
		if p.MediaType == "VIDEO" {
			img = p.ThumbnailURL
		}
		tiles = append(tiles, InstagramTile{
			ImageURL:  img,
			Caption:   truncateCaption(p.Caption),
			Permalink: p.Permalink,
		})
	}
	return tiles
}

func truncateCaption(c string) string {
	if c == "" {
		return ""
	}
	r := []rune(c)
	if len(r) > captionLimit {
		r = r[:captionLimit]
	}
	return string(r) + "..."
}

// PlaceholderTiles returns the grid shown when the feed is disabled or unreachable.
func PlaceholderTiles() []InstagramTile {
	tiles := make([]InstagramTile, InstagramGridSize)
	for i := range tiles {
		tiles[i] = InstagramTile{Caption: "Follow us on Instagram!", Placeholder: true}
	}
	return tiles
}
