package model

// The public shapes below are what the site renders and what the static fallback files
// (carousel.json, menus.json, jobs.json, instagram.json) contain. Dates are RFC3339 strings in UTC.

// PublicSlide is a carousel slide as served to the public site.
type PublicSlide struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	Filename   string `json:"filename"`
	Order      int64  `json:"order"`
	UploadDate string `json:"uploadDate"`
}

// PublicMenu is a menu as served to the public site.
type PublicMenu struct {
	URL        string   `json:"url"`
	Filename   string   `json:"filename"`
	Type       MenuType `json:"type"`
	FileType   string   `json:"fileType"`
	UploadDate string   `json:"uploadDate"`
}

// PublicMenus maps menu type to its current menu.
type PublicMenus map[MenuType]PublicMenu

// PublicJob is a job posting as served to the public site.
type PublicJob struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Type             JobType `json:"type"`
	Description      string  `json:"description"`
	Salary           *string `json:"salary"`
	IsActive         bool    `json:"isActive"`
	DatePosted       string  `json:"datePosted"`
	ApplicationEmail string  `json:"applicationEmail"`
}

// PublicInstagram is the Instagram feed configuration as served to the public site.
// AccessToken is only set from the live settings and never serialized.
type PublicInstagram struct {
	Enabled     bool   `json:"enabled"`
	UserID      string `json:"userId"`
	AccessToken string `json:"-"`
}
