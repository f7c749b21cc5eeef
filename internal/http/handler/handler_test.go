package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tearoomcms/internal/auth"
	"tearoomcms/internal/content"
	"tearoomcms/internal/http/middleware"
	"tearoomcms/internal/model"
	repoMocks "tearoomcms/internal/repository/mocks"
	"tearoomcms/internal/service"
	serviceMocks "tearoomcms/internal/service/mocks"
	"tearoomcms/internal/web"
)

const adminEmail = "admin@example.com"

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type stubProvider struct {
	email string
	err   error
}

func (p stubProvider) SignIn(context.Context, string, string) (*auth.Identity, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &auth.Identity{Email: p.email}, nil
}

type adminMocks struct {
	carousel  *serviceMocks.MockCarouselService
	menus     *serviceMocks.MockMenuService
	instagram *serviceMocks.MockInstagramService
	jobs      *serviceMocks.MockJobService
}

func newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		Views:        web.NewEngine(false),
		ErrorHandler: ErrorHandler(),
	})
	app.Use(middleware.RequestID())
	return app
}

func newAdminApp(t *testing.T, provider auth.PasswordProvider) (*fiber.App, *adminMocks, *auth.Sessions) {
	t.Helper()

	sessions, err := auth.NewSessions("test-secret", time.Hour)
	require.NoError(t, err)

	m := &adminMocks{
		carousel:  new(serviceMocks.MockCarouselService),
		menus:     new(serviceMocks.MockMenuService),
		instagram: new(serviceMocks.MockInstagramService),
		jobs:      new(serviceMocks.MockJobService),
	}

	admin := NewAdmin(auth.NewService(provider, sessions, adminEmail), AdminServices{
		Carousel:  m.carousel,
		Menus:     m.menus,
		Instagram: m.instagram,
		Jobs:      m.jobs,
	}, true)

	app := newApp()
	RegisterRoutes(app, Deps{Content: content.NewManager(content.Sources{}, nil), Admin: admin})
	return app, m, sessions
}

func sessionCookie(t *testing.T, sessions *auth.Sessions) *http.Cookie {
	t.Helper()
	token, err := sessions.Issue(adminEmail)
	require.NoError(t, err)
	return &http.Cookie{Name: auth.SessionCookie, Value: token}
}

func formRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return req
}

func fileRequest(t *testing.T, path, filename, contentType string, data []byte, fields map[string]string) *http.Request {
	t.Helper()

	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return req
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

var flashPattern = regexp.MustCompile(`<div class="message (\w+)" role="status">([^<]*)</div>`)

func cookieFrom(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// flashFrom follows the redirect in resp and returns the flash shown there as "kind|message".
func flashFrom(t *testing.T, app *fiber.App, sessions *auth.Sessions, resp *http.Response) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, resp.Header.Get("Location"), nil)
	req.AddCookie(sessionCookie(t, sessions))
	if c := cookieFrom(resp, flashCookie); c != nil {
		req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}

	next, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, next.StatusCode)

	m := flashPattern.FindStringSubmatch(readBody(t, next))
	if m == nil {
		return ""
	}
	return m[1] + "|" + html.UnescapeString(m[2])
}

func TestHealthCheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		app := fiber.New()
		app.Get("/health", HealthCheck(stubPinger{}))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		app := fiber.New()
		app.Get("/health", HealthCheck(stubPinger{err: errors.New("db error")}))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLiveness(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", Liveness())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPublicData(t *testing.T) {
	mJobs := new(repoMocks.MockJobRepository)
	mJobs.On("List", mock.Anything).Return([]model.JobPosting{
		{ID: "j1", Title: "Barista", Description: "Coffee", Type: model.JobCasual, Active: true, PostedDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "j2", Title: "Chef", Description: "Food", Type: model.JobFullTime, Active: false},
	}, nil)

	app := newApp()
	app.Get("/data/:kind.json", PublicData(content.NewManager(content.Sources{Jobs: mJobs}, nil)))

	t.Run("jobs", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/data/jobs.json", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var jobs []model.PublicJob
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&jobs))
		require.Len(t, jobs, 1)
		assert.Equal(t, "j1", jobs[0].ID)
		assert.Equal(t, "2024-01-02T00:00:00Z", jobs[0].DatePosted)
		assert.Equal(t, content.DefaultApplicationEmail, jobs[0].ApplicationEmail)
	})

	t.Run("unknown kind", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/data/pages.json", nil)
		req.Header.Set(middleware.RequestIDHeader, "rid-1")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var body errorPayload
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "NOT_FOUND", body.Error.Code)
		assert.Equal(t, "rid-1", body.RequestID)
	})
}

func TestPublicData_InstagramTokenNotServed(t *testing.T) {
	mSettings := new(repoMocks.MockSettingsRepository)
	mSettings.On("Instagram", mock.Anything).
		Return(&model.InstagramSettings{AccessToken: "IGQVJ-secret-token", UserID: "1784", Enabled: true}, nil)

	static := fstest.MapFS{"instagram.json": &fstest.MapFile{
		Data: []byte(`{"enabled": true, "userId": "1", "accessToken": "IGQVJ-static-token"}`),
	}}

	tests := []struct {
		name     string
		mgr      *content.Manager
		wantBody string
	}{
		{"live settings", content.NewManager(content.Sources{Settings: mSettings}, nil), `{"enabled": true, "userId": "1784"}`},
		{"static file", content.NewManager(content.Sources{}, static), `{"enabled": true, "userId": "1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp()
			app.Get("/data/:kind.json", PublicData(tt.mgr))

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/data/instagram.json", nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			body := readBody(t, resp)
			assert.NotContains(t, body, "token")
			assert.JSONEq(t, tt.wantBody, body)
		})
	}
}

func TestPublicPages(t *testing.T) {
	mMenus := new(repoMocks.MockMenuRepository)
	mMenus.On("List", mock.Anything).Return([]model.Menu{
		{Type: model.MenuDrinks, URL: "https://raw.example/drinks-menu.pdf", Filename: "drinks.pdf", FileType: model.FileTypePDF},
	}, nil)
	mJobs := new(repoMocks.MockJobRepository)
	mJobs.On("List", mock.Anything).Return([]model.JobPosting{}, nil)

	app := newApp()
	RegisterRoutes(app, Deps{Content: content.NewManager(content.Sources{Menus: mMenus, Jobs: mJobs}, nil)})

	t.Run("menus", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/menus", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := readBody(t, resp)
		assert.Contains(t, body, "Drinks Menu")
		assert.Contains(t, body, "View Menu")
		assert.Equal(t, 3, strings.Count(body, "Menu coming soon"))
	})

	t.Run("careers without postings", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/careers", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := readBody(t, resp)
		assert.Contains(t, body, "No Current Vacancies")
		assert.Contains(t, body, content.DefaultApplicationEmail)
	})

	t.Run("home shows instagram placeholders", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, content.InstagramGridSize, strings.Count(readBody(t, resp), "Follow us on Instagram!"))
	})
}

func TestAdmin_RequiresSession(t *testing.T) {
	app, _, _ := newAdminApp(t, stubProvider{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/jobs", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, LoginPath, resp.Header.Get("Location"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, LoginPath, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Sign In")
}

func TestAdmin_Login(t *testing.T) {
	tests := []struct {
		name       string
		provider   auth.PasswordProvider
		form       url.Values
		wantStatus int
		wantBody   string
		wantCookie bool
	}{
		{
			name:       "administrator gets a session",
			provider:   stubProvider{email: adminEmail},
			form:       url.Values{"email": {adminEmail}, "password": {"secret"}},
			wantStatus: http.StatusSeeOther,
			wantCookie: true,
		},
		{
			name:       "other identity is denied",
			provider:   stubProvider{email: "someone@example.com"},
			form:       url.Values{"email": {"someone@example.com"}, "password": {"secret"}},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Access denied. Please contact administrator.",
		},
		{
			name:       "empty fields",
			provider:   stubProvider{email: adminEmail},
			form:       url.Values{"email": {adminEmail}},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Please fill in all fields",
		},
		{
			name:       "wrong password",
			provider:   stubProvider{err: &auth.ProviderError{Code: auth.CodeInvalidPassword}},
			form:       url.Values{"email": {adminEmail}, "password": {"nope"}},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid password. Please check your password.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _, _ := newAdminApp(t, tt.provider)

			resp, err := app.Test(formRequest(LoginPath, tt.form))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var session string
			for _, c := range resp.Cookies() {
				if c.Name == auth.SessionCookie {
					session = c.Value
				}
			}
			assert.Equal(t, tt.wantCookie, session != "")

			if tt.wantBody != "" {
				assert.Contains(t, readBody(t, resp), tt.wantBody)
			}
		})
	}
}

func TestAdmin_Logout(t *testing.T) {
	app, _, sessions := newAdminApp(t, stubProvider{})

	req := formRequest("/admin/logout", url.Values{})
	req.AddCookie(sessionCookie(t, sessions))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, LoginPath, resp.Header.Get("Location"))
}

func TestAdmin_Sections(t *testing.T) {
	app, m, sessions := newAdminApp(t, stubProvider{})

	m.carousel.On("List", mock.Anything).Return([]model.CarouselImage{{ID: "s1", Filename: "scone.jpg", URL: "https://raw.example/scone.jpg"}}, nil)
	m.menus.On("List", mock.Anything).Return([]model.Menu{}, nil)
	m.instagram.On("Get", mock.Anything).Return(&model.InstagramSettings{AccessToken: "IGQVJabcdefgh1234", UserID: "1784", Enabled: true}, nil)
	m.jobs.On("List", mock.Anything).Return(nil, errors.New("Failed to load job postings: offline"))

	tests := []struct {
		section  string
		wantBody string
	}{
		{"carousel", "scone.jpg"},
		{"menus", "No menus uploaded yet"},
		{"instagram", "IGQV…1234"},
		{"jobs", "Failed to load job postings: offline"},
	}

	for _, tt := range tests {
		t.Run(tt.section, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/"+tt.section, nil)
			req.AddCookie(sessionCookie(t, sessions))
			resp, err := app.Test(req)
			require.NoError(t, err)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			body := readBody(t, resp)
			assert.Contains(t, body, tt.wantBody)
			assert.Contains(t, body, adminEmail)
		})
	}

	t.Run("unknown section", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/pages", nil)
		req.AddCookie(sessionCookie(t, sessions))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestAdmin_UploadCarousel(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(m *adminMocks)
		wantFlash string
	}{
		{
			name: "success",
			setup: func(m *adminMocks) {
				m.carousel.On("Upload", mock.Anything, mock.MatchedBy(func(f *service.File) bool {
					return f.Filename == "scone.jpg" && f.ContentType == "image/jpeg" && f.Size == 5
				})).Return(&model.CarouselImage{ID: "s1"}, nil)
			},
			wantFlash: "success|Image uploaded successfully!",
		},
		{
			name: "remote failure",
			setup: func(m *adminMocks) {
				m.carousel.On("Upload", mock.Anything, mock.Anything).
					Return(nil, &service.OperationError{Action: "upload image", Err: errors.New("GitHub API error: Bad credentials")})
			},
			wantFlash: "error|Failed to upload image: GitHub API error: Bad credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, m, sessions := newAdminApp(t, stubProvider{})
			tt.setup(m)
			m.carousel.On("List", mock.Anything).Return([]model.CarouselImage{}, nil)

			req := fileRequest(t, "/admin/carousel", "scone.jpg", "image/jpeg", []byte("jpeg!"), nil)
			req.AddCookie(sessionCookie(t, sessions))
			resp, err := app.Test(req)
			require.NoError(t, err)

			assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
			assert.Equal(t, "/admin/carousel", resp.Header.Get("Location"))
			assert.Equal(t, tt.wantFlash, flashFrom(t, app, sessions, resp))
			m.carousel.AssertExpectations(t)
		})
	}
}

func TestAdmin_UploadMenu(t *testing.T) {
	app, m, sessions := newAdminApp(t, stubProvider{})
	m.menus.On("Upload", mock.Anything, model.MenuFood, mock.MatchedBy(func(f *service.File) bool {
		return f.Filename == "food.pdf" && f.ContentType == model.FileTypePDF
	})).Return(&model.Menu{Type: model.MenuFood}, nil)
	m.menus.On("List", mock.Anything).Return([]model.Menu{}, nil)

	req := fileRequest(t, "/admin/menus", "food.pdf", model.FileTypePDF, []byte("%PDF-"), map[string]string{"type": "food"})
	req.AddCookie(sessionCookie(t, sessions))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "success|Menu uploaded successfully!", flashFrom(t, app, sessions, resp))
	m.menus.AssertExpectations(t)
}

func TestAdmin_DeleteNeedsConfirmation(t *testing.T) {
	app, m, sessions := newAdminApp(t, stubProvider{})
	m.jobs.On("Delete", mock.Anything, "job-1").Return(nil).Once()
	m.jobs.On("List", mock.Anything).Return([]model.JobPosting{}, nil)

	req := formRequest("/admin/jobs/job-1/delete", url.Values{})
	req.AddCookie(sessionCookie(t, sessions))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Are you sure you want to delete this job posting?")
	m.jobs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	req = formRequest("/admin/jobs/job-1/delete", url.Values{"confirm": {"yes"}})
	req.AddCookie(sessionCookie(t, sessions))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "success|Job posting deleted successfully!", flashFrom(t, app, sessions, resp))
	m.jobs.AssertExpectations(t)
}

func TestAdmin_CreateJobValidation(t *testing.T) {
	app, m, sessions := newAdminApp(t, stubProvider{})
	m.jobs.On("Create", mock.Anything, service.JobInput{Title: "Barista", Type: "casual"}).
		Return(nil, &service.ValidationError{Message: "Please fill in the job title and description"})
	m.jobs.On("List", mock.Anything).Return([]model.JobPosting{}, nil)

	req := formRequest("/admin/jobs", url.Values{"title": {"Barista"}, "type": {"casual"}})
	req.AddCookie(sessionCookie(t, sessions))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "error|Please fill in the job title and description", flashFrom(t, app, sessions, resp))
}

func TestAdmin_FlashShownOnce(t *testing.T) {
	app, m, sessions := newAdminApp(t, stubProvider{})
	m.instagram.On("Save", mock.Anything, "IGQVJtoken", "1784").
		Return(&model.InstagramSettings{AccessToken: "IGQVJtoken", UserID: "1784", Enabled: true}, nil)
	m.instagram.On("Get", mock.Anything).Return(nil, nil)

	req := formRequest("/admin/instagram", url.Values{"access_token": {"IGQVJtoken"}, "user_id": {"1784"}})
	req.AddCookie(sessionCookie(t, sessions))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	flash := cookieFrom(resp, flashCookie)
	require.NotNil(t, flash)
	assert.True(t, flash.HttpOnly)
	assert.Equal(t, AdminPath, flash.Path)
	assert.NotContains(t, flash.Value, "saved")

	show := func() string {
		req := httptest.NewRequest(http.MethodGet, "/admin/instagram", nil)
		req.AddCookie(sessionCookie(t, sessions))
		req.AddCookie(&http.Cookie{Name: flashCookie, Value: flash.Value})
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		return readBody(t, resp)
	}

	body := show()
	assert.Contains(t, body, "Instagram credentials saved successfully!")
	assert.Contains(t, body, "Instagram is not configured")

	assert.NotContains(t, show(), "Instagram credentials saved successfully!")
}

func TestAdmin_ForgedFlashIgnored(t *testing.T) {
	app, m, sessions := newAdminApp(t, stubProvider{})
	m.instagram.On("Get", mock.Anything).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/instagram", nil)
	req.AddCookie(sessionCookie(t, sessions))
	req.AddCookie(&http.Cookie{Name: flashCookie, Value: url.QueryEscape("success|Everything is fine")})
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, readBody(t, resp), "Everything is fine")
}

func TestConfigErrorPage(t *testing.T) {
	app := newApp()
	recheck := func() error { return errors.New("configuration field 'repo.token' is missing") }
	RegisterRoutes(app, Deps{
		Content:   content.NewManager(content.Sources{}, nil),
		ConfigErr: errors.New("configuration section 'repo' is missing"),
		Recheck:   recheck,
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/carousel", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "Configuration Error")
	assert.Contains(t, body, "configuration section &#39;repo&#39; is missing")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/admin/login?retry=1", nil))
	require.NoError(t, err)
	assert.Contains(t, readBody(t, resp), "configuration field &#39;repo.token&#39; is missing")

	// public pages keep working
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/careers", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", fiber.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"too large", fiber.ErrRequestEntityTooLarge, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
			app.Get("/", func(*fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body errorPayload
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}
