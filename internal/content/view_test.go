package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tearoomcms/internal/model"
)

func TestActiveJobs(t *testing.T) {
	jobs := []model.PublicJob{
		{ID: "a", IsActive: true, DatePosted: "2024-01-01T00:00:00Z"},
		{ID: "b", IsActive: false, DatePosted: "2024-06-01T00:00:00Z"},
		{ID: "c", IsActive: true, DatePosted: "2024-03-01T00:00:00Z"},
		{ID: "d", IsActive: true, DatePosted: "not a date"},
	}

	got := ActiveJobs(jobs)
	ids := make([]string, 0, len(got))
	for _, j := range got {
		ids = append(ids, j.ID)
	}
	assert.Equal(t, []string{"c", "a", "d"}, ids)
}

func TestJobViews(t *testing.T) {
	views := JobViews([]model.PublicJob{
		{Title: "Kitchen & Tea Assistant", Type: model.JobPartTime, DatePosted: "2024-03-01T00:00:00Z"},
		{Title: "Barista", Type: "apprentice", ApplicationEmail: "hr@example.com"},
	}, "jobs@example.com")

	require.Len(t, views, 2)
	assert.Equal(t, "Part Time", views[0].TypeLabel)
	assert.Equal(t, "1 March 2024", views[0].Posted)
	assert.Equal(t, "mailto:jobs@example.com?subject=Application%20for%20Kitchen%20%26%20Tea%20Assistant", views[0].ApplyURL)

	assert.Equal(t, "apprentice", views[1].TypeLabel)
	assert.Equal(t, "Recently", views[1].Posted)
	assert.True(t, strings.HasPrefix(views[1].ApplyURL, "mailto:hr@example.com?"))
}

func TestMenuCards(t *testing.T) {
	cards := MenuCards(model.PublicMenus{
		model.MenuDrinks: {URL: "https://x/drinks-menu.pdf", FileType: model.FileTypePDF, UploadDate: "2024-02-03T10:00:00Z"},
		model.MenuFood:   {URL: "https://x/food-menu.jpg", FileType: "image/jpeg"},
		"brunch":         {URL: "https://x/brunch.jpg"},
	})

	require.Len(t, cards, len(model.MenuTypes))
	for i, c := range cards {
		assert.Equal(t, model.MenuTypes[i], c.Type)
	}

	assert.Equal(t, "Food Menu", cards[0].Title)
	assert.True(t, cards[0].Available())
	assert.False(t, cards[0].IsPDF())

	assert.True(t, cards[1].IsPDF())
	assert.Equal(t, "https://mozilla.github.io/pdf.js/web/viewer.html?file=https%3A%2F%2Fx%2Fdrinks-menu.pdf#zoom=50", cards[1].ViewerURL())
	assert.Equal(t, "3 February 2024", cards[1].Updated())

	assert.Equal(t, "Ice Cream Menu", cards[2].Title)
	assert.False(t, cards[2].Available())
	assert.False(t, cards[3].Available())
}

func TestInstagramTiles(t *testing.T) {
	long := strings.Repeat("a", 150)
	posts := []model.InstagramPost{
		{MediaType: "IMAGE", MediaURL: "https://x/1.jpg", Caption: "Scones!", Permalink: "https://ig/p/1"},
		{MediaType: "VIDEO", MediaURL: "https://x/2.mp4", ThumbnailURL: "https://x/2.jpg", Caption: long},
		{MediaType: "IMAGE"}, {MediaType: "IMAGE"}, {MediaType: "IMAGE"}, {MediaType: "IMAGE"}, {MediaType: "IMAGE"},
	}

	tiles := InstagramTiles(posts)
	require.Len(t, tiles, InstagramGridSize)
	assert.Equal(t, "https://x/1.jpg", tiles[0].ImageURL)
	assert.Equal(t, "Scones!...", tiles[0].Caption)
	assert.Equal(t, "https://x/2.jpg", tiles[1].ImageURL)
	assert.Equal(t, strings.Repeat("a", 100)+"...", tiles[1].Caption)
	assert.Equal(t, "", tiles[2].Caption)
}

func TestGraphFeed_Recent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/media", r.URL.Path)
		assert.Equal(t, "id,caption,media_type,media_url,thumbnail_url,permalink", r.URL.Query().Get("fields"))
		assert.Equal(t, "6", r.URL.Query().Get("limit"))

		if r.URL.Query().Get("access_token") != "good" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"data":[{"id":"1","media_type":"IMAGE","media_url":"https://x/1.jpg","permalink":"https://ig/p/1"}]}`))
	}))
	defer srv.Close()

	feed := NewGraphFeed(srv.URL, srv.Client())

	posts, err := feed.Recent(context.Background(), "good", 6)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "https://x/1.jpg", posts[0].MediaURL)

	_, err = feed.Recent(context.Background(), "bad", 6)
	assert.Error(t, err)
}
