package content

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"tearoomcms/internal/model"
)

// DefaultGraphBase is the Instagram Graph API host.
const DefaultGraphBase = "https://graph.instagram.com"

const mediaFields = "id,caption,media_type,media_url,thumbnail_url,permalink"

// Feed returns recent Instagram posts.
type Feed interface {
	Recent(ctx context.Context, accessToken string, limit int) ([]model.InstagramPost, error)
}

// GraphFeed reads /me/media from the Instagram Graph API.
type GraphFeed struct {
	base   string
	client *http.Client
}

var _ Feed = (*GraphFeed)(nil)

// NewGraphFeed creates a feed client. An empty base uses DefaultGraphBase.
func NewGraphFeed(base string, client *http.Client) *GraphFeed {
	if base == "" {
		base = DefaultGraphBase
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &GraphFeed{base: strings.TrimRight(base, "/"), client: client}
}

type mediaPage struct {
	Data []model.InstagramPost `json:"data"`
}

func (f *GraphFeed) Recent(ctx context.Context, accessToken string, limit int) ([]model.InstagramPost, error) {
	q := url.Values{}
	q.Set("fields", mediaFields)
	q.Set("access_token", accessToken)
	q.Set("limit", fmt.Sprint(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.base+"/me/media?"+q.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build instagram request")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "instagram request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("instagram: unexpected status %s", resp.Status)
	}

	var page mediaPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, errors.Wrap(err, "decode instagram media")
	}
	if len(page.Data) > limit {
		page.Data = page.Data[:limit]
	}
	return page.Data, nil
}
