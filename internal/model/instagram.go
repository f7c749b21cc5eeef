package model

import "time"

const (
	// CollectionSettings holds singleton settings documents.
	CollectionSettings = "settings"

	// InstagramSettingsID is the id of the Instagram settings document.
	InstagramSettingsID = "instagram"
)

// InstagramSettings holds the credentials used to read the Instagram feed.
type InstagramSettings struct {
	AccessToken string    `json:"accessToken" bson:"accessToken" validate:"required"`
	UserID      string    `json:"userId" bson:"userId" validate:"required"`
	UpdatedDate time.Time `json:"updatedDate" bson:"updatedDate"`
	Enabled     bool      `json:"enabled" bson:"enabled"`
}

// MaskedToken returns the access token with everything but the first and last four characters hidden.
func (s InstagramSettings) MaskedToken() string {
	const keep = 4
	if len(s.AccessToken) <= keep*2 {
		return "********"
	}
	return s.AccessToken[:keep] + "…" + s.AccessToken[len(s.AccessToken)-keep:]
}

// InstagramPost is one media item of the Instagram feed.
type InstagramPost struct {
	ID           string `json:"id"`
	Caption      string `json:"caption"`
	MediaType    string `json:"media_type"`
	MediaURL     string `json:"media_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Permalink    string `json:"permalink"`
}
