package model

import "time"

// CollectionCarousel holds one document per carousel slide.
const CollectionCarousel = "carousel"

// CarouselImage is a slide on the home page carousel. Slides are displayed by Order, highest first.
type CarouselImage struct {
	ID         string    `json:"id,omitempty" bson:"-"`
	URL        string    `json:"url" bson:"url" validate:"required,url"`
	Filename   string    `json:"filename" bson:"filename" validate:"required"`
	Path       string    `json:"path" bson:"path" validate:"required"`
	UploadDate time.Time `json:"uploadDate" bson:"uploadDate"`
	Order      int64     `json:"order" bson:"order"`
}
