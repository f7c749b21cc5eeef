// Package service implements the admin panel flows: validate, store the binary, upsert the document,
// then notify the site build.
package service

import (
	"io"
	"time"
)

const (
	// MaxCarouselSize is the largest accepted carousel image.
	MaxCarouselSize = 5 * 1024 * 1024
	// MaxMenuSize is the largest accepted menu file.
	MaxMenuSize = 10 * 1024 * 1024

	carouselDir = "assets/images/carousel"
	menuDir     = "assets/images/menus"
)

// File is an uploaded file as received from the admin form.
type File struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// Clock returns the current time. Tests replace it.
type Clock func() time.Time
