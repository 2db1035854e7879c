package image

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("image: not found")
	ErrEmptyFile       = errors.New("image: file is empty")
	ErrTooLarge        = errors.New("image: file too large")
	ErrUnsupportedType = errors.New("image: only jpeg, png and gif files are allowed")
)

// Image is the database record for one uploaded file.
type Image struct {
	ID           string
	Filename     string
	OriginalName string
	Mimetype     string
	Size         int64
	Path         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// URL is the public path the image is served from.
func (i *Image) URL() string {
	return "/images/" + i.ID
}

// Upload is one submitted file.
type Upload struct {
	OriginalName string
	ContentType  string
	Data         []byte
}

// Store describes persistence operations for image records.
type Store interface {
	Create(ctx context.Context, img *Image) error
	Find(ctx context.Context, id string) (*Image, error)
}
