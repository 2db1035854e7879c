package product

import "time"

// Product is a catalog item. Width and height are optional physical
// dimensions; ImageURLs point at previously uploaded images.
type Product struct {
	ID          string
	Title       string
	Description string
	Price       float64
	Width       *float64
	Height      *float64
	Quantity    int
	ImageURLs   []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateInput carries the fields accepted when creating a product.
type CreateInput struct {
	Title       string
	Description string
	Price       float64
	Width       *float64
	Height      *float64
	Quantity    int
	ImageURLs   []string
}

// UpdateInput carries optional fields for a partial product update.
type UpdateInput struct {
	Title       *string
	Description *string
	Price       *float64
	Width       *float64
	Height      *float64
	Quantity    *int
	ImageURLs   []string
}
