package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Service applies catalog business rules on top of a Store.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create adds a product to the catalog.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Product, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if in.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrInvalidInput)
	}

	p := &Product{
		ID:          uuid.NewString(),
		Title:       title,
		Description: in.Description,
		Price:       in.Price,
		Width:       in.Width,
		Height:      in.Height,
		Quantity:    in.Quantity,
		ImageURLs:   in.ImageURLs,
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.store.Find(ctx, p.ID)
}

// Update applies a partial update to an existing product.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*Product, error) {
	existing, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		existing.Title = title
	}
	if in.Description != nil {
		existing.Description = *in.Description
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
		}
		existing.Price = *in.Price
	}
	if in.Width != nil {
		existing.Width = in.Width
	}
	if in.Height != nil {
		existing.Height = in.Height
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, fmt.Errorf("%w: quantity must not be negative", ErrInvalidInput)
		}
		existing.Quantity = *in.Quantity
	}
	if in.ImageURLs != nil {
		existing.ImageURLs = in.ImageURLs
	}

	if err := s.store.Update(ctx, existing); err != nil {
		return nil, err
	}
	return s.store.Find(ctx, id)
}

func (s *Service) Find(ctx context.Context, id string) (*Product, error) {
	return s.store.Find(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Product, error) {
	return s.store.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
