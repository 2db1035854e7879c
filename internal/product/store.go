package product

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("product: not found")
	ErrInvalidInput = errors.New("product: invalid input")
)

// Store describes persistence operations for catalog products.
type Store interface {
	Create(ctx context.Context, p *Product) error
	Find(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
}
