package user

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("user: not found")
	ErrLoginExists  = errors.New("user: login already exists")
	ErrInvalidInput = errors.New("user: invalid input")
)

// Store describes persistence operations for staff accounts.
type Store interface {
	Create(ctx context.Context, u *User) error
	Find(ctx context.Context, id string) (*User, error)
	FindByLogin(ctx context.Context, login string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
}
