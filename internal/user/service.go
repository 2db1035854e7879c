package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"shodart.org/internal/auth"
)

const minPasswordLength = 6

// Service applies account business rules on top of a Store: login
// uniqueness, password policy and hashing. The stored hash never leaves
// this package through the HTTP layer.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create registers a new staff account.
func (s *Service) Create(ctx context.Context, in CreateInput) (*User, error) {
	login := strings.TrimSpace(in.Login)
	if login == "" {
		return nil, fmt.Errorf("%w: login is required", ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters long", ErrInvalidInput, minPasswordLength)
	}
	role := in.Role
	if role == "" {
		role = auth.RoleWorker
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	if _, err := s.store.FindByLogin(ctx, login); err == nil {
		return nil, ErrLoginExists
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:                 uuid.NewString(),
		Login:              login,
		PasswordHash:       hash,
		Role:               role,
		CanEditProducts:    in.CanEditProducts,
		CanManageLogistics: in.CanManageLogistics,
	}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, err
	}
	return s.store.Find(ctx, u.ID)
}

// Update applies a partial update to an existing account.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*User, error) {
	existing, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Login != nil {
		login := strings.TrimSpace(*in.Login)
		if login == "" {
			return nil, fmt.Errorf("%w: login is required", ErrInvalidInput)
		}
		if login != existing.Login {
			if _, err := s.store.FindByLogin(ctx, login); err == nil {
				return nil, ErrLoginExists
			} else if !errors.Is(err, ErrNotFound) {
				return nil, err
			}
		}
		existing.Login = login
	}
	if in.Password != nil {
		if len(*in.Password) < minPasswordLength {
			return nil, fmt.Errorf("%w: password must be at least %d characters long", ErrInvalidInput, minPasswordLength)
		}
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		existing.PasswordHash = hash
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, *in.Role)
		}
		existing.Role = *in.Role
	}
	if in.CanEditProducts != nil {
		existing.CanEditProducts = *in.CanEditProducts
	}
	if in.CanManageLogistics != nil {
		existing.CanManageLogistics = *in.CanManageLogistics
	}

	if err := s.store.Update(ctx, existing); err != nil {
		return nil, err
	}
	return s.store.Find(ctx, id)
}

func (s *Service) Find(ctx context.Context, id string) (*User, error) {
	return s.store.Find(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.store.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
