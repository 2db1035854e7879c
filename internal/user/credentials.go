package user

import (
	"context"
	"errors"

	"shodart.org/internal/auth"
)

var _ auth.CredentialStore = (*Credentials)(nil)

// Credentials adapts the user store to the read-only view the auth
// subsystem consumes during login and per-request principal resolution.
type Credentials struct {
	store Store
}

func NewCredentials(store Store) *Credentials {
	return &Credentials{store: store}
}

func (c *Credentials) FindByLogin(ctx context.Context, login string) (*auth.Credential, error) {
	u, err := c.store.FindByLogin(ctx, login)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toCredential(u), nil
}

func (c *Credentials) FindByID(ctx context.Context, id string) (*auth.Credential, error) {
	u, err := c.store.Find(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toCredential(u), nil
}

func mapNotFound(err error) error {
	if errors.Is(err, ErrNotFound) {
		return auth.ErrNotFound
	}
	return err
}

func toCredential(u *User) *auth.Credential {
	return &auth.Credential{
		ID:                 u.ID,
		Login:              u.Login,
		PasswordHash:       u.PasswordHash,
		Role:               u.Role,
		CanEditProducts:    u.CanEditProducts,
		CanManageLogistics: u.CanManageLogistics,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}
