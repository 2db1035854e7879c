package auth

import (
	"context"
	"time"
)

// Credential is the stored account record the subsystem reads during login
// and again on every guarded request. It is never written from here.
type Credential struct {
	ID                 string
	Login              string
	PasswordHash       string
	Role               Role
	CanEditProducts    bool
	CanManageLogistics bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CredentialStore is the read path into account storage. Implementations
// return ErrNotFound for missing records and propagate infrastructure
// failures unchanged.
type CredentialStore interface {
	FindByLogin(ctx context.Context, login string) (*Credential, error)
	FindByID(ctx context.Context, id string) (*Credential, error)
}
