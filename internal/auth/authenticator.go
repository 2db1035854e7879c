package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Authenticator verifies submitted credentials and mints bearer tokens.
// It reads from the credential store and never writes; failed attempts are
// not logged or rate limited here.
type Authenticator struct {
	store CredentialStore
	codec *TokenCodec
}

// NewAuthenticator wires the credential store and the token codec.
func NewAuthenticator(store CredentialStore, codec *TokenCodec) (*Authenticator, error) {
	if store == nil {
		return nil, errors.New("auth: credential store is required")
	}
	if codec == nil {
		return nil, errors.New("auth: token codec is required")
	}
	return &Authenticator{store: store, codec: codec}, nil
}

// Login performs credential verification and returns a signed token with
// its expiry. Unknown login and wrong password both yield
// ErrInvalidCredentials so the caller cannot tell which one failed. Store
// failures other than a missing record propagate unchanged.
func (a *Authenticator) Login(ctx context.Context, login, password string) (string, time.Time, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return "", time.Time{}, ErrInvalidCredentials
	}

	cred, err := a.store.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", time.Time{}, ErrInvalidCredentials
		}
		return "", time.Time{}, fmt.Errorf("lookup login: %w", err)
	}

	if err := VerifyPassword(cred.PasswordHash, password); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return "", time.Time{}, ErrInvalidCredentials
		}
		return "", time.Time{}, fmt.Errorf("verify password: %w", err)
	}

	return a.codec.Issue(cred)
}
