package auth

import "errors"

var (
	// ErrNotFound signals a missing credential record in the store.
	ErrNotFound = errors.New("auth: not found")

	// ErrInvalidCredentials covers both unknown login and wrong password.
	// The two must stay indistinguishable to callers so that the login
	// endpoint cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrUnauthenticated rejects a request that presented no usable bearer
	// token: missing, malformed, forged, expired, or pointing at a subject
	// whose live record no longer backs the token's claims.
	ErrUnauthenticated = errors.New("auth: unauthenticated")

	// ErrPermissionDenied rejects a resolved principal that lacks the role
	// or capability an endpoint requires.
	ErrPermissionDenied = errors.New("auth: permission denied")
)
