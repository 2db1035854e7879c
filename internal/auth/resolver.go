package auth

import (
	"context"
	"errors"
	"fmt"
)

// Resolver turns a presented bearer token into a Principal. Verification is
// a strict two-step: decode the token, then re-read the credential record it
// points at. Authorization state is always re-derived from that live record;
// the flags baked into the token only tell us which claims to re-check.
type Resolver struct {
	store CredentialStore
	codec *TokenCodec
}

// NewResolver wires the credential store and the token codec.
func NewResolver(store CredentialStore, codec *TokenCodec) (*Resolver, error) {
	if store == nil {
		return nil, errors.New("auth: credential store is required")
	}
	if codec == nil {
		return nil, errors.New("auth: token codec is required")
	}
	return &Resolver{store: store, codec: codec}, nil
}

// Resolve validates the raw token and returns a Principal built from the
// live credential record. The stages run in order and the first failure
// terminates: token verification, record re-read, claimed-capability
// re-check. Store outages are not folded into ErrUnauthenticated.
func (r *Resolver) Resolve(ctx context.Context, rawToken string) (Principal, error) {
	claims, err := r.codec.Verify(rawToken)
	if err != nil {
		return Principal{}, err
	}

	cred, err := r.store.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Principal{}, fmt.Errorf("%w: subject no longer exists", ErrUnauthenticated)
		}
		return Principal{}, fmt.Errorf("resolve subject: %w", err)
	}

	// A capability asserted at issuance must still hold now. A token whose
	// claimed rights were revoked after issuance is dead, even though its
	// signature is still valid.
	if claims.CanEditProducts && !cred.CanEditProducts {
		return Principal{}, fmt.Errorf("%w: claimed capability revoked", ErrUnauthenticated)
	}
	if claims.CanManageLogistics && !cred.CanManageLogistics {
		return Principal{}, fmt.Errorf("%w: claimed capability revoked", ErrUnauthenticated)
	}

	return NewPrincipal(cred), nil
}
