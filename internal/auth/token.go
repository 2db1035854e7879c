package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	defaultIssuer   = "shodart"
	defaultTokenTTL = 15 * time.Minute
)

// Token rejection reasons. Each is distinct so callers can tell them apart,
// and each wraps ErrUnauthenticated so the HTTP layer maps all three to the
// same externally observable status.
var (
	ErrTokenMalformed = fmt.Errorf("%w: token malformed", ErrUnauthenticated)
	ErrTokenSignature = fmt.Errorf("%w: token signature mismatch", ErrUnauthenticated)
	ErrTokenExpired   = fmt.Errorf("%w: token expired", ErrUnauthenticated)
)

// Claims is the payload baked into every issued token. Capability flags are
// a snapshot at issuance time; guarded requests re-check them against the
// live credential record and never trust these values alone.
type Claims struct {
	Login              string `json:"login"`
	Role               Role   `json:"role"`
	CanEditProducts    bool   `json:"can_edit_products"`
	CanManageLogistics bool   `json:"can_manage_logistics"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies bearer tokens with a process-wide HS256
// secret. Rotating the secret invalidates every previously issued token;
// there is no grace period.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// CodecOption configures TokenCodec.
type CodecOption func(*TokenCodec)

// WithTTL overrides the token lifetime.
func WithTTL(ttl time.Duration) CodecOption {
	return func(c *TokenCodec) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithIssuer overrides the issuer claim.
func WithIssuer(issuer string) CodecOption {
	return func(c *TokenCodec) {
		if issuer = strings.TrimSpace(issuer); issuer != "" {
			c.issuer = issuer
		}
	}
}

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) CodecOption {
	return func(c *TokenCodec) {
		if fn != nil {
			c.now = fn
		}
	}
}

// NewTokenCodec constructs a codec for the given signing secret.
func NewTokenCodec(secret string, opts ...CodecOption) (*TokenCodec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("auth: signing secret is required")
	}
	c := &TokenCodec{
		secret: []byte(secret),
		ttl:    defaultTokenTTL,
		issuer: defaultIssuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// TTL returns the configured token lifetime.
func (c *TokenCodec) TTL() time.Duration { return c.ttl }

// Issue mints a signed token carrying the credential's identity and the
// permission flags it held at this moment.
func (c *TokenCodec) Issue(cred *Credential) (string, time.Time, error) {
	if cred == nil || cred.ID == "" {
		return "", time.Time{}, errors.New("auth: credential is required")
	}
	now := c.now().UTC()
	expiresAt := now.Add(c.ttl)

	claims := &Claims{
		Login:              cred.Login,
		Role:               cred.Role,
		CanEditProducts:    cred.CanEditProducts,
		CanManageLogistics: cred.CanManageLogistics,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   cred.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks the signature and timestamps of a presented token and
// returns its claims. Rejections are ErrTokenMalformed, ErrTokenSignature
// or ErrTokenExpired.
func (c *TokenCodec) Verify(raw string) (*Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrTokenMalformed
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
	)
	parsed, err := parser.ParseWithClaims(raw, &Claims{}, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return nil, ErrTokenSignature
		default:
			return nil, fmt.Errorf("%w: invalid token", ErrUnauthenticated)
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenMalformed
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
