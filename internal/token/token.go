// Package token issues and validates stateless session tokens.
//
// A token is a signed HS256 JWT carrying exactly one user ID as the subject
// plus issue and expiry times. Validity is purely a function of signature and
// expiry against the process-wide signing key — there is no revocation list,
// and rotating the key invalidates every outstanding token at once.
package token

import (
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the fixed token lifetime used unless overridden.
const DefaultTTL = 48 * time.Hour

// Validation failures. Callers that face clients should collapse all three
// into a single unauthenticated signal.
var (
	// ErrMalformed indicates the token could not be parsed at all.
	ErrMalformed = errors.New("token malformed")

	// ErrSignatureInvalid indicates the signature does not verify against the key.
	ErrSignatureInvalid = errors.New("token signature invalid")

	// ErrExpired indicates the token's expiry has passed.
	ErrExpired = errors.New("token expired")
)

// Service signs and verifies session tokens with a shared key.
type Service struct {
	signKey []byte
	ttl     time.Duration
	now     func() time.Time // overridable in tests
}

// NewService constructs a Service. The key is fixed for the process lifetime.
func NewService(signKey []byte, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{signKey: signKey, ttl: ttl, now: time.Now}
}

// Issue creates a signed token for the given user valid for the service TTL.
func (s *Service) Issue(userID uuid.UUID) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signKey)
}

// Validate checks structure, then signature, then expiry, and returns the
// embedded user ID. There is no clock leeway: a token is rejected the moment
// its expiry passes.
func (s *Service) Validate(tokenStr string) (uuid.UUID, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrSignatureInvalid
		}
		return s.signKey, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrSignatureInvalid):
			return uuid.Nil, ErrSignatureInvalid
		case errors.Is(err, jwt.ErrTokenExpired):
			return uuid.Nil, ErrExpired
		default:
			return uuid.Nil, ErrMalformed
		}
	}
	if !parsed.Valid {
		return uuid.Nil, ErrSignatureInvalid
	}
	id, err := uuid.FromString(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrMalformed
	}
	return id, nil
}
