// Package token issues and verifies the signed bearer tokens that carry an
// authenticated account id. Tokens are stateless: nothing is persisted, a
// token is trusted on signature and expiry alone. Staleness against a later
// password change is the caller's check.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/WildTrails/WT-Backend/internal/apperror"
)

type Claims struct {
	jwt.RegisteredClaims
}

type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given account id with IssuedAt set to now.
func (s *Service) Issue(subject string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses and validates a signed token. Any failure (bad signature,
// wrong algorithm, expiry) comes back as an AuthenticationError so callers
// don't leak parser detail to clients.
func (s *Service) Verify(raw string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, apperror.Authentication("Invalid token. Please log in again.")
	}
	if !parsed.Valid {
		return nil, apperror.Authentication("Invalid token. Please log in again.")
	}

	return claims, nil
}
