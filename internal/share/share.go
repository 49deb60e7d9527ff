// Package share encodes a bowl design into a signed token so a link can
// reproduce it without any server-side state.
package share

import (
	"errors"
	"fmt"
	"time"

	"Resonator/internal/calc/bowl"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrNoKey        = errors.New("share key not configured")
	ErrInvalidToken = errors.New("invalid share token")
)

type Claims struct {
	Design bowl.Input `json:"design"`
	jwt.RegisteredClaims
}

type Signer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewSigner returns a signer for HS256 tokens. A zero ttl means tokens
// never expire.
func NewSigner(key []byte, ttl time.Duration) *Signer {
	return &Signer{key: key, ttl: ttl, now: time.Now}
}

// Sign validates in against the calculator before issuing a token for it.
func (s *Signer) Sign(in bowl.Input) (string, error) {
	if len(s.key) == 0 {
		return "", ErrNoKey
	}
	if _, err := bowl.Calculate(in); err != nil {
		return "", err
	}
	now := s.now()
	claims := Claims{
		Design: in,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

func (s *Signer) Verify(token string) (bowl.Input, error) {
	if len(s.key) == 0 {
		return bowl.Input{}, ErrNoKey
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return bowl.Input{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims.Design, nil
}
