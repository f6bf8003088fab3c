// Package jwt issues and verifies the HS256 identity tokens handed to clients.
package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is how long an issued token stays valid.
const DefaultTTL = 30 * 24 * time.Hour

// SigningMethod is the only algorithm the Issuer signs with or accepts.
var SigningMethod = jwtv5.SigningMethodHS256

// Config is captured at construction and never changes afterwards.
type Config struct {
	Secret []byte
	// Issuer is stamped as "iss" and required on verification when non-empty.
	Issuer string
	TTL    time.Duration
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// Issuer signs and verifies tokens with one process-wide secret.
type Issuer struct {
	secret []byte
	iss    string
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer copies cfg into an immutable Issuer.
func NewIssuer(cfg Config) (*Issuer, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("jwt: empty signing secret")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)
	return &Issuer{
		secret: secret,
		iss:    strings.TrimSpace(cfg.Issuer),
		ttl:    ttl,
		now:    now,
	}, nil
}

// TTL reports the lifetime given to new tokens.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue signs {user_id, email, name, iat, exp} with exp = now + TTL.
func (i *Issuer) Issue(userID, email, name string) (string, time.Time, error) {
	if strings.TrimSpace(userID) == "" {
		return "", time.Time{}, errors.New("jwt: empty user id")
	}
	now := i.now().UTC()
	exp := now.Add(i.ttl)

	claims := Claims{
		UserID: userID,
		Email:  email,
		Name:   name,
		RegisteredClaims: jwtv5.RegisteredClaims{
			Subject:   userID,
			Issuer:    i.iss,
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(exp),
		},
	}
	tk := jwtv5.NewWithClaims(SigningMethod, claims)
	signed, err := tk.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwt: sign: %w", err)
	}
	return signed, exp, nil
}
