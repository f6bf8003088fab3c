package jwt

import (
	"errors"
	"fmt"
	"strings"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Verify checks signature, algorithm and expiry of raw and returns its claims.
//
// Errors are ErrTokenMissing for an empty string, ErrTokenExpired once the
// current time reaches exp, and ErrTokenInvalid for everything else
// (bad signature, malformed token, an algorithm other than HS256, missing claims).
func (i *Issuer) Verify(raw string) (*Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrTokenMissing
	}

	opts := []jwtv5.ParserOption{
		jwtv5.WithValidMethods([]string{SigningMethod.Alg()}),
		jwtv5.WithExpirationRequired(),
		jwtv5.WithTimeFunc(i.now),
	}
	if i.iss != "" {
		opts = append(opts, jwtv5.WithIssuer(i.iss))
	}

	var claims Claims
	tok, err := jwtv5.ParseWithClaims(raw, &claims, i.keyfunc, opts...)
	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !tok.Valid {
		return nil, ErrTokenInvalid
	}
	return &claims, nil
}

func (i *Issuer) keyfunc(t *jwtv5.Token) (any, error) {
	// only ever hand the secret to HMAC
	if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
	}
	return i.secret, nil
}
