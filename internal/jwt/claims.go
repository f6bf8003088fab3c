package jwt

import (
	"errors"
	"strings"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenMissing = errors.New("jwt: token missing")
	ErrTokenExpired = errors.New("jwt: token expired")
	ErrTokenInvalid = errors.New("jwt: token invalid")
)

// Claims is the identity carried by every token.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwtv5.RegisteredClaims
}

// Validate runs after the registered-claim checks of the parser.
func (c Claims) Validate() error {
	if strings.TrimSpace(c.UserID) == "" {
		return errors.New("user_id claim missing")
	}
	return nil
}
