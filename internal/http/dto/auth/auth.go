// Package auth holds the request and response bodies of the account endpoints.
package auth

import "time"

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserView is the public part of a user. It never carries the password hash.
type UserView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResult is what Register and Login hand back to the controller.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      UserView
}

// AuthResponse is the body of a successful /register or /login.
type AuthResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    UserView `json:"user"`
}

type VerifyTokenResponse struct {
	Valid bool     `json:"valid"`
	User  UserView `json:"user"`
}

// VerifyTokenError is the 401 body of /verify-token.
type VerifyTokenError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Valid   bool   `json:"valid"`
}

type MeResponse struct {
	User UserView `json:"user"`
}
