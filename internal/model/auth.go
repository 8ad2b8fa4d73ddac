package model

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Constraints
const (
	MinUsernameLength    = 3
	MaxUsernameLength    = 30
	MinPasswordLength    = 6
	MaxDisplayNameLength = 50
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// LoginRequest represents credentials submitted to POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks that both credential fields are present.
func (r *LoginRequest) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(r.Username) == "" {
		errs = append(errs, FieldError{Field: "username", Message: "username is required"})
	}
	if r.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password is required"})
	}
	return errs
}

// RegisterRequest represents a new account submitted to POST /auth/register.
type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName,omitempty"`
}

// Validate checks the registration fields against the form rules.
func (r *RegisterRequest) Validate() []FieldError {
	var errs []FieldError
	username := strings.TrimSpace(r.Username)
	switch {
	case username == "":
		errs = append(errs, FieldError{Field: "username", Message: "username is required"})
	case utf8.RuneCountInString(username) < MinUsernameLength:
		errs = append(errs, FieldError{Field: "username", Message: "username must be at least 3 characters"})
	case utf8.RuneCountInString(username) > MaxUsernameLength:
		errs = append(errs, FieldError{Field: "username", Message: "username must be at most 30 characters"})
	}
	switch {
	case r.Email == "":
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	case !emailPattern.MatchString(r.Email):
		errs = append(errs, FieldError{Field: "email", Message: "email address is invalid"})
	}
	if len(r.Password) < MinPasswordLength {
		errs = append(errs, FieldError{Field: "password", Message: "password must be at least 6 characters"})
	}
	if utf8.RuneCountInString(r.DisplayName) > MaxDisplayNameLength {
		errs = append(errs, FieldError{Field: "displayName", Message: "display name is too long"})
	}
	return errs
}

// AuthResponse is the payload returned by login and register. The backend
// has shipped the token under both "accessToken" and "token" at different
// times; both are accepted and Token() yields the canonical value.
type AuthResponse struct {
	AccessToken string `json:"accessToken,omitempty"`
	TokenField  string `json:"token,omitempty"`

	ID          int64  `json:"id,omitempty"`
	Username    string `json:"username,omitempty"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Role        string `json:"role,omitempty"`
}

// Token returns the bearer token regardless of which field carried it.
func (a *AuthResponse) Token() string {
	if a.AccessToken != "" {
		return a.AccessToken
	}
	return a.TokenField
}

// User builds a User from the flat auth response fields.
func (a *AuthResponse) User() *User {
	return &User{
		ID:          a.ID,
		Username:    a.Username,
		Email:       a.Email,
		DisplayName: a.DisplayName,
		Role:        a.Role,
	}
}
