package model

import (
	"time"
	"unicode/utf8"
)

// User represents a forum account as returned by the backend.
// The client never mutates a User except through explicit profile updates.
type User struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName,omitempty"`
	Role        string    `json:"role,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Name returns the display name, falling back to the username.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

// UpdateProfileRequest represents a profile edit submitted to PUT /users/me.
type UpdateProfileRequest struct {
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
}

// Validate checks the profile update fields.
// Empty fields are left unchanged by the backend and are not validated.
func (r *UpdateProfileRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Email != "" && !emailPattern.MatchString(r.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "email address is invalid"})
	}
	if utf8.RuneCountInString(r.DisplayName) > MaxDisplayNameLength {
		errs = append(errs, FieldError{Field: "displayName", Message: "display name is too long"})
	}
	return errs
}
