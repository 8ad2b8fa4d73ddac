package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Forum represents a discussion forum
type Forum struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedBy   *User     `json:"createdBy,omitempty"`
	PostCount   int       `json:"postCount,omitempty"` // Computed
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Constraints
const (
	MinForumNameLength        = 3
	MaxForumNameLength        = 50
	MaxForumDescriptionLength = 500
)

// CreateForumRequest represents a request to create a forum
type CreateForumRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Validate checks the forum creation fields against the form rules.
func (r *CreateForumRequest) Validate() []FieldError {
	var errs []FieldError
	name := strings.TrimSpace(r.Name)
	switch {
	case name == "":
		errs = append(errs, FieldError{Field: "name", Message: "forum name is required"})
	case utf8.RuneCountInString(name) < MinForumNameLength:
		errs = append(errs, FieldError{Field: "name", Message: "forum name must be at least 3 characters"})
	case utf8.RuneCountInString(name) > MaxForumNameLength:
		errs = append(errs, FieldError{Field: "name", Message: "forum name must be at most 50 characters"})
	}
	if utf8.RuneCountInString(r.Description) > MaxForumDescriptionLength {
		errs = append(errs, FieldError{Field: "description", Message: "description must be at most 500 characters"})
	}
	return errs
}
