package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Post represents a titled post inside a forum
type Post struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Author       *User     `json:"author,omitempty"`
	Forum        *Forum    `json:"forum,omitempty"`
	CommentCount int       `json:"commentCount,omitempty"` // Computed
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Constraints
const (
	MinPostTitleLength   = 5
	MaxPostTitleLength   = 100
	MinPostContentLength = 10
	MaxPostContentLength = 10000
	DefaultPageSize      = 10
)

// CreatePostRequest represents a request to create a post
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	ForumID int64  `json:"forumId"`
}

// Validate checks the post creation fields against the form rules.
func (r *CreatePostRequest) Validate() []FieldError {
	var errs []FieldError
	title := strings.TrimSpace(r.Title)
	switch {
	case title == "":
		errs = append(errs, FieldError{Field: "title", Message: "title is required"})
	case utf8.RuneCountInString(title) < MinPostTitleLength:
		errs = append(errs, FieldError{Field: "title", Message: "title must be at least 5 characters"})
	case utf8.RuneCountInString(title) > MaxPostTitleLength:
		errs = append(errs, FieldError{Field: "title", Message: "title must be at most 100 characters"})
	}
	content := strings.TrimSpace(r.Content)
	switch {
	case content == "":
		errs = append(errs, FieldError{Field: "content", Message: "content is required"})
	case utf8.RuneCountInString(content) < MinPostContentLength:
		errs = append(errs, FieldError{Field: "content", Message: "content must be at least 10 characters"})
	case utf8.RuneCountInString(content) > MaxPostContentLength:
		errs = append(errs, FieldError{Field: "content", Message: "content must be at most 10000 characters"})
	}
	if r.ForumID <= 0 {
		errs = append(errs, FieldError{Field: "forumId", Message: "forum id is required"})
	}
	return errs
}

// UpdatePostRequest represents a partial post update.
// Nil fields are left unchanged by the backend.
type UpdatePostRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// Validate checks any fields present in the update.
func (r *UpdatePostRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		if n := utf8.RuneCountInString(title); n < MinPostTitleLength || n > MaxPostTitleLength {
			errs = append(errs, FieldError{Field: "title", Message: "title must be between 5 and 100 characters"})
		}
	}
	if r.Content != nil {
		content := strings.TrimSpace(*r.Content)
		if n := utf8.RuneCountInString(content); n < MinPostContentLength || n > MaxPostContentLength {
			errs = append(errs, FieldError{Field: "content", Message: "content must be between 10 and 10000 characters"})
		}
	}
	return errs
}
