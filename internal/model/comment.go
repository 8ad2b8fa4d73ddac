package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Comment represents a comment on a post. Replies form a tree of variable
// depth; the backend returns the tree already assembled, each comment
// carrying its ordered replies.
type Comment struct {
	ID              int64      `json:"id"`
	Content         string     `json:"content"`
	Author          *User      `json:"author,omitempty"`
	PostID          int64      `json:"postId,omitempty"`
	ParentCommentID *int64     `json:"parentCommentId,omitempty"`
	Replies         []*Comment `json:"replies,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// Constraints
const (
	MaxCommentContentLength = 2000
)

// CreateCommentRequest represents a request to create a comment.
// ParentCommentID, when set, attaches the comment as a reply.
type CreateCommentRequest struct {
	Content         string `json:"content"`
	PostID          int64  `json:"postId"`
	ParentCommentID *int64 `json:"parentCommentId,omitempty"`
}

// Validate checks the comment fields before submission.
func (r *CreateCommentRequest) Validate() []FieldError {
	var errs []FieldError
	content := strings.TrimSpace(r.Content)
	switch {
	case content == "":
		errs = append(errs, FieldError{Field: "content", Message: "comment cannot be empty"})
	case utf8.RuneCountInString(content) > MaxCommentContentLength:
		errs = append(errs, FieldError{Field: "content", Message: "comment must be at most 2000 characters"})
	}
	if r.PostID <= 0 {
		errs = append(errs, FieldError{Field: "postId", Message: "post id is required"})
	}
	return errs
}

// UpdateCommentRequest represents a comment edit.
type UpdateCommentRequest struct {
	Content string `json:"content"`
}

// Validate checks the updated content.
func (r *UpdateCommentRequest) Validate() []FieldError {
	var errs []FieldError
	content := strings.TrimSpace(r.Content)
	switch {
	case content == "":
		errs = append(errs, FieldError{Field: "content", Message: "comment cannot be empty"})
	case utf8.RuneCountInString(content) > MaxCommentContentLength:
		errs = append(errs, FieldError{Field: "content", Message: "comment must be at most 2000 characters"})
	}
	return errs
}
