// Package model defines the data contracts exchanged with the forum backend.
//
// The model package contains all struct definitions for backend entities,
// request/response payloads, validation rules, and the client-side error
// taxonomy. Models are used across all layers of the client.
//
// # Entities
//
// Core entities mirror backend records and are read-only on the client:
//
//   - User: account identity with username, email and display name
//   - Forum: a discussion forum with name, description and creator
//   - Post: a titled post inside a forum
//   - Comment: a comment on a post, optionally nested under a parent comment
//
// # JSON Serialization
//
// All models use json struct tags matching the backend's field naming:
//
//	type Forum struct {
//	    ID          int64  `json:"id"`
//	    Name        string `json:"name"`
//	    Description string `json:"description,omitempty"`
//	}
//
// # Pagination
//
// List endpoints return a PageResponse envelope:
//
//	page, err := client.Posts(ctx, forumID, 0, 10)
//	for _, post := range page.Content {
//	    ...
//	}
//
// # Validation
//
// Request payloads validate themselves before any network call:
//
//	if fieldErrs := req.Validate(); len(fieldErrs) > 0 {
//	    // surface field-level messages, do not submit
//	}
//
// # Error Types
//
// API failures are represented by APIError with a Kind that callers can
// branch on, see errors.go:
//
//	if model.IsAuthentication(err) {
//	    // session expired, sign in again
//	}
package model
