package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies an API failure for callers
type ErrorKind string

const (
	// ===== Request never left the client =====
	KindValidation ErrorKind = "validation"
	KindNetwork    ErrorKind = "network"

	// ===== Backend responded with a failure status =====
	KindAuthentication ErrorKind = "authentication"
	KindAuthorization  ErrorKind = "authorization"
	KindNotFound       ErrorKind = "not_found"
	KindConflict       ErrorKind = "conflict"
	KindServer         ErrorKind = "server"

	// ===== Response arrived but was unusable =====
	KindMalformed ErrorKind = "malformed"
	KindUpload    ErrorKind = "upload"
)

// FieldError represents a validation error on a specific form field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError represents a failed interaction with the backend. Status is zero
// when no response was received.
type APIError struct {
	Kind   ErrorKind `json:"kind"`
	Status int       `json:"status,omitempty"`
	Detail string    `json:"detail,omitempty"`
	Err    error     `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("[%d] %s: %s", e.Status, e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Unwrap exposes the underlying transport error, if any.
func (e *APIError) Unwrap() error {
	return e.Err
}

// problemBody mirrors the RFC 9457 problem document the backend returns on
// failures; only the fields the client surfaces are decoded.
type problemBody struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	// Older backend builds used "message" instead of a problem document.
	Message string `json:"message"`
	Error   string `json:"error"`
}

// NewStatusError maps an HTTP failure status and response body to an APIError.
func NewStatusError(status int, body []byte) *APIError {
	detail := http.StatusText(status)
	var problem problemBody
	if err := json.Unmarshal(body, &problem); err == nil {
		switch {
		case problem.Detail != "":
			detail = problem.Detail
		case problem.Message != "":
			detail = problem.Message
		case problem.Error != "":
			detail = problem.Error
		case problem.Title != "":
			detail = problem.Title
		}
	}

	kind := KindServer
	switch {
	case status == http.StatusUnauthorized:
		kind = KindAuthentication
	case status == http.StatusForbidden:
		kind = KindAuthorization
	case status == http.StatusNotFound:
		kind = KindNotFound
	case status == http.StatusConflict:
		kind = KindConflict
	case status >= 400 && status < 500:
		kind = KindValidation
	}

	return &APIError{Kind: kind, Status: status, Detail: detail}
}

// Common error constructors

func NewNetworkError(err error) *APIError {
	return &APIError{Kind: KindNetwork, Detail: "could not reach the server", Err: err}
}

func NewAuthenticationError(detail string) *APIError {
	return &APIError{Kind: KindAuthentication, Status: http.StatusUnauthorized, Detail: detail}
}

func NewMalformedError(detail string) *APIError {
	return &APIError{Kind: KindMalformed, Detail: detail}
}

func NewUploadError(detail string) *APIError {
	return &APIError{Kind: KindUpload, Detail: detail}
}

// kindOf extracts the ErrorKind from an error chain, or "".
func kindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

// IsAuthentication reports whether err is a 401/missing-token failure.
func IsAuthentication(err error) bool {
	return kindOf(err) == KindAuthentication
}

// IsAuthorization reports whether err is a 403 failure.
func IsAuthorization(err error) bool {
	return kindOf(err) == KindAuthorization
}

// IsNotFound reports whether err is a 404 failure.
func IsNotFound(err error) bool {
	return kindOf(err) == KindNotFound
}

// IsNetwork reports whether err means no response was received.
func IsNetwork(err error) bool {
	return kindOf(err) == KindNetwork
}

// IsUpload reports whether err came from a malformed upload exchange.
func IsUpload(err error) bool {
	return kindOf(err) == KindUpload
}
