package model

// PageResponse is the pagination envelope the backend wraps every list
// endpoint in. Number is the zero-based page index.
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Size          int   `json:"size"`
	Number        int   `json:"number"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// HasNext reports whether a following page exists.
func (p *PageResponse[T]) HasNext() bool {
	return !p.Last
}

// HasPrevious reports whether a preceding page exists.
func (p *PageResponse[T]) HasPrevious() bool {
	return !p.First
}
