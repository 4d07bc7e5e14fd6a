// Package paging holds the page-number pagination used by list endpoints.
package paging

import (
	"strconv"
	"strings"

	"jobboard-backend/internal/shared/apperr"
)

// DefaultSize is the fixed page size for every list endpoint.
const DefaultSize = 10

// InvalidPageMessage is returned for malformed or out-of-range page numbers.
const InvalidPageMessage = "Invalid page."

// Request is a 1-based page selection.
type Request struct {
	Number int
	Size   int
}

// First returns the first page with the default size.
func First() Request {
	return Request{Number: 1, Size: DefaultSize}
}

// Parse reads the raw `page` query value. Empty means the first page.
func Parse(raw string) (Request, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return First(), nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return Request{}, apperr.NotFound(InvalidPageMessage)
	}
	return Request{Number: n, Size: DefaultSize}, nil
}

// Limit returns the row limit for the page.
func (r Request) Limit() int {
	if r.Size <= 0 {
		return DefaultSize
	}
	return r.Size
}

// Offset returns the number of rows to skip.
func (r Request) Offset() int {
	if r.Number < 1 {
		return 0
	}
	return (r.Number - 1) * r.Limit()
}

// Result is one page of items plus the total count across all pages.
type Result[T any] struct {
	Items  []T
	Number int
	Size   int
	Total  int
}

// NewResult validates that the requested page exists for the given total.
// The first page always exists, even when empty.
func NewResult[T any](req Request, items []T, total int) (Result[T], error) {
	if req.Number > 1 && req.Offset() >= total {
		return Result[T]{}, apperr.NotFound(InvalidPageMessage)
	}
	if items == nil {
		items = []T{}
	}
	return Result[T]{Items: items, Number: req.Number, Size: req.Limit(), Total: total}, nil
}

// Window slices an already-filtered, already-ordered slice to the page.
func Window[T any](req Request, all []T) []T {
	offset := req.Offset()
	if offset >= len(all) {
		return []T{}
	}
	end := offset + req.Limit()
	if end > len(all) {
		end = len(all)
	}
	out := make([]T, end-offset)
	copy(out, all[offset:end])
	return out
}
