package models

import "github.com/pkg/errors"

var (
	// ErrInvalidInput marks a request rejected before any upstream call.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks a lookup that matched nothing.
	ErrNotFound = errors.New("not found")
	// ErrUpstream marks a failed or unparseable provider response.
	ErrUpstream = errors.New("upstream error")
	// ErrMalformedData marks a provider payload missing fields the reducer needs.
	ErrMalformedData = errors.New("malformed data")
)

// ErrorKind returns a stable label for the taxonomy error wrapped by err.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrUpstream):
		return "upstream"
	case errors.Is(err, ErrMalformedData):
		return "malformed_data"
	default:
		return "internal"
	}
}
