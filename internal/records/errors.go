package records

import "errors"

var (
	// ErrNotFound is returned when no record matches the given id.
	ErrNotFound = errors.New("file record not found")
	// ErrInvalidInput is returned for malformed upload requests.
	ErrInvalidInput = errors.New("invalid input")
)
