package screening

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates a request payload failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrStorageUnavailable indicates no object store is configured.
	ErrStorageUnavailable = errors.New("storage is not configured")
	// ErrUpstream indicates a collaborator (object store, database) failed.
	ErrUpstream = errors.New("upstream failure")
)

// ValidationError lists the fields that were missing or malformed.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "missing fields"
	}
	return "missing fields: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
