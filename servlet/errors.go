package servlet

import (
	"errors"
	"fmt"
)

var (
	// ErrResourceNotFound matches every *ResourceNotFoundError.
	ErrResourceNotFound = errors.New("resource not found")
	// ErrInvalidRequest is wrapped when host input is not a well formed
	// request: not a JSON object, a declared field of the wrong type, or a
	// required field missing.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnknownEntryPoint is returned by Invoke for names outside
	// EntryPoints().
	ErrUnknownEntryPoint = errors.New("unknown entry point")
)

// ResourceNotFoundError reports a URI that does not resolve to any entry.
type ResourceNotFoundError struct {
	URI string
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.URI)
}

func (e *ResourceNotFoundError) Is(target error) bool {
	return target == ErrResourceNotFound
}

func missingFieldError(field string) error {
	return fmt.Errorf("%w: missing %s", ErrInvalidRequest, field)
}

func malformedInputError(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
}
