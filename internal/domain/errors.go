package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidQuery signals malformed search input (bad year, unknown bucket, unknown sort field).
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidMovie signals a catalog record that fails validation.
	ErrInvalidMovie = errors.New("invalid movie")
	// ErrIndexUnavailable signals that the search index is disabled or unreachable.
	ErrIndexUnavailable = errors.New("search index unavailable")
	// ErrUnauthorized signals a missing or invalid credential.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden signals a valid credential without the required role.
	ErrForbidden = errors.New("forbidden")
	// ErrBusy signals that the same long-running operation is already in flight.
	ErrBusy = errors.New("operation already in progress")
)

// InvalidParamError wraps ErrInvalidQuery with the offending parameter name.
type InvalidParamError struct {
	Param  string
	Reason string
}

func (e *InvalidParamError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidQuery.Error(), e.Param, e.Reason)
}

func (e *InvalidParamError) Unwrap() error { return ErrInvalidQuery }

// NewInvalidParam creates an invalid parameter error.
func NewInvalidParam(param, reason string) error {
	return &InvalidParamError{Param: param, Reason: reason}
}
