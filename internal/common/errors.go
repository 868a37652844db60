// Package common defines shared constants and sentinel errors used across
// the layers of classnotes. Callers should use errors.Is to match these
// values; the transport layer maps them to status codes.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// Service-level errors (authorization and flow control).
	ErrorInternal        = errors.New("internal error")
	ErrorForbidden       = errors.New("forbidden")
	ErrorUnauthenticated = errors.New("unauthenticated")

	// Input shape errors.
	ErrorValidation = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
