// Package common defines shared constants and sentinel errors used across
// the service layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// ErrorValidation marks missing or malformed required input. Detected
	// before any side effect and reported to the client as 400.
	ErrorValidation = errors.New("validation error")

	// ErrorConflict marks a uniqueness violation at the storage layer,
	// e.g. two requests creating the same folder. Handled internally by
	// a re-read; never surfaced to clients.
	ErrorConflict = errors.New("already exists")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
