// Package common defines shared constants and sentinel errors used across
// the storefront client layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Auth errors raised by the session store and handled by the UI.
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrNotAuthenticated       = errors.New("not authenticated")

	// Order client errors.
	ErrOrderNotFound = errors.New("order does not exist")
)
