package apiclient

import "errors"

var (
	// ErrNotRegistered is returned when a kind has no recipe.
	ErrNotRegistered = errors.New("apiclient: client kind not registered")

	// ErrScopeMismatch is returned when a kind is resolved with a scope other
	// than the one it was registered for.
	ErrScopeMismatch = errors.New("apiclient: scope does not match client kind")

	// ErrInvalidScope is returned for scopes built from nil ids.
	ErrInvalidScope = errors.New("apiclient: invalid scope")
)
