// Package services defines the business logic for previewing, importing and
// browsing places. This file centralizes common service-level error values
// so that they can be consistently returned by service methods and checked
// by callers.
//
// Resolution failures are not listed here: they are *resolver.Error values
// carrying a stable code and a user-facing message, and are passed through
// unchanged. Translation into HTTP status codes is performed at the handler
// layer.
package services

import "errors"

// Import-related errors.
var (
	// ErrPlaceNotFound indicates that the requested import does not exist or
	// is not accessible to the current user.
	ErrPlaceNotFound = errors.New("place not found")

	// ErrAlreadyImported is returned when the user has already imported the
	// resolved place.
	ErrAlreadyImported = errors.New("place already imported")

	// ErrUnknownField is returned when an import selects a field name that is
	// not recognized.
	ErrUnknownField = errors.New("unknown field")
)
