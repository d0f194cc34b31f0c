package resolver

import (
	"errors"
	"fmt"
)

// Code is a stable, machine-readable failure category.
type Code string

const (
	CodeInvalidInput  Code = "INVALID_INPUT"
	CodePlaceNotFound Code = "PLACE_NOT_FOUND"
	CodeProviderError Code = "PROVIDER_ERROR"
	CodeRateLimited   Code = "RATE_LIMITED"
	CodeUnconfigured  Code = "UNCONFIGURED"
)

// User-facing messages. Provider detail stays in Err and in the logs.
const (
	msgQueryRequired   = "Enter a place name, address or Google Maps link."
	msgQueryTooShort   = "Enter at least 2 characters."
	msgQueryTooLong    = "The query is too long. Paste a single place name, address or link."
	msgNotFoundFromURL = "Couldn't find a place for this Google Maps link. Open the place in Google Maps, tap Share, copy the link and try again."
	msgNotFoundFromTxt = "No place matched this search. Add the city or the full street address and try again."
	msgProvider        = "The places service is not responding. Try again in a moment."
	msgCancelled       = "The lookup was cancelled."
	msgRateLimited     = "Too many lookups. Wait a minute and try again."
	msgUnconfigured    = "Place lookup is not configured on this server."
)

// Error is the only error type Resolve returns.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by code, so errors.Is(err, &Error{Code: c})
// works as a category check.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Code == e.Code
	}
	return false
}

// CodeOf returns the code carried by err, or "" for foreign errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func newError(code Code, msg string, err error) *Error {
	return &Error{Code: code, Message: msg, Err: err}
}
