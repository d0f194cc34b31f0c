// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// Codes are lowercase snake_case and stable. Generic codes mirror the HTTP
// status; resolution codes mirror the pipeline's failure categories so
// clients can branch on them without parsing messages.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "place_not_found",
//	  "message": "No place matched this search. Add the city or the full street address and try again."
//	}
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Resolution outcomes.
	ErrCodeInvalidInput  = "invalid_input"
	ErrCodePlaceNotFound = "place_not_found"
	ErrCodeProvider      = "provider_error"
	ErrCodeQuotaExceeded = "rate_limited"
	ErrCodeUnconfigured  = "unconfigured"

	// Imports.
	ErrCodeUnknownField    = "unknown_field"
	ErrCodeAlreadyImported = "already_imported"
	ErrCodeImportFailed    = "import_failed"
	ErrCodeListFailed      = "list_failed"
)
