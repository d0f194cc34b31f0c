// Package handlers provides HTTP handler implementations for the public API.
//
// This file holds the response helpers shared by all endpoints: the error
// envelope, the translation of service and resolution errors into statuses,
// and the success writers.
//
// Error mapping:
//
//	INVALID_INPUT    400 invalid_input
//	PLACE_NOT_FOUND  404 place_not_found
//	PROVIDER_ERROR   502 provider_error
//	RATE_LIMITED     429 rate_limited (Retry-After set)
//	UNCONFIGURED     503 unconfigured
//
// Resolution failures also carry the upper-case code as detail_code.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-places-backend/internal/http/middleware"
	"github.com/tbourn/go-places-backend/internal/resolver"
	"github.com/tbourn/go-places-backend/internal/services"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"place_not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"No place matched this search."`
	// Resolution error code, set only for resolution failures
	DetailCode string `json:"detail_code,omitempty" example:"PLACE_NOT_FOUND"`
}

// fail aborts with the error envelope. 5xx responses are logged with the
// request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	failDetail(c, status, code, "", msg)
}

func failDetail(c *gin.Context, status int, code, detail, msg string) {
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("detail_code", detail).
			Str("message", msg).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID:  c.Writer.Header().Get("X-Request-ID"),
		Code:       code,
		Message:    msg,
		DetailCode: detail,
	})
}

// Fail is the exported variant of fail() for router-level handlers.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// resolutionStatus maps a pipeline code onto an HTTP status and API code.
var resolutionStatus = map[resolver.Code]struct {
	status int
	code   string
}{
	resolver.CodeInvalidInput:  {http.StatusBadRequest, ErrCodeInvalidInput},
	resolver.CodePlaceNotFound: {http.StatusNotFound, ErrCodePlaceNotFound},
	resolver.CodeProviderError: {http.StatusBadGateway, ErrCodeProvider},
	resolver.CodeRateLimited:   {http.StatusTooManyRequests, ErrCodeQuotaExceeded},
	resolver.CodeUnconfigured:  {http.StatusServiceUnavailable, ErrCodeUnconfigured},
}

// failErr translates err into the error envelope. Resolution errors keep
// their user-facing message; provider detail is logged, never returned.
func failErr(c *gin.Context, err error, fallbackCode string) {
	var rerr *resolver.Error
	switch {
	case errors.As(err, &rerr):
		m, ok := resolutionStatus[rerr.Code]
		if !ok {
			break
		}
		if rerr.Code == resolver.CodeRateLimited {
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
		}
		if rerr.Code == resolver.CodeProviderError && rerr.Err != nil {
			middleware.LoggerFrom(c).Warn().Err(rerr.Err).Msg("provider failure")
		}
		failDetail(c, m.status, m.code, string(rerr.Code), rerr.Message)
		return
	case errors.Is(err, services.ErrUnknownField):
		fail(c, http.StatusBadRequest, ErrCodeUnknownField, err.Error())
		return
	case errors.Is(err, services.ErrPlaceNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "place not found")
		return
	}
	fail(c, http.StatusInternalServerError, fallbackCode, err.Error())
}

// retryAfterSeconds is advertised on quota rejections. It is the upper bound
// for a fixed one-minute window.
const retryAfterSeconds = 60

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes an HTTP 204 No Content response.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
