// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides SecurityHeaders, a hardening middleware for the JSON API.
// HSTS is opt-in and only sent on HTTPS requests. Response headers that
// browser clients of the places API need to read (request id, ETag,
// Retry-After, Idempotency-Replayed) are added to Access-Control-Expose-Headers.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// DefaultExposeHeaders are exposed to browsers when ExposeHeaders is nil.
var DefaultExposeHeaders = []string{requestIDHeader, "ETag", "Retry-After", "Idempotency-Replayed"}

// SecurityOptions configures SecurityHeaders.
type SecurityOptions struct {
	EnableHSTS   bool          // only when HTTPS end-to-end
	HSTSMaxAge   time.Duration // defaults to 180 days
	NoStore      bool          // Cache-Control: no-store
	EnablePolicy bool          // Permissions-Policy and friends

	// ExposeHeaders lists response headers readable by browser scripts.
	ExposeHeaders []string
}

// SecurityHeaders sets nosniff, frame denial and no-referrer on every response,
// plus the optional headers selected in opt.
//
// Geolocation stays denied in Permissions-Policy: the API never needs the
// browser's position, callers send coordinates explicitly.
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	maxAge := int(opt.HSTSMaxAge.Seconds())
	if maxAge <= 0 {
		maxAge = int((180 * 24 * time.Hour).Seconds())
	}
	hsts := "max-age=" + strconv.Itoa(maxAge) + "; includeSubDomains; preload"
	expose := opt.ExposeHeaders
	if expose == nil {
		expose = DefaultExposeHeaders
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()

		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")

		if opt.EnablePolicy {
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()")
			h.Set("X-Permitted-Cross-Domain-Policies", "none")
		}
		if opt.NoStore {
			h.Set("Cache-Control", "no-store")
			h.Set("Pragma", "no-cache")
			h.Set("Expires", "0")
		}
		if opt.EnableHSTS && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hsts)
		}
		if len(expose) > 0 {
			h.Set("Access-Control-Expose-Headers", mergeHeaderList(h.Get("Access-Control-Expose-Headers"), expose))
		}

		c.Next()
	}
}

// mergeHeaderList appends names missing from the comma separated cur,
// comparing case-insensitively.
func mergeHeaderList(cur string, names []string) string {
	seen := map[string]struct{}{}
	var out []string
	for _, p := range strings.Split(cur, ",") {
		if p = strings.TrimSpace(p); p != "" {
			seen[strings.ToLower(p)] = struct{}{}
			out = append(out, p)
		}
	}
	for _, n := range names {
		if _, ok := seen[strings.ToLower(n)]; !ok {
			seen[strings.ToLower(n)] = struct{}{}
			out = append(out, n)
		}
	}
	return strings.Join(out, ", ")
}

// isHTTPS reports whether the request arrived over TLS directly or behind a
// proxy that set X-Forwarded-Proto: https.
func isHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
