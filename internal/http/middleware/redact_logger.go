// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements RedactingLogger, a drop-in replacement for Logger that
// scrubs request metadata before it is written. Bodies are never logged.
//
//   - Credentials in headers (Authorization, Cookie, Set-Cookie, X-Goog-Api-Key
//     and any configured extras) are replaced wholesale.
//   - Credential query parameters (key, token, access_token, api_key and
//     configured extras) have their values replaced.
//   - E-mail addresses, phone numbers and UUIDs are pattern-redacted in the
//     remaining query string and header values.
//
// Like Logger, it stores a request-scoped logger in the Gin context and in the
// request context.
package middleware

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RedactOptions adds header names and query parameters to the built-in mask
// sets. Matching is case-insensitive.
type RedactOptions struct {
	MaskHeaders     []string
	MaskQueryParams []string
}

var (
	// UUIDs go first so the phone pattern cannot eat their digit groups.
	uuidRE  = regexp.MustCompile(`(?i)\b[0-9a-f]{8}\-[0-9a-f]{4}\-[1-5][0-9a-f]{3}\-[89ab][0-9a-f]{3}\-[0-9a-f]{12}\b`)
	emailRE = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	phoneRE = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)
)

func redactPII(s string) string {
	if s == "" {
		return s
	}
	s = uuidRE.ReplaceAllString(s, "[REDACTED:id]")
	s = emailRE.ReplaceAllString(s, "[REDACTED:email]")
	return phoneRE.ReplaceAllString(s, "[REDACTED:phone]")
}

func lowerSet(base []string, extra []string) map[string]struct{} {
	out := make(map[string]struct{}, len(base)+len(extra))
	for _, s := range append(append([]string{}, base...), extra...) {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out[s] = struct{}{}
		}
	}
	return out
}

// redactQuery masks credential parameters and pattern-redacts the rest.
// An unparsable query is pattern-redacted as a whole.
func redactQuery(raw string, mask map[string]struct{}) string {
	if raw == "" {
		return ""
	}
	vals, err := url.ParseQuery(raw)
	if err != nil {
		return redactPII(raw)
	}
	for k, vv := range vals {
		if _, ok := mask[strings.ToLower(k)]; ok {
			vals[k] = []string{"[REDACTED]"}
			continue
		}
		for i := range vv {
			vv[i] = redactPII(vv[i])
		}
	}
	out, _ := url.QueryUnescape(vals.Encode())
	return out
}

// RedactingLogger logs each request with sensitive values scrubbed. The level
// is info, warn for 4xx and error for 5xx.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	maskHeaders := lowerSet([]string{"authorization", "cookie", "set-cookie", "x-goog-api-key"}, opts.MaskHeaders)
	maskParams := lowerSet([]string{"key", "token", "access_token", "api_key"}, opts.MaskQueryParams)

	return func(c *gin.Context) {
		start := time.Now()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		safeQuery := truncate(redactQuery(c.Request.URL.RawQuery, maskParams), maxQueryLogLength)

		safeHeaders := make(map[string]string, len(c.Request.Header))
		for k, vv := range c.Request.Header {
			if _, ok := maskHeaders[strings.ToLower(k)]; ok {
				safeHeaders[k] = "[REDACTED]"
				continue
			}
			safeHeaders[k] = redactPII(strings.Join(vv, ", "))
		}

		reqID := c.Writer.Header().Get(requestIDHeader)
		if reqID == "" {
			reqID = c.GetHeader(requestIDHeader)
		}
		l := log.With().
			Str("request_id", reqID).
			Str("method", c.Request.Method).
			Str("path", path).
			Logger()
		setRequestLogger(c, l)

		c.Next()

		status := c.Writer.Status()
		ev := l.Info()
		switch {
		case status >= 500:
			ev = l.Error()
		case status >= 400:
			ev = l.Warn()
		}
		uid, _ := c.Get(userIDKey)
		ev.
			Str("user_id", asString(uid)).
			Str("query", safeQuery).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Interface("headers", safeHeaders).
			Msg("http_request")
	}
}
