// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file validates the Idempotency-Key header on imports. A valid key is
// stashed on the context; when a lookup reports that the same (user, scope,
// key) already completed, the request is marked as a replay so the edge
// rate limiter lets it through and the handler can answer from storage.
//
// The middleware never serves a stored payload itself.
package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey is the request header carrying the client key.
const HeaderIdempotencyKey = "Idempotency-Key"

const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemScope  = "idem.scope"
	ctxKeyIdemReplay = "idem.replay"
	ctxKeyRateBypass = "rate.bypass"
)

var defaultIdemPattern = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)

// GetIdempotencyKey returns the validated key stashed by IdempotencyValidator.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IsReplay reports whether a completed request with the same key was found.
func IsReplay(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyIdemReplay)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// IdempotencyOptions configures IdempotencyValidator.
type IdempotencyOptions struct {
	// MaxLen caps the accepted key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters. Defaults to ^[A-Za-z0-9._~\-:]+$.
	Pattern *regexp.Regexp
	// ScopeFor names the operation a request belongs to. An empty result
	// skips the lookup. Nil skips it for every request.
	ScopeFor func(*gin.Context) string
}

// IdempotencyLookup reports whether (userID, scope, key) completed and is
// still replayable at now. Errors are treated as a miss.
type IdempotencyLookup func(ctx context.Context, userID, scope, key string, now time.Time) (exists bool, err error)

// IdempotencyValidator validates the Idempotency-Key header when present and
// marks replays. An invalid key is answered with 400 bad_idempotency_key.
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = defaultIdemPattern
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"request_id": c.Writer.Header().Get(requestIDHeader),
				"code":       "bad_idempotency_key",
				"message":    "invalid Idempotency-Key",
			})
			return
		}
		c.Set(ctxKeyIdemKey, key)

		if lookup != nil && opts.ScopeFor != nil {
			if scope := opts.ScopeFor(c); scope != "" {
				c.Set(ctxKeyIdemScope, scope)
				exists, err := lookup(c.Request.Context(), userIDFromCtx(c), scope, key, time.Now().UTC())
				if err != nil {
					LoggerFrom(c).Debug().Err(err).Str("scope", scope).Msg("idempotency lookup failed")
				}
				if exists {
					c.Set(ctxKeyIdemReplay, true)
					c.Set(ctxKeyRateBypass, true)
				}
			}
		}

		c.Next()
	}
}

// ScopeForRoute returns a ScopeFor that maps "METHOD route-pattern" pairs
// onto scopes, for example {"POST /api/v1/places/import": "place_import"}.
func ScopeForRoute(routes map[string]string) func(*gin.Context) string {
	return func(c *gin.Context) string {
		return routes[c.Request.Method+" "+c.FullPath()]
	}
}

// userIDFromCtx returns the identity set by Auth, or "demo-user".
func userIDFromCtx(c *gin.Context) string {
	if v, ok := c.Get(userIDKey); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return DefaultUserID
}
