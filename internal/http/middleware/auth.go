package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// userIDKey is the Gin context key holding the caller identity.
	userIDKey = "userID"
	// userIDHeader names the user in development setups without a verifier.
	userIDHeader = "X-User-ID"
	// anonymousPrefix keys tokenless callers by address once a verifier is set.
	anonymousPrefix = "anon:"
	// DefaultUserID is used when no identity is available and auth is optional.
	DefaultUserID = "demo-user"
)

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

// Auth sets the caller identity under "userID".
//
// A bearer token is verified when a verifier is configured; a rejected token
// always yields 401. Without a token, required auth yields 401. With a
// verifier but no token the caller becomes "anon:<client ip>" and X-User-ID
// is ignored. Only without a verifier is the header trusted, falling back to
// DefaultUserID. Quotas are keyed on this identity.
func Auth(v TokenVerifier, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))

		switch {
		case token != "" && v != nil:
			uid, err := v.VerifyToken(c.Request.Context(), token)
			if err != nil || strings.TrimSpace(uid) == "" {
				LoggerFrom(c).Debug().Err(err).Msg("bearer token rejected")
				unauthorized(c)
				return
			}
			setUser(c, uid)
		case required:
			unauthorized(c)
			return
		case v != nil:
			setUser(c, anonymousPrefix+c.ClientIP())
		default:
			if uid := strings.TrimSpace(c.GetHeader(userIDHeader)); uid != "" {
				setUser(c, uid)
			}
		}
		c.Next()
	}
}

func setUser(c *gin.Context, uid string) {
	c.Set(userIDKey, uid)
	setRequestLogger(c, LoggerFrom(c).With().Str("user_id", uid).Logger())
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", `Bearer realm="places"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": c.Writer.Header().Get(requestIDHeader),
		"code":       "unauthorized",
		"message":    "missing or invalid bearer token",
	})
}

func bearerToken(h string) string {
	const prefix = "bearer "
	h = strings.TrimSpace(h)
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}
