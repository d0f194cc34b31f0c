package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier map[string]string

func (s stubVerifier) VerifyToken(_ context.Context, token string) (string, error) {
	if uid, ok := s[token]; ok {
		return uid, nil
	}
	return "", errors.New("invalid token")
}

func authRouter(v TokenVerifier, required bool) (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	seen := new(string)
	r := gin.New()
	r.Use(RequestID(), Auth(v, required))
	r.GET("/me", func(c *gin.Context) {
		*seen = userIDFromCtx(c)
		c.Status(http.StatusOK)
	})
	return r, seen
}

func TestAuth_ValidBearer(t *testing.T) {
	r, seen := authRouter(stubVerifier{"tok": "user-1"}, true)
	w := serve(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer tok"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", *seen)
}

func TestAuth_InvalidBearerIsRejectedEvenWhenOptional(t *testing.T) {
	r, _ := authRouter(stubVerifier{}, false)
	w := serve(r, http.MethodGet, "/me", map[string]string{"Authorization": "bearer nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"unauthorized"`)
	assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))
}

func TestAuth_RequiredWithoutToken(t *testing.T) {
	r, _ := authRouter(stubVerifier{}, true)
	w := serve(r, http.MethodGet, "/me", map[string]string{userIDHeader: "spoofed"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_OptionalFallsBackToHeaderThenDefault(t *testing.T) {
	r, seen := authRouter(nil, false)

	w := serve(r, http.MethodGet, "/me", map[string]string{userIDHeader: " u-7 "})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-7", *seen)

	w = serve(r, http.MethodGet, "/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, DefaultUserID, *seen)
}

func TestAuth_VerifierIgnoresUserHeaderWithoutToken(t *testing.T) {
	r, seen := authRouter(stubVerifier{"tok": "user-1"}, false)

	w := serve(r, http.MethodGet, "/me", map[string]string{userIDHeader: "user-1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, "user-1", *seen)
	assert.True(t, strings.HasPrefix(*seen, anonymousPrefix), "got %q", *seen)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("  BEARER   abc "))
	assert.Empty(t, bearerToken("Basic abc"))
	assert.Empty(t, bearerToken("Bearer "))
	assert.Empty(t, bearerToken(""))
}
