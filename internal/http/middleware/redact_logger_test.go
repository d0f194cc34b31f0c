package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedactingLogger_MasksCredentialsAndPII(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogger(t)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Header(requestIDHeader, "rid-resp"); c.Next() })
	r.Use(RedactingLogger(RedactOptions{MaskHeaders: []string{"X-Api-Key"}, MaskQueryParams: []string{"sig"}}))
	r.GET("/places/:id", func(c *gin.Context) {
		c.Set(userIDKey, "u-1")
		c.Status(http.StatusOK)
	})

	q := "key=AIzaSECRET&sig=abc&contact=a@b.com&ref=123e4567-e89b-12d3-a456-426614174000&tel=555-123-4567"
	req := httptest.NewRequest(http.MethodGet, "/places/p1?"+q, nil)
	req.Header.Set("Authorization", "Bearer secret")
	req.Header.Set("X-Goog-Api-Key", "AIzaSECRET")
	req.Header.Set("X-Api-Key", "shhh")
	req.Header.Set("X-Custom", "mail a@b.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	logs := buf.String()
	assert.NotContains(t, logs, "AIzaSECRET")
	assert.NotContains(t, logs, "shhh")
	assert.NotContains(t, logs, "a@b.com")
	assert.Contains(t, logs, `"level":"info"`)
	assert.Contains(t, logs, `"path":"/places/:id"`)
	assert.Contains(t, logs, `"request_id":"rid-resp"`)
	assert.Contains(t, logs, `"user_id":"u-1"`)
	assert.Contains(t, logs, "key=[REDACTED]")
	assert.Contains(t, logs, "sig=[REDACTED]")
	assert.Contains(t, logs, "[REDACTED:id]")
	assert.Contains(t, logs, "[REDACTED:phone]")
	assert.Contains(t, logs, `"Authorization":"[REDACTED]"`)
	assert.Contains(t, logs, `"X-Custom":"mail [REDACTED:email]"`)
}

func TestRedactingLogger_LevelsAndRequestIDFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogger(t)

	r := gin.New()
	r.Use(RedactingLogger(RedactOptions{}))
	r.GET("/warn", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/error", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	serve(r, http.MethodGet, "/warn", map[string]string{requestIDHeader: "rid-warn"})
	serve(r, http.MethodGet, "/error", map[string]string{requestIDHeader: "rid-err"})

	logs := buf.String()
	assert.Contains(t, logs, `"level":"warn"`)
	assert.Contains(t, logs, `"request_id":"rid-warn"`)
	assert.Contains(t, logs, `"level":"error"`)
	assert.Contains(t, logs, `"request_id":"rid-err"`)
}

func TestRedactingLogger_StoresRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogger(t)

	r := gin.New()
	r.Use(RedactingLogger(RedactOptions{}))
	r.GET("/x", func(c *gin.Context) {
		zerolog.Ctx(c.Request.Context()).Info().Msg("inner")
		c.Status(http.StatusOK)
	})
	serve(r, http.MethodGet, "/x", map[string]string{requestIDHeader: "rid-x"})

	var inner string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, `"message":"inner"`) {
			inner = line
		}
	}
	assert.Contains(t, inner, `"request_id":"rid-x"`)
}

func TestRedactQuery_Unparsable(t *testing.T) {
	got := redactQuery("a=%zz&mail=x@y.io", lowerSet(nil, nil))
	assert.Equal(t, "a=%zz&mail=[REDACTED:email]", got)
}
