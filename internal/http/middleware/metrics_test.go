package middleware

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountsByRouteAndCollapsesUnmatched(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())
	r.GET("/places/:id", func(c *gin.Context) { c.String(http.StatusOK, "hello") })
	r.DELETE("/places/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	baseGet := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/places/:id", "200"))
	baseDel := testutil.ToFloat64(httpReqs.WithLabelValues("DELETE", "/places/:id", "204"))
	base404 := testutil.ToFloat64(httpReqs.WithLabelValues("GET", unmatchedPath, "404"))

	serve(r, http.MethodGet, "/places/a", nil)
	serve(r, http.MethodGet, "/places/b", nil)
	serve(r, http.MethodDelete, "/places/a", nil)
	serve(r, http.MethodGet, "/wp-login.php", nil)
	serve(r, http.MethodGet, "/.env", nil)

	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/places/:id", "200")); got != baseGet+2 {
		t.Fatalf("GET counter = %v; want %v", got, baseGet+2)
	}
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("DELETE", "/places/:id", "204")); got != baseDel+1 {
		t.Fatalf("DELETE counter = %v; want %v", got, baseDel+1)
	}
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", unmatchedPath, "404")); got != base404+2 {
		t.Fatalf("unmatched counter = %v; want %v", got, base404+2)
	}
	if inFlight := testutil.ToFloat64(httpInflight); inFlight != 0 {
		t.Fatalf("httpInflight = %v; want 0", inFlight)
	}
}
