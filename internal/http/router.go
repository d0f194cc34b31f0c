// Package httpapi wires the HTTP transport (Gin) to the place service,
// middleware and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, redacted logging, panic recovery, metrics,
// compression, CORS, security headers, authentication, idempotency and edge
// rate limiting.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"path"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	_ "github.com/tbourn/go-places-backend/docs"
	"github.com/tbourn/go-places-backend/internal/config"
	"github.com/tbourn/go-places-backend/internal/http/handlers"
	"github.com/tbourn/go-places-backend/internal/http/middleware"
	"github.com/tbourn/go-places-backend/internal/repo"
	"github.com/tbourn/go-places-backend/internal/services"
)

// Resolver is the resolution pipeline as seen by the transport.
type Resolver interface {
	services.Resolver
	Configured() bool
}

// Deps are the collaborators RegisterRoutes wires into handlers.
type Deps struct {
	DB       *gorm.DB
	Resolver Resolver
	// Cities is optional; without it imports keep the city name only.
	Cities services.CityResolver
	// Verifier is optional; without it bearer tokens are not checked.
	Verifier middleware.TokenVerifier
}

// RegisterRoutes attaches middleware and endpoints to r.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID, then RedactingLogger, then Recovery
//  3. Body size limit, metrics, gzip
//  4. CORS and security headers (preflights never hit auth)
//
// The API group adds, in order: Auth, the idempotency validator and the edge
// rate limiter, so replays bypass the limiter and limits key on the user.
func RegisterRoutes(r *gin.Engine, deps Deps, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key"},
	}))
	r.Use(middleware.Recovery())
	r.Use(limitBody(64 << 10))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	r.Use(corsMiddleware(cfg.CORS)...)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/ready", readiness(deps))

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	svc := &services.PlaceService{
		DB:             deps.DB,
		Resolver:       deps.Resolver,
		Cities:         deps.Cities,
		CityLocale:     language.Make(cfg.Provider.Language),
		IdempotencyTTL: cfg.IdempotencyTTL,
	}
	h := handlers.New(svc)

	apiBase := cfg.APIBasePath
	api := groupWithPrefix(r, apiBase)
	api.Use(middleware.Auth(deps.Verifier, cfg.AuthRequired))
	api.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{
			MaxLen: 200,
			ScopeFor: middleware.ScopeForRoute(map[string]string{
				http.MethodPost + " " + path.Join("/", apiBase, "places/import"): services.IdempotencyScope,
			}),
		},
		func(ctx context.Context, userID, scope, key string, now time.Time) (bool, error) {
			rec, err := repo.GetIdempotency(ctx, deps.DB, userID, scope, key, now)
			if errors.Is(err, repo.ErrNotFound) {
				return false, nil
			}
			return err == nil && rec != nil, err
		},
	))
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	api.Use(rl.Handler())
	{
		api.POST("/places/preview", h.PreviewPlace)
		api.POST("/places/import", h.ImportPlace)
		api.GET("/places", h.ListPlaces)
		api.GET("/places/:id", h.GetPlace)
		api.DELETE("/places/:id", h.DeletePlace)
	}
}

// readiness reports 503 when the database is unreachable. An unconfigured
// provider is reported but does not fail readiness: list and delete still work.
func readiness(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		provider := deps.Resolver != nil && deps.Resolver.Configured()
		if deps.DB == nil {
			handlers.Fail(c, http.StatusServiceUnavailable, handlers.ErrCodeInternal, "database not configured")
			return
		}
		sqlDB, err := deps.DB.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			handlers.Fail(c, http.StatusServiceUnavailable, handlers.ErrCodeInternal, "database unavailable")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "provider_configured": provider})
	}
}

// corsMiddleware allows every origin when none are configured, otherwise
// echoes allow-listed origins.
func corsMiddleware(cfg config.CORSConfig) []gin.HandlerFunc {
	base := cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID", "If-None-Match", middleware.HeaderIdempotencyKey},
		ExposeHeaders:    middleware.DefaultExposeHeaders,
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}

	if len(cfg.AllowedOrigins) == 0 {
		base.AllowAllOrigins = true
		return []gin.HandlerFunc{
			// ACAO: * even without an Origin header, for simple probes.
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(base),
		}
	}

	allowed := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		allowed[o] = struct{}{}
	}
	base.AllowOrigins = cfg.AllowedOrigins
	return []gin.HandlerFunc{
		func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		},
		cors.New(base),
	}
}

// limitBody caps request bodies at maxBytes; reads past it fail.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
