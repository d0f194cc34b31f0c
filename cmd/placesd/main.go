// Command placesd serves the place resolution and import API.
//
// @title       Places API
// @version     1.0
// @description Resolves place names, addresses and Google Maps links into normalized places and stores per-user imports.
// @BasePath    /api/v1
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/tbourn/go-places-backend/internal/config"
	httpapi "github.com/tbourn/go-places-backend/internal/http"
	"github.com/tbourn/go-places-backend/internal/http/middleware"
	"github.com/tbourn/go-places-backend/internal/observability"
	"github.com/tbourn/go-places-backend/internal/places"
	"github.com/tbourn/go-places-backend/internal/repo"
	"github.com/tbourn/go-places-backend/internal/resolver"
	"github.com/tbourn/go-places-backend/internal/services"
	"github.com/tbourn/go-places-backend/internal/store"
	"github.com/tbourn/go-places-backend/internal/sysutil"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownGrace = 15 * time.Second

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()
	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	log.Logger = log.With().Str("service", cfg.OTEL.ServiceName).Str("version", version).Logger()
	zerolog.DefaultContextLogger = &log.Logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("placesd stopped")
	}
}

func run(ctx context.Context, cfg config.Config) error {
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		return err
	}

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		return err
	}
	if err := repo.AutoMigrate(db); err != nil {
		return err
	}
	if sysutil.IsTruthy(os.Getenv("MIGRATE_ONLY")) {
		log.Info().Str("db", cfg.DBPath).Msg("migrations applied")
		return closeDB(db)
	}

	cache, limiter, closeStores, err := buildStores(ctx, cfg)
	if err != nil {
		return err
	}

	pipeline, err := buildPipeline(cfg, cache, limiter)
	if err != nil {
		return err
	}

	deps := httpapi.Deps{
		DB:       db,
		Resolver: pipeline,
		Cities:   repo.SQLiteCities{DB: db},
	}
	if cfg.Supabase.Enabled() {
		sb, err := repo.NewSupabaseClient(cfg.Supabase.URL, cfg.Supabase.AnonKey)
		if err != nil {
			return err
		}
		deps.Cities = repo.SupabaseCities{Client: sb, RPC: cfg.Supabase.CityRPC}
		deps.Verifier = repo.SupabaseUsers{Client: sb}
		log.Info().Str("rpc", cfg.Supabase.CityRPC).Msg("supabase cities and auth enabled")
	}
	if cfg.AuthRequired && deps.Verifier == nil {
		return errors.New("AUTH_REQUIRED needs SUPABASE_URL and SUPABASE_ANON_KEY")
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, deps, cfg)

	srv := &http.Server{
		Addr:              ":" + sysutil.FirstNonEmpty(cfg.Port, "8080"),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().
			Str("addr", srv.Addr).
			Str("base_path", cfg.APIBasePath).
			Bool("provider_configured", pipeline.Configured()).
			Str("store", cfg.Store.Backend).
			Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()

		var errs error
		errs = multierr.Append(errs, srv.Shutdown(sctx))
		errs = multierr.Append(errs, closeStores())
		errs = multierr.Append(errs, closeDB(db))
		errs = multierr.Append(errs, shutdownOTel(sctx))
		return errs
	})
	return g.Wait()
}

// buildStores returns the cache and quota backends. With redis every
// replica shares one quota per user.
func buildStores(ctx context.Context, cfg config.Config) (store.Cache, store.Limiter, func() error, error) {
	rc := cfg.Resolve
	if cfg.Store.Backend != "redis" {
		return store.NewMemoryCache(rc.CacheTTL, nil),
			store.NewMemoryLimiter(rc.UserLimit, rc.UserWindow, nil),
			func() error { return nil }, nil
	}

	rdb, err := store.NewRedisClient(ctx, cfg.Store.RedisAddr, cfg.Store.RedisPassword, cfg.Store.RedisDB)
	if err != nil {
		return nil, nil, nil, err
	}
	log.Info().Str("addr", cfg.Store.RedisAddr).Msg("redis store connected")
	return store.NewRedisCache(rdb, cfg.Store.RedisPrefix, rc.CacheTTL),
		store.NewRedisLimiter(rdb, cfg.Store.RedisPrefix, rc.UserLimit, rc.UserWindow),
		rdb.Close, nil
}

// buildPipeline wires the provider clients. Without an API key the pipeline
// answers every resolution with UNCONFIGURED.
func buildPipeline(cfg config.Config, cache store.Cache, limiter store.Limiter) (*resolver.Pipeline, error) {
	opts := resolver.Options{
		Cache:               cache,
		Limiter:             limiter,
		AllowCoordinateOnly: cfg.Resolve.AllowCoordinateOnly,
	}
	pc := cfg.Provider
	if !pc.Configured() {
		log.Warn().Msg("no places API key; resolution endpoints will answer unconfigured")
		return resolver.NewPipeline(opts), nil
	}

	hc := &http.Client{Timeout: pc.Timeout}
	client := places.NewClient(pc.APIKey,
		places.WithHTTPClient(hc),
		places.WithBaseURL(pc.PlacesBaseURL),
		places.WithLanguage(pc.Language),
		places.WithPhotoMaxWidth(pc.PhotoMaxWidth),
	)
	geo, err := places.NewGeocoder(pc.APIKey,
		places.WithGeocodeBaseURL(pc.GeocodeBaseURL),
		places.WithGeocodeHTTPClient(hc),
	)
	if err != nil {
		return nil, err
	}

	opts.Provider = client
	opts.Resolver = resolver.NewResolver(client, geo, pc.Timeout)
	return resolver.NewPipeline(opts), nil
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var (
	_ httpapi.Resolver         = (*resolver.Pipeline)(nil)
	_ services.CityResolver    = repo.SQLiteCities{}
	_ middleware.TokenVerifier = repo.SupabaseUsers{}
)
