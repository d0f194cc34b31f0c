// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes server timeouts,
// logging, the places provider, the resolution cache and quota, persistence
// collaborators and observability.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "go-places-backend")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// ProviderConfig holds the external places provider settings.
type ProviderConfig struct {
	APIKey         string        // PLACES_API_KEY, falls back to GOOGLE_MAPS_API_KEY
	PlacesBaseURL  string        // Places API (New) root
	GeocodeBaseURL string        // Geocoding API root
	Language       string        // BCP-47 language for results
	Timeout        time.Duration // per outbound call
	PhotoMaxWidth  int           // media URL width in px
}

// Configured reports whether an API key is present.
func (p ProviderConfig) Configured() bool { return strings.TrimSpace(p.APIKey) != "" }

// ResolveConfig tunes the resolution pipeline.
type ResolveConfig struct {
	CacheTTL            time.Duration // lifetime of a cached place
	UserLimit           int           // resolutions per window per user
	UserWindow          time.Duration // fixed window length
	AllowCoordinateOnly bool          // answer with the hint when nothing matches
}

// StoreConfig selects where cache entries and quota windows live.
type StoreConfig struct {
	Backend       string // memory|redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// SupabaseConfig configures the managed backend used for auth and city upserts.
type SupabaseConfig struct {
	URL     string
	AnonKey string
	CityRPC string
}

// Enabled reports whether both URL and key are set.
func (s SupabaseConfig) Enabled() bool {
	return strings.TrimSpace(s.URL) != "" && strings.TrimSpace(s.AnonKey) != ""
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // trace|debug|info|warn|error|fatal|panic|off
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for API routes

	// App
	DBPath       string // SQLite path
	AuthRequired bool   // reject requests without a verified bearer token

	Provider ProviderConfig
	Resolve  ResolveConfig
	Store    StoreConfig
	Supabase SupabaseConfig

	// Edge rate limiting (token bucket per user/IP)
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Idempotency
	IdempotencyTTL time.Duration // how long a given Idempotency-Key is valid

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
//
// A missing provider key is not an error: the service starts and the
// resolution endpoints answer UNCONFIGURED.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging / Docs
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(getenv("API_BASE_PATH", "/api/v1")),

		// App
		DBPath:       getenv("DB_PATH", "places.db"),
		AuthRequired: getbool("AUTH_REQUIRED", false),

		Provider: ProviderConfig{
			APIKey:         firstEnv("PLACES_API_KEY", "GOOGLE_MAPS_API_KEY"),
			PlacesBaseURL:  strings.TrimRight(getenv("PLACES_BASE_URL", "https://places.googleapis.com"), "/"),
			GeocodeBaseURL: strings.TrimRight(getenv("GEOCODING_BASE_URL", "https://maps.googleapis.com"), "/"),
			Language:       getenv("PLACES_LANGUAGE", "en"),
			Timeout:        getdur("PROVIDER_TIMEOUT", 8*time.Second),
			PhotoMaxWidth:  getint("PHOTO_MAX_WIDTH", 800),
		},
		Resolve: ResolveConfig{
			CacheTTL:            getdur("CACHE_TTL", time.Hour),
			UserLimit:           getint("RESOLVE_RATE_LIMIT", 10),
			UserWindow:          getdur("RESOLVE_RATE_WINDOW", time.Minute),
			AllowCoordinateOnly: getbool("ALLOW_COORDINATE_ONLY", false),
		},
		Store: StoreConfig{
			Backend:       strings.ToLower(getenv("STORE_BACKEND", "memory")),
			RedisAddr:     getenv("REDIS_ADDR", ""),
			RedisPassword: getenv("REDIS_PASSWORD", ""),
			RedisDB:       getint("REDIS_DB", 0),
			RedisPrefix:   getenv("REDIS_PREFIX", "places:"),
		},
		Supabase: SupabaseConfig{
			URL:     getenv("SUPABASE_URL", ""),
			AnonKey: getenv("SUPABASE_ANON_KEY", ""),
			CityRPC: getenv("SUPABASE_CITY_RPC", "upsert_city"),
		},

		// Rate limiting
		RateRPS:   getfloat("RATE_RPS", 5.0),
		RateBurst: getint("RATE_BURST", 10),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Idempotency
		IdempotencyTTL: getdur("IDEMPOTENCY_TTL", 24*time.Hour),

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "go-places-backend"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}
	cfg.Provider.APIKey = strings.TrimSpace(cfg.Provider.APIKey)

	// --- validation ---
	switch cfg.LogLevel {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "off":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: trace, debug, info, warn, error, fatal, panic, off")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return cfg, errors.New("DB_PATH must not be empty")
	}
	if cfg.Provider.Timeout <= 0 {
		return cfg, errors.New("PROVIDER_TIMEOUT must be > 0")
	}
	if cfg.Provider.PhotoMaxWidth < 1 || cfg.Provider.PhotoMaxWidth > 4800 {
		return cfg, errors.New("PHOTO_MAX_WIDTH must be between 1 and 4800")
	}
	if cfg.Resolve.CacheTTL <= 0 {
		return cfg, errors.New("CACHE_TTL must be > 0")
	}
	if cfg.Resolve.UserLimit < 1 {
		return cfg, errors.New("RESOLVE_RATE_LIMIT must be >= 1")
	}
	if cfg.Resolve.UserWindow <= 0 {
		return cfg, errors.New("RESOLVE_RATE_WINDOW must be > 0")
	}
	switch cfg.Store.Backend {
	case "memory":
	case "redis":
		if strings.TrimSpace(cfg.Store.RedisAddr) == "" {
			return cfg, errors.New("REDIS_ADDR must be set when STORE_BACKEND=redis")
		}
	default:
		return cfg, errors.New("STORE_BACKEND must be one of: memory, redis")
	}
	if cfg.AuthRequired && !cfg.Supabase.Enabled() {
		return cfg, errors.New("AUTH_REQUIRED needs SUPABASE_URL and SUPABASE_ANON_KEY")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.IdempotencyTTL <= 0 {
		return cfg, errors.New("IDEMPOTENCY_TTL must be > 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

// firstEnv returns the first non-empty value among keys.
func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := getenv(k, ""); v != "" {
			return v
		}
	}
	return ""
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
