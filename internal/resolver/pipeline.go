package resolver

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	olc "github.com/google/open-location-code/go"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-places-backend/internal/domain"
	"github.com/tbourn/go-places-backend/internal/places"
	"github.com/tbourn/go-places-backend/internal/store"
)

// MaxQueryRunes bounds accepted input.
const MaxQueryRunes = 2048

// Defaults for the details cache and the per-user quota.
const (
	DefaultCacheTTL   = time.Hour
	DefaultUserLimit  = 10
	DefaultUserWindow = time.Minute
)

// Provider is the places client as seen by the pipeline.
type Provider interface {
	Searcher
	Details(ctx context.Context, placeID string) (*places.RawPlace, error)
	PhotoURL(ref string) string
}

// Request is one resolution call.
type Request struct {
	Query  string
	UserID string
}

// Options configures a Pipeline. A nil Provider means the server has no
// provider credentials and every call fails with UNCONFIGURED.
type Options struct {
	Provider            Provider
	Resolver            *Resolver
	Cache               store.Cache
	Limiter             store.Limiter
	LooksLikeAddress    AddressPredicate
	AllowCoordinateOnly bool
	MaxPhotos           int
}

// Pipeline is the single entry point that turns a query into a
// NormalizedPlace. It is safe for concurrent use; the cache and limiter are
// the only shared state.
type Pipeline struct {
	provider       Provider
	resolver       *Resolver
	normalizer     Normalizer
	cache          store.Cache
	limiter        store.Limiter
	isAddress      AddressPredicate
	allowCoordOnly bool
}

// NewPipeline builds a Pipeline. Missing Cache or Limiter default to the
// in-process stores with the standard TTL and quota.
func NewPipeline(o Options) *Pipeline {
	p := &Pipeline{
		provider:       o.Provider,
		resolver:       o.Resolver,
		cache:          o.Cache,
		limiter:        o.Limiter,
		isAddress:      o.LooksLikeAddress,
		allowCoordOnly: o.AllowCoordinateOnly,
	}
	if p.isAddress == nil {
		p.isAddress = LooksLikeAddress
	}
	if p.cache == nil {
		p.cache = store.NewMemoryCache(DefaultCacheTTL, nil)
	}
	if p.limiter == nil {
		p.limiter = store.NewMemoryLimiter(DefaultUserLimit, DefaultUserWindow, nil)
	}
	if p.provider != nil {
		if p.resolver == nil {
			p.resolver = NewResolver(p.provider, nil, 0)
		}
		p.normalizer = Normalizer{PhotoURL: p.provider.PhotoURL, MaxPhotos: o.MaxPhotos}
	}
	return p
}

// Configured reports whether provider credentials are present.
func (p *Pipeline) Configured() bool { return p.provider != nil }

// Resolve runs the whole pipeline for one request. Every failure is a
// *Error with a user-facing message.
func (p *Pipeline) Resolve(ctx context.Context, req Request) (place *domain.NormalizedPlace, err error) {
	ctx, span := tracer.Start(ctx, "Resolve", trace.WithAttributes(attribute.String("user.id", req.UserID)))
	defer span.End()

	source := SourceNone
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = string(CodeOf(err))
			span.SetStatus(codes.Error, outcome)
		}
		resolutions.WithLabelValues(outcome, string(source)).Inc()
	}()

	if !p.Configured() {
		return nil, newError(CodeUnconfigured, msgUnconfigured, nil)
	}

	q := Classify(req.Query)
	switch n := utf8.RuneCountInString(q.Text); {
	case n == 0:
		return nil, newError(CodeInvalidInput, msgQueryRequired, nil)
	case n < minQueryRunes && !q.IsURL:
		return nil, newError(CodeInvalidInput, msgQueryTooShort, nil)
	case n > MaxQueryRunes:
		return nil, newError(CodeInvalidInput, msgQueryTooLong, nil)
	}

	log := zerolog.Ctx(ctx).With().Bool("is_url", q.IsURL).Str("hint_source", q.HintSource).Logger()
	ctx = log.WithContext(ctx)

	if ok, lerr := p.limiter.Allow(ctx, req.UserID); lerr != nil {
		log.Error().Err(lerr).Msg("rate limiter unavailable; allowing request")
	} else if !ok {
		return nil, newError(CodeRateLimited, msgRateLimited, nil)
	}

	id, src := p.identify(ctx, q)
	source = src
	if ctx.Err() != nil {
		return nil, newError(CodeProviderError, msgCancelled, ctx.Err())
	}
	if id == "" {
		if p.allowCoordOnly && q.Hint != nil {
			source = SourceCoordinates
			return coordinateOnly(q), nil
		}
		msg := msgNotFoundFromTxt
		if q.IsURL {
			msg = msgNotFoundFromURL
		}
		return nil, newError(CodePlaceNotFound, msg, nil)
	}
	span.SetAttributes(attribute.String("place.id", id), attribute.String("source", string(src)))

	if cached, ok := p.cacheGet(ctx, id); ok {
		cached.Query = q.Text
		cached.MapsURL = canonicalMapsURL(q.Text, q.IsURL, id)
		return cached, nil
	}

	raw, err := p.provider.Details(ctx, id)
	if err != nil {
		if ctx.Err() != nil {
			return nil, newError(CodeProviderError, msgCancelled, ctx.Err())
		}
		log.Error().Err(err).Str("place_id", id).Msg("place details failed")
		return nil, newError(CodeProviderError, msgProvider, err)
	}

	place = p.normalizer.Normalize(raw, q.Text, q.IsURL)
	if place.PlaceID == "" {
		place.PlaceID = id
	}

	if ctx.Err() == nil {
		if perr := p.cache.Put(ctx, id, place); perr != nil {
			log.Warn().Err(perr).Str("place_id", id).Msg("cache write failed")
		}
	}
	return place, nil
}

// identify runs the strategies in order and returns the first identifier.
func (p *Pipeline) identify(ctx context.Context, q Query) (string, Source) {
	if q.IsURL {
		if id := ExtractIdentifier(q.Text); id != "" {
			return id, SourceURL
		}
	}
	if id, src := p.resolver.ResolveFromText(ctx, q); id != "" {
		return id, src
	}
	if !q.IsURL && q.Hint == nil && p.isAddress(q.Text) {
		if id := p.resolver.GeocodeThenResolve(ctx, q.Text); id != "" {
			return id, SourceGeocode
		}
	}
	return "", SourceNone
}

func (p *Pipeline) cacheGet(ctx context.Context, id string) (*domain.NormalizedPlace, bool) {
	cached, ok, err := p.cache.Get(ctx, id)
	switch {
	case err != nil:
		zerolog.Ctx(ctx).Warn().Err(err).Str("place_id", id).Msg("cache read failed")
		cacheLookups.WithLabelValues("error").Inc()
		return nil, false
	case ok:
		cacheLookups.WithLabelValues("hit").Inc()
		return cached, true
	default:
		cacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
}

// coordinateOnly answers with the hint itself when nothing matched.
func coordinateOnly(q Query) *domain.NormalizedPlace {
	ll := *q.Hint
	maps := coordinateMapsURL(ll)
	if q.IsURL {
		maps = q.Text
	}
	return &domain.NormalizedPlace{
		Name:           strings.TrimSpace(placeSegment(q.URL)),
		Location:       &ll,
		PlusCode:       olc.Encode(ll.Lat, ll.Lng, plusCodeLength),
		MapsURL:        maps,
		Query:          q.Text,
		CoordinateOnly: true,
		OpeningHours:   []string{},
		Types:          []string{},
		Photos:         []domain.Photo{},
	}
}
