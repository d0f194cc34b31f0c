package resolver

import (
	"context"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-places-backend/internal/domain"
	"github.com/tbourn/go-places-backend/internal/places"
)

// TextBiasRadius is the radius, in metres, of the location bias applied to
// text searches that carry a hint.
const TextBiasRadius = 100

// NearbyRadii are tried in order by ResolveByCoordinates.
var NearbyRadii = []float64{10, 50, 100, 200}

// nearbyMaxResults only matters for logging; the first candidate is used.
const nearbyMaxResults = 5

// Searcher is the subset of the places client used to find identifiers.
type Searcher interface {
	SearchText(ctx context.Context, query string, bias *domain.LatLng, radius float64) ([]places.Candidate, error)
	SearchNearby(ctx context.Context, center domain.LatLng, radius float64, maxResults int) ([]places.Candidate, error)
}

// Geocoder converts an address to coordinates. A nil location with a nil
// error means no match.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*domain.LatLng, error)
}

// Source names the strategy that produced an identifier.
type Source string

const (
	SourceNone        Source = ""
	SourceURL         Source = "url"
	SourceText        Source = "text"
	SourceCoordinates Source = "coordinates"
	SourceGeocode     Source = "geocode"
)

// Resolver runs the identifier strategies. Every provider failure inside a
// strategy is logged and treated as "no result"; strategies only ever
// return an identifier or "".
type Resolver struct {
	search      Searcher
	geocoder    Geocoder
	stepTimeout time.Duration
}

// NewResolver wires the strategies. geocoder may be nil, which disables the
// geocoding fallback. stepTimeout bounds each provider call when > 0.
func NewResolver(search Searcher, geocoder Geocoder, stepTimeout time.Duration) *Resolver {
	return &Resolver{search: search, geocoder: geocoder, stepTimeout: stepTimeout}
}

var tracer = otel.Tracer("resolver/Pipeline")

func (r *Resolver) stepCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.stepTimeout > 0 {
		return context.WithTimeout(ctx, r.stepTimeout)
	}
	return context.WithCancel(ctx)
}

// ResolveFromText tries each query variation in order and takes the first
// candidate of the first variation with any result. When all variations
// come back empty and q carries a hint, it falls back to the hint.
func (r *Resolver) ResolveFromText(ctx context.Context, q Query) (string, Source) {
	ctx, span := tracer.Start(ctx, "ResolveFromText",
		trace.WithAttributes(attribute.Bool("query.is_url", q.IsURL), attribute.Bool("query.has_hint", q.Hint != nil)))
	defer span.End()
	log := zerolog.Ctx(ctx)

	for i, v := range Variations(q) {
		if ctx.Err() != nil {
			return "", SourceNone
		}
		sctx, cancel := r.stepCtx(ctx)
		cands, err := r.search.SearchText(sctx, v, q.Hint, TextBiasRadius)
		cancel()
		if err != nil {
			log.Warn().Err(err).Int("variation", i).Msg("text search failed")
			continue
		}
		if len(cands) == 0 {
			log.Debug().Int("variation", i).Msg("text search empty")
			continue
		}
		top := cands[0]
		ev := log.Debug().Int("variation", i).Str("place_id", top.ID).Int("candidates", len(cands))
		if q.Hint != nil && top.Location != nil {
			ev = ev.Float64("distance_m", distanceMeters(*q.Hint, *top.Location))
		}
		ev.Msg("text search matched")
		span.SetAttributes(attribute.Int("variation", i))
		return top.ID, SourceText
	}

	if q.Hint != nil {
		if id := r.ResolveByCoordinates(ctx, *q.Hint); id != "" {
			return id, SourceCoordinates
		}
	}
	return "", SourceNone
}

// ResolveByCoordinates runs a nearby search at each of NearbyRadii and
// returns the first candidate of the first non-empty radius.
func (r *Resolver) ResolveByCoordinates(ctx context.Context, center domain.LatLng) string {
	ctx, span := tracer.Start(ctx, "ResolveByCoordinates",
		trace.WithAttributes(attribute.Float64("lat", center.Lat), attribute.Float64("lng", center.Lng)))
	defer span.End()
	log := zerolog.Ctx(ctx)

	for _, radius := range NearbyRadii {
		if ctx.Err() != nil {
			return ""
		}
		sctx, cancel := r.stepCtx(ctx)
		cands, err := r.search.SearchNearby(sctx, center, radius, nearbyMaxResults)
		cancel()
		if err != nil {
			log.Warn().Err(err).Float64("radius", radius).Msg("nearby search failed")
			continue
		}
		if len(cands) == 0 {
			continue
		}
		top := cands[0]
		ev := log.Debug().Float64("radius", radius).Str("place_id", top.ID)
		if top.Location != nil {
			ev = ev.Float64("distance_m", distanceMeters(center, *top.Location))
		}
		ev.Msg("nearby search matched")
		span.SetAttributes(attribute.Float64("radius", radius))
		return top.ID
	}
	return ""
}

// GeocodeThenResolve geocodes address and resolves around the first result.
func (r *Resolver) GeocodeThenResolve(ctx context.Context, address string) string {
	if r.geocoder == nil {
		return ""
	}
	ctx, span := tracer.Start(ctx, "GeocodeThenResolve")
	defer span.End()

	sctx, cancel := r.stepCtx(ctx)
	loc, err := r.geocoder.Geocode(sctx, address)
	cancel()
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("geocoding failed")
		return ""
	}
	if loc == nil {
		return ""
	}
	return r.ResolveByCoordinates(ctx, *loc)
}

func distanceMeters(a, b domain.LatLng) float64 {
	return geo.Distance(orb.Point{a.Lng, a.Lat}, orb.Point{b.Lng, b.Lat})
}
