package resolver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbourn/go-places-backend/internal/domain"
	"github.com/tbourn/go-places-backend/internal/places"
)

func TestResolveFromText_FirstVariationWins(t *testing.T) {
	fp := newFakeProvider()
	fp.text["Cafe Central"] = []places.Candidate{cand("ChIJfirst"), cand("ChIJsecond")}
	r := NewResolver(fp, nil, 0)

	id, src := r.ResolveFromText(context.Background(), Classify("Cafe Central"))
	assert.Equal(t, "ChIJfirst", id)
	assert.Equal(t, SourceText, src)
	assert.Equal(t, []string{"Cafe Central"}, fp.textCalls)
	assert.Empty(t, fp.nearbyCalls)
}

func TestResolveFromText_FallsThroughVariationsAndSwallowsErrors(t *testing.T) {
	const link = "https://www.google.com/maps/place/Blue+Bottle/@37.7765,-122.4233,17z"
	fp := newFakeProvider()
	fp.textErr[link] = errors.New("boom")
	fp.text["Blue Bottle"] = []places.Candidate{cand("ChIJbb")}
	r := NewResolver(fp, nil, 0)

	id, src := r.ResolveFromText(context.Background(), Classify(link))
	assert.Equal(t, "ChIJbb", id)
	assert.Equal(t, SourceText, src)
	assert.Equal(t, []string{link, "google.com/maps/place/Blue+Bottle/@37.7765,-122.4233,17z", "Blue Bottle"}, fp.textCalls)

	require.NotNil(t, fp.textBiases[0], "hint is used as bias")
	assert.InDelta(t, 37.7765, fp.textBiases[0].Lat, 1e-9)
	assert.EqualValues(t, TextBiasRadius, fp.textRadii[0])
}

func TestResolveFromText_HintFallbackWidensRadius(t *testing.T) {
	fp := newFakeProvider()
	fp.nearbyErr[10] = errors.New("timeout")
	fp.nearby[100] = []places.Candidate{cand("ChIJnear")}
	fp.nearby[200] = []places.Candidate{cand("ChIJfar")}
	r := NewResolver(fp, nil, 0)

	id, src := r.ResolveFromText(context.Background(), Classify("https://www.google.com/maps/@37.7765,-122.4233,17z"))
	assert.Equal(t, "ChIJnear", id)
	assert.Equal(t, SourceCoordinates, src)
	assert.Equal(t, []float64{10, 50, 100}, fp.nearbyCalls)
}

func TestResolveFromText_NoHintNoFallback(t *testing.T) {
	fp := newFakeProvider()
	fp.nearby[10] = []places.Candidate{cand("ChIJnear")}
	r := NewResolver(fp, nil, 0)

	id, src := r.ResolveFromText(context.Background(), Classify("Cafe Central"))
	assert.Empty(t, id)
	assert.Equal(t, SourceNone, src)
	assert.Empty(t, fp.nearbyCalls)
}

func TestResolveFromText_Cancelled(t *testing.T) {
	fp := newFakeProvider()
	fp.text["Cafe Central"] = []places.Candidate{cand("ChIJx")}
	r := NewResolver(fp, nil, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	id, _ := r.ResolveFromText(ctx, Classify("Cafe Central"))
	assert.Empty(t, id)
	assert.Empty(t, fp.textCalls)
}

func TestResolveByCoordinates_Exhausted(t *testing.T) {
	fp := newFakeProvider()
	r := NewResolver(fp, nil, 0)

	assert.Empty(t, r.ResolveByCoordinates(context.Background(), domain.LatLng{Lat: 1, Lng: 2}))
	assert.Equal(t, NearbyRadii, fp.nearbyCalls)
}

func TestResolver_StepTimeoutIsPerCall(t *testing.T) {
	var deadlines []time.Duration
	fp := &deadlineSearcher{fn: func(ctx context.Context) {
		dl, ok := ctx.Deadline()
		require.True(t, ok)
		deadlines = append(deadlines, time.Until(dl))
	}}
	r := NewResolver(fp, nil, time.Second)

	r.ResolveByCoordinates(context.Background(), domain.LatLng{})
	require.Len(t, deadlines, len(NearbyRadii))
	for _, d := range deadlines {
		assert.LessOrEqual(t, d, time.Second)
		assert.Greater(t, d, time.Duration(0))
	}
}

type deadlineSearcher struct{ fn func(context.Context) }

func (d *deadlineSearcher) SearchText(ctx context.Context, _ string, _ *domain.LatLng, _ float64) ([]places.Candidate, error) {
	d.fn(ctx)
	return nil, nil
}

func (d *deadlineSearcher) SearchNearby(ctx context.Context, _ domain.LatLng, _ float64, _ int) ([]places.Candidate, error) {
	d.fn(ctx)
	return nil, nil
}

func TestGeocodeThenResolve(t *testing.T) {
	t.Run("nil geocoder", func(t *testing.T) {
		r := NewResolver(newFakeProvider(), nil, 0)
		assert.Empty(t, r.GeocodeThenResolve(context.Background(), "1 Main St"))
	})

	t.Run("geocoded then nearby", func(t *testing.T) {
		fp := newFakeProvider()
		fp.nearby[10] = []places.Candidate{cand("ChIJaddr")}
		g := &fakeGeocoder{loc: &domain.LatLng{Lat: 39.78, Lng: -89.65}}
		r := NewResolver(fp, g, 0)

		assert.Equal(t, "ChIJaddr", r.GeocodeThenResolve(context.Background(), "123 Main St, Springfield, IL 62701"))
		assert.Equal(t, []string{"123 Main St, Springfield, IL 62701"}, g.calls)
	})

	t.Run("no geocode result", func(t *testing.T) {
		fp := newFakeProvider()
		r := NewResolver(fp, &fakeGeocoder{}, 0)
		assert.Empty(t, r.GeocodeThenResolve(context.Background(), "1 Nowhere Rd"))
		assert.Empty(t, fp.nearbyCalls)
	})

	t.Run("geocode error swallowed", func(t *testing.T) {
		fp := newFakeProvider()
		r := NewResolver(fp, &fakeGeocoder{err: errors.New("OVER_QUERY_LIMIT")}, 0)
		assert.Empty(t, r.GeocodeThenResolve(context.Background(), "1 Main St"))
		assert.Empty(t, fp.nearbyCalls)
	})
}

func TestDistanceMeters(t *testing.T) {
	// One degree of latitude is roughly 111 km.
	d := distanceMeters(domain.LatLng{Lat: 0, Lng: 0}, domain.LatLng{Lat: 1, Lng: 0})
	assert.InDelta(t, 111_000, d, 1_000)
}
