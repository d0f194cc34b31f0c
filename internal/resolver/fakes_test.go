package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tbourn/go-places-backend/internal/domain"
	"github.com/tbourn/go-places-backend/internal/places"
)

// fakeProvider scripts every provider call and records what was asked.
type fakeProvider struct {
	mu sync.Mutex

	text       map[string][]places.Candidate
	textErr    map[string]error
	nearby     map[float64][]places.Candidate
	nearbyErr  map[float64]error
	details    map[string]*places.RawPlace
	detailsErr error

	textCalls    []string
	textBiases   []*domain.LatLng
	textRadii    []float64
	nearbyCalls  []float64
	detailsCalls []string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		text:      map[string][]places.Candidate{},
		textErr:   map[string]error{},
		nearby:    map[float64][]places.Candidate{},
		nearbyErr: map[float64]error{},
		details:   map[string]*places.RawPlace{},
	}
}

func (f *fakeProvider) SearchText(ctx context.Context, query string, bias *domain.LatLng, radius float64) ([]places.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.textCalls = append(f.textCalls, query)
	f.textBiases = append(f.textBiases, bias)
	f.textRadii = append(f.textRadii, radius)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.textErr[query]; err != nil {
		return nil, err
	}
	return f.text[query], nil
}

func (f *fakeProvider) SearchNearby(ctx context.Context, _ domain.LatLng, radius float64, _ int) ([]places.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nearbyCalls = append(f.nearbyCalls, radius)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.nearbyErr[radius]; err != nil {
		return nil, err
	}
	return f.nearby[radius], nil
}

func (f *fakeProvider) Details(ctx context.Context, id string) (*places.RawPlace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailsCalls = append(f.detailsCalls, id)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.detailsErr != nil {
		return nil, f.detailsErr
	}
	if raw, ok := f.details[id]; ok {
		return raw, nil
	}
	return nil, errors.New("details: 404")
}

func (f *fakeProvider) PhotoURL(ref string) string { return "https://media.test/" + ref }

func (f *fakeProvider) counts() (text, nearby, details int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.textCalls), len(f.nearbyCalls), len(f.detailsCalls)
}

type fakeGeocoder struct {
	loc   *domain.LatLng
	err   error
	calls []string
}

func (g *fakeGeocoder) Geocode(_ context.Context, address string) (*domain.LatLng, error) {
	g.calls = append(g.calls, address)
	return g.loc, g.err
}

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func cand(id string) places.Candidate { return places.Candidate{ID: id, Name: id} }

func rawFrom(t *testing.T, js string) *places.RawPlace {
	t.Helper()
	var raw places.RawPlace
	require.NoError(t, json.Unmarshal([]byte(js), &raw))
	return &raw
}
