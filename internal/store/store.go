// Package store holds the two pieces of best-effort state used by the
// resolution pipeline: a TTL cache of normalized places keyed by provider
// identifier, and a fixed-window per-user request counter.
//
// Both come in an in-process flavour (the default) and a Redis-backed
// flavour for deployments with more than one replica. Neither is a
// correctness boundary: losing their contents only costs extra provider
// calls or a fresh quota window.
package store

import (
	"context"
	"time"

	"github.com/tbourn/go-places-backend/internal/domain"
)

// Clock returns the current time. Tests inject a fake.
type Clock func() time.Time

// Cache stores normalized places by identifier.
type Cache interface {
	// Get returns the entry when present and younger than the TTL.
	Get(ctx context.Context, placeID string) (*domain.NormalizedPlace, bool, error)
	// Put replaces the entry for placeID and restarts its TTL.
	Put(ctx context.Context, placeID string, p *domain.NormalizedPlace) error
}

// Limiter counts requests per key in fixed windows.
type Limiter interface {
	// Allow records one request for key and reports whether it fits in the
	// current window. It never blocks.
	Allow(ctx context.Context, key string) (bool, error)
}
