package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tbourn/go-places-backend/internal/domain"
)

func TestGetIdempotency_BlankKey_ReturnsNotFound(t *testing.T) {
	db := newTestDB(t, &domain.Idempotency{})

	rec, err := GetIdempotency(context.Background(), db, "u1", "import", "   ", time.Now().UTC())
	if rec != nil || !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected (nil, ErrNotFound) for blank key, got (%v, %v)", rec, err)
	}
}

func TestGetIdempotency_ExpiredOrMissing_ReturnsNotFound(t *testing.T) {
	db := newTestDB(t, &domain.Idempotency{})
	now := time.Now().UTC()

	exp := &domain.Idempotency{
		ID:        "expired",
		UserID:    "u1",
		Scope:     "import",
		Key:       "k1",
		Status:    201,
		CreatedAt: now.Add(-2 * time.Hour),
		ExpiresAt: now.Add(-time.Hour),
	}
	if err := db.Create(exp).Error; err != nil {
		t.Fatalf("seed expired: %v", err)
	}

	if rec, err := GetIdempotency(context.Background(), db, "u1", "import", "k1", now); rec != nil || !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected (nil, ErrNotFound) for expired, got (%v, %v)", rec, err)
	}
	if rec, err := GetIdempotency(context.Background(), db, "u1", "import", "missing", now); rec != nil || !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected (nil, ErrNotFound) for missing, got (%v, %v)", rec, err)
	}
}

func TestGetIdempotency_ScopedPerUserAndScope(t *testing.T) {
	db := newTestDB(t, &domain.Idempotency{})
	now := time.Now().UTC()

	if _, err := CreateIdempotency(context.Background(), db, "u1", "import", "k", "p1", 201, time.Hour); err != nil {
		t.Fatalf("seed: %v", err)
	}
	rec, err := GetIdempotency(context.Background(), db, "u1", "import", "k", now)
	if err != nil || rec.ResourceID != "p1" || rec.Status != 201 {
		t.Fatalf("unexpected record: %+v (%v)", rec, err)
	}
	if _, err := GetIdempotency(context.Background(), db, "u2", "import", "k", now); !errors.Is(err, ErrNotFound) {
		t.Fatalf("other user must not see record, got %v", err)
	}
	if _, err := GetIdempotency(context.Background(), db, "u1", "other", "k", now); !errors.Is(err, ErrNotFound) {
		t.Fatalf("other scope must not see record, got %v", err)
	}
}

func TestCreateIdempotency_SuccessAndDuplicate(t *testing.T) {
	db := newTestDB(t, &domain.Idempotency{})
	ttl := 90 * time.Minute
	start := time.Now().UTC()

	rec, err := CreateIdempotency(context.Background(), db, "u9", "import", "k9", "p9", 201, ttl)
	if err != nil {
		t.Fatalf("CreateIdempotency error: %v", err)
	}
	if rec == nil || rec.ID == "" || rec.UserID != "u9" || rec.Scope != "import" || rec.Key != "k9" || rec.ResourceID != "p9" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if !(rec.ExpiresAt.After(start) && rec.ExpiresAt.Before(start.Add(2*time.Hour))) {
		t.Fatalf("unexpected ExpiresAt: %v", rec.ExpiresAt)
	}

	if _, err := CreateIdempotency(context.Background(), db, "u9", "import", "k9", "pX", 201, ttl); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestCreateIdempotency_ReplacesExpired(t *testing.T) {
	db := newTestDB(t, &domain.Idempotency{})
	now := time.Now().UTC()
	old := &domain.Idempotency{
		ID: "old", UserID: "u1", Scope: "import", Key: "k", ResourceID: "p-old", Status: 201,
		CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour),
	}
	if err := db.Create(old).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec, err := CreateIdempotency(context.Background(), db, "u1", "import", "k", "p-new", 201, time.Hour)
	if err != nil {
		t.Fatalf("CreateIdempotency: %v", err)
	}
	if rec.ResourceID != "p-new" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

// Generic DB error path: attempt insert without migrating the table.
func TestCreateIdempotency_Error_NoTable(t *testing.T) {
	db := newTestDB(t)
	_, err := CreateIdempotency(context.Background(), db, "uX", "import", "kX", "pX", 201, time.Minute)
	if err == nil {
		t.Fatalf("expected error when table is missing")
	}
	if errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected non-duplicate error, got ErrDuplicate")
	}
}
