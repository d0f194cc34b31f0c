package domain

import (
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:domain_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&City{}, &ImportedPlace{}, &Idempotency{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestTableNames(t *testing.T) {
	if (City{}).TableName() != "cities" {
		t.Fatalf("City.TableName() = %q", (City{}).TableName())
	}
	if (ImportedPlace{}).TableName() != "imported_places" {
		t.Fatalf("ImportedPlace.TableName() = %q", (ImportedPlace{}).TableName())
	}
	if (Idempotency{}).TableName() != "idempotency" {
		t.Fatalf("Idempotency.TableName() = %q", (Idempotency{}).TableName())
	}
}

func TestMigrations_Indexes(t *testing.T) {
	db := newDomainDB(t)
	m := db.Migrator()
	for _, idx := range []struct {
		model any
		name  string
	}{
		{&City{}, "ux_city_name_state_country"},
		{&ImportedPlace{}, "ux_user_place"},
		{&ImportedPlace{}, "idx_user_imports"},
		{&Idempotency{}, "ux_user_scope_key"},
	} {
		if !m.HasIndex(idx.model, idx.name) {
			t.Fatalf("expected index %s on %T", idx.name, idx.model)
		}
	}
}

func TestCity_UniqueTriple(t *testing.T) {
	db := newDomainDB(t)
	now := time.Now().UTC()
	if err := db.Create(&City{ID: "c1", Name: "Austin", State: "Texas", Country: "United States", CreatedAt: now}).Error; err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := db.Create(&City{ID: "c2", Name: "Austin", State: "Minnesota", Country: "United States", CreatedAt: now}).Error; err != nil {
		t.Fatalf("same name in another state should be allowed: %v", err)
	}
	if err := db.Create(&City{ID: "c3", Name: "Austin", State: "Texas", Country: "United States", CreatedAt: now}).Error; err == nil {
		t.Fatalf("expected unique violation on (name, state, country)")
	}
}

func TestImportedPlace_JSONColumnsRoundTrip(t *testing.T) {
	db := newDomainDB(t)
	rating := 4.5
	in := &ImportedPlace{
		ID:           "p1",
		UserID:       "u1",
		PlaceID:      "ChIJabc",
		Name:         "Cafe",
		Rating:       &rating,
		OpeningHours: []string{"Monday: 8AM-5PM"},
		Types:        []string{"cafe", "food"},
		Photos:       []Photo{{ID: "ph1", URL: "https://img/1", Reference: "places/x/photos/ph1"}},
	}
	if err := db.Create(in).Error; err != nil {
		t.Fatalf("insert: %v", err)
	}
	var got ImportedPlace
	if err := db.First(&got, "id = ?", "p1").Error; err != nil {
		t.Fatalf("readback: %v", err)
	}
	if len(got.Types) != 2 || got.Types[1] != "food" || len(got.Photos) != 1 || got.Photos[0].ID != "ph1" {
		t.Fatalf("json columns not preserved: %+v", got)
	}
	if got.Rating == nil || *got.Rating != 4.5 {
		t.Fatalf("rating not preserved: %v", got.Rating)
	}

	dup := &ImportedPlace{ID: "p2", UserID: "u1", PlaceID: "ChIJabc", Name: "Cafe again"}
	if err := db.Create(dup).Error; err == nil {
		t.Fatalf("expected unique violation on (user_id, place_id)")
	}
}

func TestIdempotency_UniqueKeyPerScope(t *testing.T) {
	db := newDomainDB(t)
	now := time.Now().UTC()
	rec := Idempotency{ID: "i1", UserID: "u1", Scope: "places.import", Key: "k1", ResourceID: "p1", Status: 201, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	if err := db.Create(&rec).Error; err != nil {
		t.Fatalf("insert: %v", err)
	}
	other := rec
	other.ID, other.Scope = "i2", "other.scope"
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("same key in another scope should be allowed: %v", err)
	}
	clash := rec
	clash.ID = "i3"
	if err := db.Create(&clash).Error; err == nil {
		t.Fatalf("expected UNIQUE violation on (user_id, scope, key)")
	}
}
