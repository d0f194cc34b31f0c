// Package services – PlaceService
//
// This file implements PlaceService, the application-level component that
// turns a user query into a stored place. It delegates resolution to the
// pipeline, copies the fields the user selected onto an ImportedPlace,
// resolves the city to an identifier and persists the result.
//
// Observability: all public methods are OpenTelemetry-instrumented; spans
// include the user identifier and pagination parameters where applicable.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/tbourn/go-places-backend/internal/domain"
	"github.com/tbourn/go-places-backend/internal/repo"
	"github.com/tbourn/go-places-backend/internal/resolver"
)

// IdempotencyScope namespaces import replays in the idempotency table.
const IdempotencyScope = "place_import"

// Resolver produces a NormalizedPlace for a query.
type Resolver interface {
	Resolve(ctx context.Context, req resolver.Request) (*domain.NormalizedPlace, error)
}

// CityResolver maps a city name to a stable identifier, creating it when
// needed.
type CityResolver interface {
	ResolveCity(ctx context.Context, name, state, country string) (string, error)
}

// ImportInput is one import request.
type ImportInput struct {
	Query  string
	Fields []string
	// City overrides the resolved locality when non-empty.
	City string
}

// PlaceService coordinates resolution and persistence of imported places.
type PlaceService struct {
	DB       *gorm.DB
	Resolver Resolver
	Cities   CityResolver

	// CityLocale drives title-casing of user-supplied city overrides.
	CityLocale language.Tag
	// IdempotencyTTL bounds how long an import can be replayed.
	IdempotencyTTL time.Duration
}

// Preview resolves query without storing anything.
func (s *PlaceService) Preview(ctx context.Context, userID, query string) (*domain.NormalizedPlace, error) {
	ctx, span := otel.Tracer("services/PlaceService").Start(ctx, "Preview",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	return s.Resolver.Resolve(ctx, resolver.Request{Query: query, UserID: userID})
}

// Import resolves in.Query and stores the selected fields for userID.
// A second import of the same place returns ErrAlreadyImported together with
// the existing record.
func (s *PlaceService) Import(ctx context.Context, userID string, in ImportInput) (*domain.ImportedPlace, error) {
	ctx, span := otel.Tracer("services/PlaceService").Start(ctx, "Import",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	fields, err := ParseFields(in.Fields)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.StringSlice("import.fields", fields.Names()))

	np, err := s.Resolver.Resolve(ctx, resolver.Request{Query: in.Query, UserID: userID})
	if err != nil {
		span.SetStatus(codes.Error, "resolve failed")
		return nil, err
	}

	rec := s.project(np, fields)
	rec.UserID = userID

	if fields.Has(FieldCity) {
		s.applyCity(ctx, rec, np, in.City)
	}

	created, err := repo.CreatePlace(ctx, s.DB, rec)
	if errors.Is(err, repo.ErrDuplicate) {
		existing, gerr := repo.GetPlaceByPlaceID(ctx, s.DB, userID, rec.PlaceID)
		if gerr != nil {
			return nil, ErrAlreadyImported
		}
		return existing, ErrAlreadyImported
	}
	if err != nil {
		span.SetStatus(codes.Error, "persist failed")
		return nil, err
	}
	span.SetAttributes(attribute.String("place.id", created.ID))
	return created, nil
}

// project copies the always-kept and the selected attributes.
func (s *PlaceService) project(np *domain.NormalizedPlace, fields FieldSet) *domain.ImportedPlace {
	rec := &domain.ImportedPlace{
		PlaceID:     np.PlaceID,
		Name:        np.Name,
		MapsURL:     np.MapsURL,
		SourceQuery: np.Query,
	}
	if np.CoordinateOnly && np.PlusCode != "" {
		rec.PlaceID = "pluscode:" + np.PlusCode
		if rec.Name == "" {
			rec.Name = np.PlusCode
		}
	}
	if fields.Has(FieldAddress) {
		rec.Address = np.FormattedAddress
	}
	if fields.Has(FieldWebsite) {
		rec.Website = np.Website
	}
	if fields.Has(FieldPhone) {
		rec.Phone = np.Phone
	}
	if fields.Has(FieldRating) {
		rec.Rating = np.Rating
		rec.RatingCount = np.RatingCount
	}
	if fields.Has(FieldPriceLevel) {
		rec.PriceLevel = np.PriceLevel
	}
	if fields.Has(FieldOpeningHours) {
		rec.OpeningHours = np.OpeningHours
	}
	if fields.Has(FieldTypes) {
		rec.Types = np.Types
	}
	if fields.Has(FieldLocation) && np.Location != nil {
		lat, lng := np.Location.Lat, np.Location.Lng
		rec.Lat, rec.Lng = &lat, &lng
		rec.PlusCode = np.PlusCode
	}
	if fields.Has(FieldPhotos) {
		rec.Photos = np.Photos
	}
	return rec
}

// applyCity fills the city columns. A failing city lookup is logged and the
// import proceeds without a city id.
func (s *PlaceService) applyCity(ctx context.Context, rec *domain.ImportedPlace, np *domain.NormalizedPlace, override string) {
	name := np.City
	if o := strings.TrimSpace(override); o != "" {
		name = cases.Title(s.CityLocale).String(strings.ToLower(o))
	}
	rec.CityName, rec.State, rec.Country = name, np.State, np.Country
	if name == "" || s.Cities == nil {
		return
	}
	id, err := s.Cities.ResolveCity(ctx, name, np.State, np.Country)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("city", name).Msg("city resolution failed")
		return
	}
	rec.CityID = &id
}

// ListPage returns a page of the user's imports, newest first.
func (s *PlaceService) ListPage(ctx context.Context, userID string, page, pageSize int) ([]domain.ImportedPlace, int64, error) {
	ctx, span := otel.Tracer("services/PlaceService").Start(ctx, "ListPage",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	total, err := repo.CountPlaces(ctx, s.DB, userID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.ImportedPlace{}, 0, nil
	}
	items, err := repo.ListPlacesPage(ctx, s.DB, userID, (page-1)*pageSize, pageSize)
	return items, total, err
}

// Stats returns the user's import count and latest change time, used for
// list ETags.
func (s *PlaceService) Stats(ctx context.Context, userID string) (int64, *time.Time, error) {
	return repo.PlacesStats(ctx, s.DB, userID)
}

// Get returns one of the user's imports.
func (s *PlaceService) Get(ctx context.Context, userID, id string) (*domain.ImportedPlace, error) {
	ctx, span := otel.Tracer("services/PlaceService").Start(ctx, "Get",
		trace.WithAttributes(attribute.String("user.id", userID), attribute.String("place.id", id)),
	)
	defer span.End()

	p, err := repo.GetPlace(ctx, s.DB, id, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrPlaceNotFound
	}
	return p, err
}

// Delete removes one of the user's imports.
func (s *PlaceService) Delete(ctx context.Context, userID, id string) error {
	ctx, span := otel.Tracer("services/PlaceService").Start(ctx, "Delete",
		trace.WithAttributes(attribute.String("user.id", userID), attribute.String("place.id", id)),
	)
	defer span.End()

	err := repo.DeletePlace(ctx, s.DB, id, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrPlaceNotFound
	}
	return err
}

// Replay returns the import previously recorded under key, if any.
func (s *PlaceService) Replay(ctx context.Context, userID, key string) (*domain.ImportedPlace, bool) {
	if s.DB == nil || strings.TrimSpace(key) == "" {
		return nil, false
	}
	rec, err := repo.GetIdempotency(ctx, s.DB, userID, IdempotencyScope, key, time.Now().UTC())
	if err != nil {
		return nil, false
	}
	p, err := repo.GetPlace(ctx, s.DB, rec.ResourceID, userID)
	if err != nil {
		return nil, false
	}
	return p, true
}

// Remember records the outcome of an import under key. It is best effort.
func (s *PlaceService) Remember(ctx context.Context, userID, key, placeID string, status int) {
	if s.DB == nil || strings.TrimSpace(key) == "" {
		return
	}
	ttl := s.IdempotencyTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if _, err := repo.CreateIdempotency(ctx, s.DB, userID, IdempotencyScope, key, placeID, status, ttl); err != nil && !errors.Is(err, repo.ErrDuplicate) {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("idempotency record not stored")
	}
}
