package repo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-places-backend/internal/domain"
)

// UpsertCity returns the city identified by (name, state, country),
// creating it when missing. Concurrent callers converge on one row.
func UpsertCity(ctx context.Context, db *gorm.DB, name, state, country string) (*domain.City, error) {
	c := &domain.City{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		State:     strings.TrimSpace(state),
		Country:   strings.TrimSpace(country),
		CreatedAt: time.Now().UTC(),
	}
	tx := db.WithContext(ctx)
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(c).Error; err != nil {
		return nil, err
	}
	var got domain.City
	if err := tx.Where("name = ? AND state = ? AND country = ?", c.Name, c.State, c.Country).
		First(&got).Error; err != nil {
		return nil, err
	}
	return &got, nil
}

// SQLiteCities resolves city names against the local cities table.
type SQLiteCities struct {
	DB *gorm.DB
}

// ResolveCity implements the city resolver used by imports.
func (s SQLiteCities) ResolveCity(ctx context.Context, name, state, country string) (string, error) {
	c, err := UpsertCity(ctx, s.DB, name, state, country)
	if err != nil {
		return "", err
	}
	return c.ID, nil
}
