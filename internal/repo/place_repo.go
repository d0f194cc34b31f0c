// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// ImportedPlace model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions. They follow the "thin repository"
// approach: no business logic, only persistence and query composition.
//
// Error semantics:
//   - Missing rows yield ErrNotFound.
//   - A second import of the same provider identifier by the same user
//     yields ErrDuplicate.
//   - Any other DB error is propagated unchanged.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-places-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreatePlace inserts p, assigning its ID and timestamps. A soft-deleted
// import of the same identifier is purged first so a place can be imported
// again after removal.
func CreatePlace(ctx context.Context, db *gorm.DB, p *domain.ImportedPlace) (*domain.ImportedPlace, error) {
	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("user_id = ? AND place_id = ? AND deleted_at IS NOT NULL", p.UserID, p.PlaceID).
			Delete(&domain.ImportedPlace{}).Error; err != nil {
			return err
		}
		return tx.Create(p).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return p, nil
}

// GetPlace fetches one import by ID and owner.
func GetPlace(ctx context.Context, db *gorm.DB, id, userID string) (*domain.ImportedPlace, error) {
	var p domain.ImportedPlace
	err := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPlaceByPlaceID fetches the user's import of a provider identifier.
func GetPlaceByPlaceID(ctx context.Context, db *gorm.DB, userID, placeID string) (*domain.ImportedPlace, error) {
	var p domain.ImportedPlace
	err := db.WithContext(ctx).
		Where("user_id = ? AND place_id = ?", userID, placeID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CountPlaces returns the number of live imports owned by userID.
func CountPlaces(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.ImportedPlace{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}

// ListPlacesPage returns a page of imports for userID, newest first.
// The caller computes offset and limit.
func ListPlacesPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.ImportedPlace, error) {
	var out []domain.ImportedPlace
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// DeletePlace soft-deletes an import. It returns ErrNotFound when no live
// row matches id and userID.
func DeletePlace(ctx context.Context, db *gorm.DB, id, userID string) error {
	res := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.ImportedPlace{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
