// Package domain defines the place records produced by the resolution
// pipeline and the persistence models for imported places and cities.
// The persistence types are mapped with GORM.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// City is a normalized locality referenced by imported places. The
// (name, state, country) triple is unique, which makes name-to-id
// resolution an upsert.
type City struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name"       gorm:"type:varchar(255);not null;uniqueIndex:ux_city_name_state_country,priority:1"`
	State     string    `json:"state"      gorm:"type:varchar(255);not null;default:'';uniqueIndex:ux_city_name_state_country,priority:2"`
	Country   string    `json:"country"    gorm:"type:varchar(255);not null;default:'';uniqueIndex:ux_city_name_state_country,priority:3"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for City.
func (City) TableName() string { return "cities" }

// ImportedPlace is a place a user chose to keep. Only the fields selected at
// import time are populated; the provider identifier is always stored and is
// unique per user.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - UserID: owner; part of the (user_id, place_id) unique index.
//   - PlaceID: provider identifier, or empty for coordinate-only imports.
//   - CityID: optional reference to cities.id.
//   - OpeningHours/Types/Photos: stored as JSON text.
type ImportedPlace struct {
	ID           string         `json:"id"                gorm:"type:char(36);primaryKey"`
	UserID       string         `json:"user_id"           gorm:"type:varchar(64);not null;uniqueIndex:ux_user_place,priority:1;index:idx_user_imports,priority:1"`
	PlaceID      string         `json:"place_id"          gorm:"type:varchar(255);not null;default:'';uniqueIndex:ux_user_place,priority:2"`
	Name         string         `json:"name"              gorm:"type:varchar(255);not null"`
	Address      string         `json:"address,omitempty" gorm:"type:text"`
	Website      string         `json:"website,omitempty" gorm:"type:text"`
	Phone        string         `json:"phone,omitempty"   gorm:"type:varchar(64)"`
	Rating       *float64       `json:"rating,omitempty"`
	RatingCount  *int           `json:"rating_count,omitempty"`
	PriceLevel   *int           `json:"price_level,omitempty"`
	Lat          *float64       `json:"lat,omitempty"`
	Lng          *float64       `json:"lng,omitempty"`
	PlusCode     string         `json:"plus_code,omitempty" gorm:"type:varchar(32)"`
	OpeningHours []string       `json:"opening_hours,omitempty" gorm:"serializer:json"`
	Types        []string       `json:"types,omitempty"         gorm:"serializer:json"`
	Photos       []Photo        `json:"photos,omitempty"        gorm:"serializer:json"`
	CityID       *string        `json:"city_id,omitempty" gorm:"type:char(36);index"`
	CityName     string         `json:"city,omitempty"    gorm:"type:varchar(255)"`
	State        string         `json:"state,omitempty"   gorm:"type:varchar(255)"`
	Country      string         `json:"country,omitempty" gorm:"type:varchar(255)"`
	MapsURL      string         `json:"maps_url"          gorm:"type:text"`
	SourceQuery  string         `json:"source_query"      gorm:"type:text"`
	CreatedAt    time.Time      `json:"created_at"        gorm:"index:idx_user_imports,priority:2"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-"                 gorm:"index"`
}

// TableName returns the database table name for ImportedPlace.
func (ImportedPlace) TableName() string { return "imported_places" }
