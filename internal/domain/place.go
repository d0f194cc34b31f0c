package domain

import "slices"

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Photo describes one provider photo. URL is a fetchable media URL built from
// Reference; ID is stable within a place (the trailing segment of the
// reference).
type Photo struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Reference string `json:"reference"`
}

// NormalizedPlace is the canonical place record produced by the resolution
// pipeline, independent of which provider response generation it came from.
//
// A NormalizedPlace always carries either a PlaceID or CoordinateOnly=true
// together with a Location.
type NormalizedPlace struct {
	PlaceID          string   `json:"place_id,omitempty"`
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	Website          string   `json:"website,omitempty"`
	Phone            string   `json:"phone,omitempty"`
	Rating           *float64 `json:"rating"`
	RatingCount      *int     `json:"rating_count"`
	OpeningHours     []string `json:"opening_hours"`
	PriceLevel       *int     `json:"price_level"`
	Types            []string `json:"types"`
	Location         *LatLng  `json:"location"`
	PlusCode         string   `json:"plus_code,omitempty"`
	MapsURL          string   `json:"maps_url"`
	Photos           []Photo  `json:"photos"`
	City             string   `json:"city,omitempty"`
	State            string   `json:"state,omitempty"`
	Country          string   `json:"country,omitempty"`
	Query            string   `json:"query"`
	CoordinateOnly   bool     `json:"coordinate_only"`
}

// Clone returns a deep copy so cached values are never shared with callers.
func (p *NormalizedPlace) Clone() *NormalizedPlace {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Rating != nil {
		v := *p.Rating
		cp.Rating = &v
	}
	if p.RatingCount != nil {
		v := *p.RatingCount
		cp.RatingCount = &v
	}
	if p.PriceLevel != nil {
		v := *p.PriceLevel
		cp.PriceLevel = &v
	}
	if p.Location != nil {
		v := *p.Location
		cp.Location = &v
	}
	cp.OpeningHours = slices.Clone(p.OpeningHours)
	cp.Types = slices.Clone(p.Types)
	cp.Photos = slices.Clone(p.Photos)
	return &cp
}
