package places

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// RawPlace is a details response as delivered by the provider. It accepts
// both the Places API (New) camelCase shape and the legacy snake_case shape
// so stored or proxied legacy payloads normalize the same way.
type RawPlace struct {
	// Places API (New)
	ID                       string             `json:"id"`
	ResourceName             string             `json:"-"`
	DisplayName              Text               `json:"displayName"`
	FormattedAddress         string             `json:"formattedAddress"`
	WebsiteURI               string             `json:"websiteUri"`
	NationalPhoneNumber      string             `json:"nationalPhoneNumber"`
	InternationalPhoneNumber string             `json:"internationalPhoneNumber"`
	UserRatingCount          Number             `json:"userRatingCount"`
	RegularOpeningHours      *OpeningHours      `json:"regularOpeningHours"`
	Location                 *NewLocation       `json:"location"`
	AddressComponents        []AddressComponent `json:"addressComponents"`
	GoogleMapsURI            string             `json:"googleMapsUri"`

	// Shared keys
	Rating     Number     `json:"rating"`
	Types      []string   `json:"types"`
	Photos     []RawPhoto `json:"photos"`
	PriceLevel PriceLevel `json:"priceLevel"`

	// Legacy Places API
	PlaceID                 string             `json:"place_id"`
	LegacyName              Text               `json:"-"`
	LegacyFormattedAddress  string             `json:"formatted_address"`
	Website                 string             `json:"website"`
	FormattedPhoneNumber    string             `json:"formatted_phone_number"`
	LegacyIntlPhoneNumber   string             `json:"international_phone_number"`
	UserRatingsTotal        Number             `json:"user_ratings_total"`
	OpeningHours            *OpeningHours      `json:"opening_hours"`
	Geometry                *Geometry          `json:"geometry"`
	LegacyAddressComponents []AddressComponent `json:"address_components"`
	LegacyPriceLevel        PriceLevel         `json:"price_level"`
	URL                     string             `json:"url"`
}

// UnmarshalJSON splits the overloaded "name" key: in the new API it is the
// resource name ("places/<id>"), in the legacy API the display name.
func (r *RawPlace) UnmarshalJSON(b []byte) error {
	type plain RawPlace
	var aux struct {
		plain
		Name Text `json:"name"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*r = RawPlace(aux.plain)
	if strings.HasPrefix(string(aux.Name), "places/") {
		r.ResourceName = string(aux.Name)
	} else {
		r.LegacyName = aux.Name
	}
	return nil
}

// Identifier returns whichever identifier the payload carries.
func (r *RawPlace) Identifier() string {
	if id := strings.TrimSpace(r.ID); id != "" {
		return id
	}
	if id := strings.TrimSpace(r.PlaceID); id != "" {
		return id
	}
	return strings.TrimPrefix(r.ResourceName, "places/")
}

// OpeningHours covers regularOpeningHours and opening_hours.
type OpeningHours struct {
	WeekdayDescriptions []string `json:"weekdayDescriptions"`
	WeekdayText         []string `json:"weekday_text"`
}

// Lines returns the human readable weekday lines.
func (o *OpeningHours) Lines() []string {
	if o == nil {
		return nil
	}
	if len(o.WeekdayDescriptions) > 0 {
		return o.WeekdayDescriptions
	}
	return o.WeekdayText
}

// NewLocation is {"latitude": .., "longitude": ..}.
type NewLocation struct {
	Latitude  Number `json:"latitude"`
	Longitude Number `json:"longitude"`
}

// Geometry is the legacy {"location": {"lat": .., "lng": ..}}.
type Geometry struct {
	Location *struct {
		Lat Number `json:"lat"`
		Lng Number `json:"lng"`
	} `json:"location"`
}

// AddressComponent covers both key styles.
type AddressComponent struct {
	LongText  string   `json:"longText"`
	ShortText string   `json:"shortText"`
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// Long returns the long form of the component.
func (a AddressComponent) Long() string {
	if a.LongText != "" {
		return a.LongText
	}
	return a.LongName
}

// RawPhoto is a photo reference in either generation.
type RawPhoto struct {
	Name           string `json:"name"`
	PhotoReference string `json:"photo_reference"`
}

// Reference returns the opaque reference used to build a media URL.
func (p RawPhoto) Reference() string {
	if p.Name != "" {
		return p.Name
	}
	return p.PhotoReference
}

// Text decodes either a JSON string or an object with a "text" field
// (LocalizedText). Anything else decodes to "".
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
	case '{':
		var obj struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		*t = Text(obj.Text)
	default:
		*t = ""
	}
	return nil
}

// Number decodes a JSON number or a numeric string. Missing, null or
// non-numeric values leave Valid false instead of failing the whole payload.
type Number struct {
	Value float64
	Valid bool
}

func (n *Number) UnmarshalJSON(b []byte) error {
	*n = Number{}
	s := strings.Trim(string(bytes.TrimSpace(b)), `"`)
	if s == "" || s == "null" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	*n = Number{Value: f, Valid: true}
	return nil
}

// Float returns a pointer to the value or nil.
func (n Number) Float() *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// Int returns a pointer to the truncated value or nil.
func (n Number) Int() *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Value)
	return &v
}

// PriceLevel decodes the legacy 0..4 integer and the new PRICE_LEVEL_* enum.
type PriceLevel struct {
	Level int
	Valid bool
}

var priceLevels = map[string]int{
	"PRICE_LEVEL_FREE":           0,
	"PRICE_LEVEL_INEXPENSIVE":    1,
	"PRICE_LEVEL_MODERATE":       2,
	"PRICE_LEVEL_EXPENSIVE":      3,
	"PRICE_LEVEL_VERY_EXPENSIVE": 4,
}

func (p *PriceLevel) UnmarshalJSON(b []byte) error {
	*p = PriceLevel{}
	s := strings.Trim(string(bytes.TrimSpace(b)), `"`)
	if lvl, ok := priceLevels[strings.ToUpper(s)]; ok {
		*p = PriceLevel{Level: lvl, Valid: true}
		return nil
	}
	if i, err := strconv.Atoi(s); err == nil && i >= 0 && i <= 4 {
		*p = PriceLevel{Level: i, Valid: true}
	}
	return nil
}

// Ptr returns a pointer to the level or nil.
func (p PriceLevel) Ptr() *int {
	if !p.Valid {
		return nil
	}
	v := p.Level
	return &v
}
