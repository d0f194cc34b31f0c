package services

import (
	"fmt"
	"sort"
	"strings"
)

// Field names a group of NormalizedPlace attributes a user can keep when
// importing. The provider identifier, name, maps link and source query are
// always stored.
type Field string

const (
	FieldAddress      Field = "address"
	FieldWebsite      Field = "website"
	FieldPhone        Field = "phone"
	FieldRating       Field = "rating"
	FieldPriceLevel   Field = "price_level"
	FieldOpeningHours Field = "opening_hours"
	FieldTypes        Field = "types"
	FieldLocation     Field = "location"
	FieldPhotos       Field = "photos"
	FieldCity         Field = "city"
)

// AllFields is the selection used when an import names none.
var AllFields = []Field{
	FieldAddress, FieldWebsite, FieldPhone, FieldRating, FieldPriceLevel,
	FieldOpeningHours, FieldTypes, FieldLocation, FieldPhotos, FieldCity,
}

// fieldAliases maps the NormalizedPlace JSON names and a few common
// spellings onto fields.
var fieldAliases = map[string]Field{
	"formatted_address": FieldAddress,
	"phone_number":      FieldPhone,
	"rating_count":      FieldRating,
	"hours":             FieldOpeningHours,
	"coordinates":       FieldLocation,
	"plus_code":         FieldLocation,
	"state":             FieldCity,
	"country":           FieldCity,
}

// FieldSet is a parsed selection.
type FieldSet map[Field]struct{}

// Has reports whether f is selected.
func (s FieldSet) Has(f Field) bool {
	_, ok := s[f]
	return ok
}

// Names returns the selection sorted, for logs and traces.
func (s FieldSet) Names() []string {
	out := make([]string, 0, len(s))
	for f := range s {
		out = append(out, string(f))
	}
	sort.Strings(out)
	return out
}

// ParseFields resolves names (case-insensitive, aliases allowed) into a
// FieldSet. An empty list selects AllFields. "name" is accepted and ignored
// since it is always stored.
func ParseFields(names []string) (FieldSet, error) {
	set := FieldSet{}
	if len(names) == 0 {
		for _, f := range AllFields {
			set[f] = struct{}{}
		}
		return set, nil
	}
	known := make(map[Field]struct{}, len(AllFields))
	for _, f := range AllFields {
		known[f] = struct{}{}
	}
	for _, raw := range names {
		n := strings.ToLower(strings.TrimSpace(raw))
		if n == "" || n == "name" {
			continue
		}
		f := Field(n)
		if alias, ok := fieldAliases[n]; ok {
			f = alias
		}
		if _, ok := known[f]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, raw)
		}
		set[f] = struct{}{}
	}
	return set, nil
}
