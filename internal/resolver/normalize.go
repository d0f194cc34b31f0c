package resolver

import (
	"net/url"
	"path"
	"strconv"
	"strings"

	olc "github.com/google/open-location-code/go"
	"golang.org/x/text/unicode/norm"

	"github.com/tbourn/go-places-backend/internal/domain"
	"github.com/tbourn/go-places-backend/internal/places"
	"github.com/tbourn/go-places-backend/internal/sysutil"
)

// MaxPhotos caps the photos carried by a NormalizedPlace.
const MaxPhotos = 6

const plusCodeLength = 10

// Normalizer maps a raw provider record onto a NormalizedPlace. It is pure:
// no I/O, and it never fails on missing fields.
type Normalizer struct {
	// PhotoURL expands a photo reference into a media URL.
	PhotoURL func(ref string) string
	// MaxPhotos overrides the photo cap when > 0.
	MaxPhotos int
}

// Normalize builds the canonical record. query is echoed back; when wasURL
// the canonical maps URL is the query itself.
func (n Normalizer) Normalize(raw *places.RawPlace, query string, wasURL bool) *domain.NormalizedPlace {
	out := &domain.NormalizedPlace{
		Query:        query,
		OpeningHours: []string{},
		Types:        []string{},
		Photos:       []domain.Photo{},
	}
	if raw == nil {
		return out
	}

	out.PlaceID = raw.Identifier()
	out.Name = clean(sysutil.FirstNonEmpty(string(raw.DisplayName), string(raw.LegacyName)))
	out.FormattedAddress = clean(sysutil.FirstNonEmpty(raw.FormattedAddress, raw.LegacyFormattedAddress))
	out.Website = strings.TrimSpace(sysutil.FirstNonEmpty(raw.WebsiteURI, raw.Website))
	out.Phone = strings.TrimSpace(sysutil.FirstNonEmpty(raw.NationalPhoneNumber, raw.FormattedPhoneNumber, raw.InternationalPhoneNumber, raw.LegacyIntlPhoneNumber))
	out.Rating = raw.Rating.Float()
	out.RatingCount = raw.UserRatingCount.Int()
	if out.RatingCount == nil {
		out.RatingCount = raw.UserRatingsTotal.Int()
	}
	out.PriceLevel = raw.PriceLevel.Ptr()
	if out.PriceLevel == nil {
		out.PriceLevel = raw.LegacyPriceLevel.Ptr()
	}
	if lines := raw.RegularOpeningHours.Lines(); len(lines) > 0 {
		out.OpeningHours = append(out.OpeningHours, lines...)
	} else {
		out.OpeningHours = append(out.OpeningHours, raw.OpeningHours.Lines()...)
	}
	out.Types = append(out.Types, raw.Types...)

	out.Location = location(raw)
	if out.Location != nil {
		out.PlusCode = olc.Encode(out.Location.Lat, out.Location.Lng, plusCodeLength)
	}

	comps := raw.AddressComponents
	if len(comps) == 0 {
		comps = raw.LegacyAddressComponents
	}
	out.City, out.State, out.Country = locality(comps)

	out.MapsURL = canonicalMapsURL(query, wasURL, out.PlaceID)
	out.Photos = n.photos(raw.Photos)
	return out
}

func (n Normalizer) photos(raw []places.RawPhoto) []domain.Photo {
	limit := n.MaxPhotos
	if limit <= 0 {
		limit = MaxPhotos
	}
	out := make([]domain.Photo, 0, min(len(raw), limit))
	for _, p := range raw {
		if len(out) == limit {
			break
		}
		ref := strings.TrimSpace(p.Reference())
		if ref == "" {
			continue
		}
		ph := domain.Photo{ID: path.Base(ref), Reference: ref}
		if n.PhotoURL != nil {
			ph.URL = n.PhotoURL(ref)
		}
		out = append(out, ph)
	}
	return out
}

func location(raw *places.RawPlace) *domain.LatLng {
	if l := raw.Location; l != nil && l.Latitude.Valid && l.Longitude.Valid && validLatLng(l.Latitude.Value, l.Longitude.Value) {
		return &domain.LatLng{Lat: l.Latitude.Value, Lng: l.Longitude.Value}
	}
	if g := raw.Geometry; g != nil && g.Location != nil && g.Location.Lat.Valid && g.Location.Lng.Valid && validLatLng(g.Location.Lat.Value, g.Location.Lng.Value) {
		return &domain.LatLng{Lat: g.Location.Lat.Value, Lng: g.Location.Lng.Value}
	}
	return nil
}

// locality scans address components once; the first component of each
// category wins, with city preferring locality over postal_town over
// sublocality and state preferring level 1 over level 2.
func locality(comps []places.AddressComponent) (city, state, country string) {
	first := map[string]string{}
	for _, c := range comps {
		name := clean(c.Long())
		if name == "" {
			continue
		}
		for _, t := range c.Types {
			if _, seen := first[t]; !seen {
				first[t] = name
			}
		}
	}
	city = sysutil.FirstNonEmpty(first["locality"], first["postal_town"], first["sublocality"])
	state = sysutil.FirstNonEmpty(first["administrative_area_level_1"], first["administrative_area_level_2"])
	country = first["country"]
	return city, state, country
}

// canonicalMapsURL echoes a URL query verbatim, otherwise links by id.
func canonicalMapsURL(query string, wasURL bool, placeID string) string {
	if wasURL {
		return query
	}
	if placeID == "" {
		return ""
	}
	return "https://www.google.com/maps/place/?q=place_id:" + url.QueryEscape(placeID)
}

// coordinateMapsURL links to a bare coordinate.
func coordinateMapsURL(ll domain.LatLng) string {
	q := strconv.FormatFloat(ll.Lat, 'f', 6, 64) + "," + strconv.FormatFloat(ll.Lng, 'f', 6, 64)
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(q)
}

func clean(s string) string { return norm.NFC.String(strings.TrimSpace(s)) }
