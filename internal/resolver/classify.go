// Package resolver turns an arbitrary user string (a Google Maps link, a
// place name or a postal address) into one canonical place record.
//
// Resolution is strictly sequential: URL identifier extraction, then text
// search over a few query variations, then nearby search around a
// coordinate hint, then (for address-shaped text) geocoding followed by
// nearby search. The first identifier found wins. Details are fetched once
// per identifier and cached.
package resolver

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	olc "github.com/google/open-location-code/go"

	"github.com/tbourn/go-places-backend/internal/domain"
)

// Hint sources, in the order they are tried.
const (
	HintAtPath   = "at_path"   // "@lat,lng" in the URL path
	HintDataPair = "data_pair" // "!3d<lat>!4d<lng>" in a data segment
	HintPlusCode = "plus_code" // a full Open Location Code
)

var (
	reAtPair   = regexp.MustCompile(`@(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)`)
	reDataPair = regexp.MustCompile(`!3d(-?\d+(?:\.\d+)?)!4d(-?\d+(?:\.\d+)?)`)
)

// Query is a classified input. It is immutable once built.
type Query struct {
	Raw        string         // input as received
	Text       string         // trimmed input
	IsURL      bool           // parsed with a scheme and a host
	URL        *url.URL       // set when IsURL
	Hint       *domain.LatLng // optional geographic hint
	HintSource string         // one of the Hint* constants when Hint is set
}

// Classify decides whether raw is a URL and extracts a coordinate hint. It
// performs no I/O and never fails; anything that is not a URL is text.
func Classify(raw string) Query {
	q := Query{Raw: raw, Text: strings.TrimSpace(raw)}
	if u, err := url.Parse(q.Text); err == nil && u.Scheme != "" && u.Host != "" {
		q.IsURL = true
		q.URL = u
	}

	if q.IsURL {
		if ll, ok := pairFrom(reAtPair, q.URL.Path); ok {
			q.Hint, q.HintSource = ll, HintAtPath
			return q
		}
		if ll, ok := pairFrom(reDataPair, q.URL.Path+"?"+q.URL.RawQuery); ok {
			q.Hint, q.HintSource = ll, HintDataPair
			return q
		}
		if seg := rawPlaceSegment(q.URL); seg != "" {
			if ll, ok := plusCodeIn(seg); ok {
				q.Hint, q.HintSource = ll, HintPlusCode
			}
		}
		return q
	}

	if ll, ok := plusCodeIn(q.Text); ok {
		q.Hint, q.HintSource = ll, HintPlusCode
	}
	return q
}

// pairFrom reads the first lat,lng pair matched by re and range-checks it.
func pairFrom(re *regexp.Regexp, s string) (*domain.LatLng, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	lat, err1 := strconv.ParseFloat(m[1], 64)
	lng, err2 := strconv.ParseFloat(m[2], 64)
	if err1 != nil || err2 != nil || !validLatLng(lat, lng) {
		return nil, false
	}
	return &domain.LatLng{Lat: lat, Lng: lng}, true
}

func validLatLng(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// plusCodeIn returns the centre of the first full plus code token in s.
// Short codes need a reference location and are ignored.
func plusCodeIn(s string) (*domain.LatLng, bool) {
	for _, tok := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '/' || r == '\t'
	}) {
		if !strings.Contains(tok, "+") || utf8.RuneCountInString(tok) < 9 {
			continue
		}
		code := strings.ToUpper(tok)
		if olc.CheckFull(code) != nil {
			continue
		}
		area, err := olc.Decode(code)
		if err != nil {
			continue
		}
		lat, lng := area.Center()
		return &domain.LatLng{Lat: lat, Lng: lng}, true
	}
	return nil, false
}

// rawPlaceSegment returns the path-unescaped "/place/<name>/" component.
func rawPlaceSegment(u *url.URL) string {
	if u == nil {
		return ""
	}
	parts := strings.Split(u.EscapedPath(), "/")
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] != "place" || parts[i+1] == "" {
			continue
		}
		name, err := url.PathUnescape(parts[i+1])
		if err != nil {
			return ""
		}
		return strings.TrimSpace(name)
	}
	return ""
}

// placeSegment is rawPlaceSegment with '+' read as a space, the way Maps
// encodes place names.
func placeSegment(u *url.URL) string {
	return strings.TrimSpace(strings.ReplaceAll(rawPlaceSegment(u), "+", " "))
}
