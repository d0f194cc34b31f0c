package resolver

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	// Data-segment patterns, most specific first.
	reDataIDs = []*regexp.Regexp{
		regexp.MustCompile(`!4m\d+(?:![0-9]+[a-z][^!]*)*?!3m1!1s([^!?&#/]+)`),
		regexp.MustCompile(`!3m1!1s([^!?&#/]+)`),
		regexp.MustCompile(`!1s([^!?&#/]+)`),
	}

	// Provider identifiers are URL-safe base64-ish tokens.
	reIDToken = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

	// Hex feature ids ("0x…:0x…") and CIDs name a place but cannot be passed
	// to the details endpoint.
	reFeatureID = regexp.MustCompile(`(?i)^0x[0-9a-f]+:0x[0-9a-f]+$`)
)

// minDataSegmentID keeps short "!1s" payloads such as language codes from
// being mistaken for identifiers.
const minDataSegmentID = 16

// ExtractIdentifier returns the provider identifier embedded in a Maps URL,
// or "" when the URL carries none that is directly usable. Rules, in order:
// q=place_id:<id>, query_place_id=<id>, data segments in the path, then a
// data= query parameter. A cid= parameter is recognized but yields "".
//
// It never panics and is idempotent.
func ExtractIdentifier(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u == nil {
		return ""
	}
	qs := u.Query()

	if q := strings.TrimSpace(qs.Get("q")); len(q) > len("place_id:") && strings.EqualFold(q[:len("place_id:")], "place_id:") {
		if id := strings.TrimSpace(q[len("place_id:"):]); reIDToken.MatchString(id) {
			return id
		}
	}
	if id := strings.TrimSpace(qs.Get("query_place_id")); id != "" && reIDToken.MatchString(id) {
		return id
	}
	if id := idFromData(u.Path); id != "" {
		return id
	}
	if id := idFromData(qs.Get("data")); id != "" {
		return id
	}
	// cid=<n> (and ftid=0x…:0x…) identify a place only by feature, which the
	// details endpoint does not accept.
	return ""
}

// idFromData scans an encoded data string with each pattern in turn and
// returns the first usable identifier.
func idFromData(s string) string {
	if !strings.Contains(s, "!") {
		return ""
	}
	for _, re := range reDataIDs {
		for _, m := range re.FindAllStringSubmatch(s, -1) {
			if id := usableID(m[1]); id != "" {
				return id
			}
		}
	}
	return ""
}

func usableID(tok string) string {
	if dec, err := url.PathUnescape(tok); err == nil {
		tok = dec
	}
	tok = strings.TrimSpace(tok)
	if reFeatureID.MatchString(tok) {
		return ""
	}
	if len(tok) < minDataSegmentID || !reIDToken.MatchString(tok) {
		return ""
	}
	return tok
}
