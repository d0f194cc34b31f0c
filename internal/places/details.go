package places

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// detailsFieldMask is the fixed set of fields requested for every place.
var detailsFieldMask = strings.Join([]string{
	"id",
	"displayName",
	"formattedAddress",
	"websiteUri",
	"nationalPhoneNumber",
	"internationalPhoneNumber",
	"rating",
	"userRatingCount",
	"regularOpeningHours",
	"types",
	"photos",
	"location",
	"addressComponents",
	"priceLevel",
	"googleMapsUri",
}, ",")

// Details fetches a single place. Any non-2xx answer is returned as
// *APIError; it is never retried here.
func (c *Client) Details(ctx context.Context, placeID string) (*RawPlace, error) {
	placeID = strings.TrimSpace(placeID)
	if placeID == "" {
		return nil, ErrMissingID
	}
	u := c.baseURL + "/v1/places/" + url.PathEscape(placeID)
	if c.language != "" {
		u += "?languageCode=" + url.QueryEscape(c.language)
	}
	var raw RawPlace
	if err := c.do(ctx, "details", http.MethodGet, u, detailsFieldMask, nil, &raw); err != nil {
		return nil, err
	}
	if raw.Identifier() == "" {
		return nil, eris.Errorf("places: details for %q returned no identifier", placeID)
	}
	return &raw, nil
}

// PhotoURL turns a photo reference into a fetchable media URL. References of
// the form "places/<id>/photos/<ref>" use the Places API (New) media
// endpoint; anything else is treated as a legacy photo_reference.
func (c *Client) PhotoURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	w := strconv.Itoa(c.photoWidth)
	if strings.HasPrefix(ref, "places/") {
		q := url.Values{"maxWidthPx": {w}, "key": {c.apiKey}}
		return c.baseURL + "/v1/" + ref + "/media?" + q.Encode()
	}
	q := url.Values{"maxwidth": {w}, "photo_reference": {ref}, "key": {c.apiKey}}
	return c.legacyBaseURL + "/maps/api/place/photo?" + q.Encode()
}
