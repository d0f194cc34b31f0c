package places

import (
	"context"
	"net/http"
	"strings"

	"github.com/tbourn/go-places-backend/internal/domain"
)

const searchFieldMask = "places.id,places.displayName,places.formattedAddress,places.location"

// Candidate is one search hit. Only the first candidate of a response is
// ever used by callers; the rest are informational.
type Candidate struct {
	ID               string
	Name             string
	FormattedAddress string
	Location         *domain.LatLng
}

type latLngJSON struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type circle struct {
	Center latLngJSON `json:"center"`
	Radius float64    `json:"radius"`
}

type area struct {
	Circle circle `json:"circle"`
}

type searchTextRequest struct {
	TextQuery    string `json:"textQuery"`
	LanguageCode string `json:"languageCode,omitempty"`
	LocationBias *area  `json:"locationBias,omitempty"`
}

type searchNearbyRequest struct {
	LocationRestriction area   `json:"locationRestriction"`
	MaxResultCount      int    `json:"maxResultCount,omitempty"`
	RankPreference      string `json:"rankPreference,omitempty"`
	LanguageCode        string `json:"languageCode,omitempty"`
}

type searchResponse struct {
	Places []struct {
		ID               string      `json:"id"`
		DisplayName      Text        `json:"displayName"`
		FormattedAddress string      `json:"formattedAddress"`
		Location         *latLngJSON `json:"location"`
	} `json:"places"`
}

func (r searchResponse) candidates() []Candidate {
	out := make([]Candidate, 0, len(r.Places))
	for _, p := range r.Places {
		if strings.TrimSpace(p.ID) == "" {
			continue
		}
		c := Candidate{ID: p.ID, Name: string(p.DisplayName), FormattedAddress: p.FormattedAddress}
		if p.Location != nil {
			c.Location = &domain.LatLng{Lat: p.Location.Latitude, Lng: p.Location.Longitude}
		}
		out = append(out, c)
	}
	return out
}

// SearchText runs a Text Search (New). When bias is non-nil the search is
// biased to a circle of radius metres around it.
func (c *Client) SearchText(ctx context.Context, query string, bias *domain.LatLng, radius float64) ([]Candidate, error) {
	body := searchTextRequest{TextQuery: query, LanguageCode: c.language}
	if bias != nil {
		body.LocationBias = &area{Circle: circle{
			Center: latLngJSON{Latitude: bias.Lat, Longitude: bias.Lng},
			Radius: radius,
		}}
	}
	var resp searchResponse
	if err := c.do(ctx, "searchText", http.MethodPost, c.baseURL+"/v1/places:searchText", searchFieldMask, body, &resp); err != nil {
		return nil, err
	}
	return resp.candidates(), nil
}

// SearchNearby runs a Nearby Search (New) restricted to a circle of radius
// metres around center, ranked by distance.
func (c *Client) SearchNearby(ctx context.Context, center domain.LatLng, radius float64, maxResults int) ([]Candidate, error) {
	body := searchNearbyRequest{
		LocationRestriction: area{Circle: circle{
			Center: latLngJSON{Latitude: center.Lat, Longitude: center.Lng},
			Radius: radius,
		}},
		MaxResultCount: maxResults,
		RankPreference: "DISTANCE",
		LanguageCode:   c.language,
	}
	var resp searchResponse
	if err := c.do(ctx, "searchNearby", http.MethodPost, c.baseURL+"/v1/places:searchNearby", searchFieldMask, body, &resp); err != nil {
		return nil, err
	}
	return resp.candidates(), nil
}
