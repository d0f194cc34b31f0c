package places

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"googlemaps.github.io/maps"

	"github.com/tbourn/go-places-backend/internal/domain"
)

// Geocoder turns a postal address into coordinates using the Geocoding API.
type Geocoder struct {
	client *maps.Client
}

// GeocoderOption configures NewGeocoder.
type GeocoderOption func(*geocoderOptions)

type geocoderOptions struct {
	baseURL    string
	httpClient *http.Client
}

// WithGeocodeBaseURL overrides the Geocoding API root.
func WithGeocodeBaseURL(u string) GeocoderOption {
	return func(o *geocoderOptions) { o.baseURL = strings.TrimRight(u, "/") }
}

// WithGeocodeHTTPClient sets the HTTP client used by the geocoder.
func WithGeocodeHTTPClient(hc *http.Client) GeocoderOption {
	return func(o *geocoderOptions) { o.httpClient = hc }
}

// NewGeocoder builds a Geocoder authenticated with apiKey.
func NewGeocoder(apiKey string, opts ...GeocoderOption) (*Geocoder, error) {
	o := geocoderOptions{httpClient: &http.Client{Timeout: 10 * time.Second}}
	for _, opt := range opts {
		opt(&o)
	}
	mopts := []maps.ClientOption{maps.WithAPIKey(apiKey), maps.WithHTTPClient(o.httpClient)}
	if o.baseURL != "" {
		mopts = append(mopts, maps.WithBaseURL(o.baseURL))
	}
	client, err := maps.NewClient(mopts...)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: create client")
	}
	return &Geocoder{client: client}, nil
}

// Geocode returns the location of the first result, or nil when the address
// matched nothing.
func (g *Geocoder) Geocode(ctx context.Context, address string) (loc *domain.LatLng, err error) {
	start := time.Now()
	defer func() { observeCall("geocode", start, err) }()

	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		if strings.Contains(err.Error(), "ZERO_RESULTS") {
			return nil, nil
		}
		return nil, eris.Wrap(err, "geocode: request")
	}
	if len(results) == 0 {
		return nil, nil
	}
	l := results[0].Geometry.Location
	return &domain.LatLng{Lat: l.Lat, Lng: l.Lng}, nil
}
