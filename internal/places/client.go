// Package places is a thin client for the Google Places API (New) and the
// Geocoding API. It speaks the wire format only; choosing which calls to make
// and how to interpret them belongs to the resolver.
package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

const (
	defaultBaseURL       = "https://places.googleapis.com"
	defaultLegacyBaseURL = "https://maps.googleapis.com"
	defaultPhotoWidth    = 800

	// maxErrorBody caps how much of an error body ends up in logs.
	maxErrorBody = 512
)

// ErrMissingID is returned by Details when no identifier is given.
var ErrMissingID = eris.New("places: missing place id")

// APIError is a non-2xx answer from the provider.
type APIError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("places: %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// Client calls the Places API (New). It is safe for concurrent use.
type Client struct {
	httpClient    *http.Client
	apiKey        string
	baseURL       string
	legacyBaseURL string
	language      string
	photoWidth    int
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL overrides the Places API root, e.g. for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithLegacyBaseURL overrides the root used for legacy photo references.
func WithLegacyBaseURL(u string) Option {
	return func(c *Client) { c.legacyBaseURL = strings.TrimRight(u, "/") }
}

// WithLanguage sets the languageCode sent with searches and details.
func WithLanguage(lang string) Option {
	return func(c *Client) { c.language = lang }
}

// WithPhotoMaxWidth sets the width requested in media URLs.
func WithPhotoMaxWidth(px int) Option {
	return func(c *Client) {
		if px > 0 {
			c.photoWidth = px
		}
	}
}

// NewClient returns a Client authenticated with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		apiKey:        apiKey,
		baseURL:       defaultBaseURL,
		legacyBaseURL: defaultLegacyBaseURL,
		photoWidth:    defaultPhotoWidth,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends one request and decodes a 2xx JSON body into out.
func (c *Client) do(ctx context.Context, endpoint, method, url, fieldMask string, body any, out any) (err error) {
	start := time.Now()
	defer func() { observeCall(endpoint, start, err) }()

	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return eris.Wrapf(err, "places: %s encode request", endpoint)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, rdr)
	if err != nil {
		return eris.Wrapf(err, "places: %s build request", endpoint)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return eris.Wrapf(err, "places: %s request", endpoint)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrapf(err, "places: %s read body", endpoint)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := string(raw)
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return &APIError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: strings.TrimSpace(snippet)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return eris.Wrapf(err, "places: %s parse response", endpoint)
	}
	return nil
}
