package places

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// providerCalls counts outbound calls by endpoint and outcome
	// ("ok", "error", or the HTTP status code for provider rejections).
	providerCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "places_provider_requests_total",
			Help: "Outbound calls to the places provider.",
		},
		[]string{"endpoint", "outcome"},
	)

	providerLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "places_provider_request_duration_seconds",
			Help:    "Duration of outbound calls to the places provider.",
			Buckets: []float64{.05, .1, .25, .5, 1, 2, 4, 8},
		},
		[]string{"endpoint"},
	)
)

func init() {
	prometheus.MustRegister(providerCalls, providerLat)
}

func observeCall(endpoint string, start time.Time, err error) {
	outcome := "ok"
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		outcome = strconv.Itoa(apiErr.StatusCode)
	case err != nil:
		outcome = "error"
	}
	providerCalls.WithLabelValues(endpoint, outcome).Inc()
	providerLat.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
