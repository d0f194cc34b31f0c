package resolver

import "github.com/prometheus/client_golang/prometheus"

var (
	// resolutions counts finished pipeline runs by outcome (an error code or
	// "ok") and by the strategy that found the identifier.
	resolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "places_resolutions_total",
			Help: "Place resolutions by outcome and source.",
		},
		[]string{"outcome", "source"},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "places_cache_lookups_total",
			Help: "Details cache lookups by result.",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(resolutions, cacheLookups)
}
