package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	providerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantry_provider_requests_total",
			Help: "Total number of recipe provider requests by endpoint and status",
		},
		[]string{"endpoint", "status"},
	)

	providerDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pantry_provider_request_duration_seconds",
			Help:    "Recipe provider request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantry_provider_cache_lookups_total",
			Help: "Provider response cache lookups by endpoint and result",
		},
		[]string{"endpoint", "result"},
	)

	recipesExcluded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pantry_recipes_excluded_total",
			Help: "Total number of search results dropped by the exclusion filter",
		},
	)
)
