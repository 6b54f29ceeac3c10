package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for IdentityResolutionsTotal.
const (
	OutcomeAuthenticated  = "authenticated"
	OutcomeClaimsOnly     = "claims_only"
	OutcomeMissingHeader  = "missing_header"
	OutcomeInvalidToken   = "invalid_token"
	OutcomeUnknownUser    = "unknown_user"
	OutcomeInvalidProfile = "invalid_profile"
)

var (
	IdentityResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identity_resolutions_total",
			Help: "Total number of caller identity resolutions by outcome",
		},
		[]string{"outcome"},
	)

	IdentityResolutionDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "identity_resolution_duration_seconds",
			Help:    "Duration of caller identity resolution in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ProfileCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "identity_profile_cache_hits_total",
			Help: "Total number of profile cache hits",
		},
	)

	ProfileCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "identity_profile_cache_misses_total",
			Help: "Total number of profile cache misses",
		},
	)

	ProfileCacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identity_profile_cache_errors_total",
			Help: "Total number of profile cache errors by operation",
		},
		[]string{"operation"},
	)
)
