package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics for monitoring
var (
	QuotesComputed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_quotes_total",
		Help: "The total number of quotes computed",
	}, []string{"source_chain", "dry_run"})

	QuoteErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_quote_errors_total",
		Help: "Total number of quote failures by kind",
	}, []string{"kind"})

	PartnerRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_partner_requests_total",
		Help: "Total number of partner API requests by endpoint and outcome",
	}, []string{"endpoint", "outcome"})

	PartnerRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bridge_partner_request_seconds",
		Help:    "Partner API request duration",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
	}, []string{"endpoint"})

	MetadataCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridge_metadata_cache_hits_total",
		Help: "Token-info directory requests served from the cache",
	})

	MetadataCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridge_metadata_cache_misses_total",
		Help: "Token-info directory requests that triggered a partner fetch",
	})

	IntentsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_intents_created_total",
		Help: "The total number of intents created",
	}, []string{"source_chain"})

	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_intent_status_transitions_total",
		Help: "Intent status transitions by from/to state",
	}, []string{"from", "to"})

	DegradedStatusReads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridge_degraded_status_reads_total",
		Help: "Status checks answered from the last snapshot after a partner failure",
	})
)
