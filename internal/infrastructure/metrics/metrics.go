package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SyncPasses counts full-sync passes by terminal status.
	SyncPasses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_passes_total",
		Help: "Full catalog sync passes by outcome.",
	}, []string{"status"})

	// ProductsSynced counts products upserted across all passes.
	ProductsSynced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_synced_total",
		Help: "Products upserted into the mirror store.",
	})

	// SummariesGenerated counts successful summary generations.
	SummariesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "summaries_generated_total",
		Help: "AI summaries generated and stored.",
	})

	// GenerationFailures counts generation calls that errored.
	GenerationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "summary_generation_failures_total",
		Help: "AI summary generation failures.",
	})

	// SyncDuration observes the wall-clock duration of full-sync passes.
	SyncDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sync_pass_duration_seconds",
		Help:    "Duration of full catalog sync passes.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})
)
