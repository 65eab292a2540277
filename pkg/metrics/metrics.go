package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LinksIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reviewpulse_links_issued_total",
		Help: "Review invitation links issued.",
	})

	ReviewsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reviewpulse_reviews_submitted_total",
		Help: "Reviews accepted by the submission pipeline.",
	})

	EnrichmentProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reviewpulse_enrichment_processed_total",
		Help: "Reviews successfully enriched.",
	})

	EnrichmentErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reviewpulse_enrichment_errors_total",
		Help: "Reviews marked unprocessed after an enrichment failure.",
	})

	EnrichmentSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reviewpulse_enrichment_skipped_total",
		Help: "Enrichment events skipped without touching a review.",
	})
)
