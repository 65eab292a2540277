package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"reviewpulse/internal/events"
	"reviewpulse/internal/models/db_models"
	"reviewpulse/internal/repositories"
	"reviewpulse/pkg/metrics"
	"reviewpulse/pkg/utils"
)

// maxStoredErrorLen bounds the error text persisted on a failed review.
const maxStoredErrorLen = 500

// InsightsRefresher is the narrow slice of the insights service the
// orchestrator needs after a successful enrichment.
type InsightsRefresher interface {
	RefreshProductSummary(ctx context.Context, productID, brandID string)
}

// EnrichmentService consumes review.created events and runs the AI analysis
// pipeline. Failures are isolated per event and recorded on the review row;
// one bad review never blocks the rest of a batch.
type EnrichmentService struct {
	reviews  repositories.ReviewRepositoryInterface
	analysis AnalysisServiceInterface
	insights InsightsRefresher
	logger   *zap.SugaredLogger
}

var _ events.BatchHandler = (*EnrichmentService)(nil)

func NewEnrichmentService(
	reviews repositories.ReviewRepositoryInterface,
	analysis AnalysisServiceInterface,
	insights InsightsRefresher,
	logger *zap.SugaredLogger,
) *EnrichmentService {
	return &EnrichmentService{
		reviews:  reviews,
		analysis: analysis,
		insights: insights,
		logger:   logger,
	}
}

func (s *EnrichmentService) ProcessBatch(ctx context.Context, batch []events.ReviewCreatedEvent) events.BatchReport {
	report := events.BatchReport{Total: len(batch)}

	for _, event := range batch {
		if event.EventType != events.EventTypeCreated {
			report.Skipped++
			metrics.EnrichmentSkipped.Inc()
			continue
		}

		if err := s.enrichOne(ctx, event); err != nil {
			if errors.Is(err, errReviewMissing) {
				report.Skipped++
				metrics.EnrichmentSkipped.Inc()
				continue
			}
			report.Errors++
			metrics.EnrichmentErrors.Inc()
			s.logger.Errorw("enrichment failed",
				"feedback_id", event.FeedbackID,
				"error", err,
			)
			continue
		}
		report.Processed++
		metrics.EnrichmentProcessed.Inc()
	}

	return report
}

// enrichOne loads the review, runs analysis and writes the result. A failure
// at the analysis stage marks the row unprocessed so dashboards can count it,
// then still reports the error to the batch.
func (s *EnrichmentService) enrichOne(ctx context.Context, event events.ReviewCreatedEvent) error {
	review, err := s.reviews.GetReviewByID(ctx, event.FeedbackID)
	if err != nil {
		return err
	}
	if review == nil {
		s.logger.Warnw("review missing, skipping enrichment", "feedback_id", event.FeedbackID)
		return errReviewMissing
	}

	if strings.TrimSpace(review.ReviewText) == "" {
		if err := s.reviews.MarkUnprocessed(ctx, review.FeedbackID, "empty review text"); err != nil {
			return err
		}
		return errEmptyReviewText
	}

	analysis, err := s.analysis.AnalyzeReview(ctx, review.ReviewText, review.Rating)
	if err != nil {
		if markErr := s.reviews.MarkUnprocessed(ctx, review.FeedbackID, utils.Truncate(err.Error(), maxStoredErrorLen)); markErr != nil {
			s.logger.Errorw("mark unprocessed failed", "feedback_id", review.FeedbackID, "error", markErr)
		}
		return err
	}

	upd := repositories.EnrichmentUpdate{
		Sentiment:       normalizeSentiment(analysis.Sentiment),
		Topics:          emptyIfNil(analysis.Topics),
		Summary:         analysis.Summary,
		Pros:            emptyIfNil(analysis.Pros),
		Cons:            emptyIfNil(analysis.Cons),
		FeatureRequests: emptyIfNil(analysis.FeatureRequests),
		Confidence:      analysis.Confidence,
		EnrichedAt:      time.Now().UTC(),
	}
	if err := s.reviews.ApplyEnrichment(ctx, review.FeedbackID, upd); err != nil {
		return err
	}

	// Rollup refresh is best-effort; it logs its own failures.
	s.insights.RefreshProductSummary(ctx, review.ProductID, review.BrandID)
	return nil
}

var (
	errEmptyReviewText = errors.New("empty review text")

	// errReviewMissing marks an event whose review row no longer exists; the
	// batch counts it as skipped, not failed.
	errReviewMissing = errors.New("review missing")
)

func normalizeSentiment(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case db_models.SentimentPositive:
		return db_models.SentimentPositive
	case db_models.SentimentNegative:
		return db_models.SentimentNegative
	default:
		return db_models.SentimentNeutral
	}
}

func emptyIfNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
