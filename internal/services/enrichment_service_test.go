package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"reviewpulse/internal/events"
	"reviewpulse/internal/models/db_models"
	"reviewpulse/internal/repositories"
)

type enrichmentFixture struct {
	reviews  *MockReviewRepository
	analysis *MockAnalysisService
	insights *MockInsightsRefresher
	svc      *EnrichmentService
}

func newEnrichmentFixture() *enrichmentFixture {
	f := &enrichmentFixture{
		reviews:  new(MockReviewRepository),
		analysis: new(MockAnalysisService),
		insights: new(MockInsightsRefresher),
	}
	f.svc = NewEnrichmentService(f.reviews, f.analysis, f.insights, zap.NewNop().Sugar())
	return f
}

func createdEvent(feedbackID string) events.ReviewCreatedEvent {
	return events.ReviewCreatedEvent{
		EventType:  events.EventTypeCreated,
		FeedbackID: feedbackID,
		BrandID:    "brand-1",
		ProductID:  "prod-1",
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
}

func pendingReview(feedbackID, text string) *db_models.Review {
	return &db_models.Review{
		FeedbackID: feedbackID,
		BrandID:    "brand-1",
		ProductID:  "prod-1",
		Rating:     4,
		ReviewText: text,
		Sentiment:  db_models.SentimentPending,
	}
}

func TestProcessBatch_FailuresAreIsolated(t *testing.T) {
	f := newEnrichmentFixture()

	f.reviews.On("GetReviewByID", mock.Anything, "ok-1").Return(pendingReview("ok-1", "Love it, works great."), nil)
	f.reviews.On("GetReviewByID", mock.Anything, "ok-2").Return(pendingReview("ok-2", "Solid product overall."), nil)
	f.reviews.On("GetReviewByID", mock.Anything, "bad-1").Return(pendingReview("bad-1", "Terrible experience."), nil)

	analysis := &ReviewAnalysis{Sentiment: "positive", Confidence: 0.9, Topics: []string{"quality"}}
	f.analysis.On("AnalyzeReview", mock.Anything, "Love it, works great.", 4).Return(analysis, nil)
	f.analysis.On("AnalyzeReview", mock.Anything, "Solid product overall.", 4).Return(analysis, nil)
	f.analysis.On("AnalyzeReview", mock.Anything, "Terrible experience.", 4).
		Return(nil, errors.New("model timeout"))

	f.reviews.On("ApplyEnrichment", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.reviews.On("MarkUnprocessed", mock.Anything, "bad-1", "model timeout").Return(nil)
	f.insights.On("RefreshProductSummary", mock.Anything, "prod-1", "brand-1").Return()

	report := f.svc.ProcessBatch(context.Background(), []events.ReviewCreatedEvent{
		createdEvent("ok-1"),
		createdEvent("bad-1"),
		createdEvent("ok-2"),
	})

	assert.Equal(t, events.BatchReport{Total: 3, Processed: 2, Errors: 1, Skipped: 0}, report)
	f.reviews.AssertCalled(t, "MarkUnprocessed", mock.Anything, "bad-1", "model timeout")
	f.insights.AssertNumberOfCalls(t, "RefreshProductSummary", 2)
}

func TestProcessBatch_SkipsNonCreatedEvents(t *testing.T) {
	f := newEnrichmentFixture()

	event := createdEvent("x")
	event.EventType = "deleted"

	report := f.svc.ProcessBatch(context.Background(), []events.ReviewCreatedEvent{event})

	assert.Equal(t, events.BatchReport{Total: 1, Skipped: 1}, report)
	f.reviews.AssertNotCalled(t, "GetReviewByID", mock.Anything, mock.Anything)
}

func TestProcessBatch_EmptyTextMarksUnprocessed(t *testing.T) {
	f := newEnrichmentFixture()

	f.reviews.On("GetReviewByID", mock.Anything, "empty-1").Return(pendingReview("empty-1", "   "), nil)
	f.reviews.On("MarkUnprocessed", mock.Anything, "empty-1", "empty review text").Return(nil)

	report := f.svc.ProcessBatch(context.Background(), []events.ReviewCreatedEvent{createdEvent("empty-1")})

	assert.Equal(t, 1, report.Errors)
	f.analysis.AssertNotCalled(t, "AnalyzeReview", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessBatch_MissingReviewIsSkipped(t *testing.T) {
	f := newEnrichmentFixture()

	f.reviews.On("GetReviewByID", mock.Anything, "ghost").Return(nil, nil)

	// A vanished row is neither processed nor an error; nothing was enriched
	// and nothing needs marking.
	report := f.svc.ProcessBatch(context.Background(), []events.ReviewCreatedEvent{createdEvent("ghost")})

	assert.Equal(t, events.BatchReport{Total: 1, Skipped: 1}, report)
	f.analysis.AssertNotCalled(t, "AnalyzeReview", mock.Anything, mock.Anything, mock.Anything)
	f.reviews.AssertNotCalled(t, "MarkUnprocessed", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessBatch_StoredErrorIsTruncated(t *testing.T) {
	f := newEnrichmentFixture()

	f.reviews.On("GetReviewByID", mock.Anything, "bad-2").Return(pendingReview("bad-2", "Some feedback text here."), nil)
	f.analysis.On("AnalyzeReview", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New(strings.Repeat("x", 900)))
	f.reviews.On("MarkUnprocessed", mock.Anything, "bad-2", mock.MatchedBy(func(msg string) bool {
		return len(msg) == maxStoredErrorLen
	})).Return(nil)

	report := f.svc.ProcessBatch(context.Background(), []events.ReviewCreatedEvent{createdEvent("bad-2")})

	assert.Equal(t, 1, report.Errors)
	f.reviews.AssertExpectations(t)
}

func TestProcessBatch_NormalizesSentiment(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"POSITIVE", db_models.SentimentPositive},
		{" Negative ", db_models.SentimentNegative},
		{"mixed", db_models.SentimentNeutral},
		{"", db_models.SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			f := newEnrichmentFixture()

			f.reviews.On("GetReviewByID", mock.Anything, "r-1").Return(pendingReview("r-1", "Decent enough product."), nil)
			f.analysis.On("AnalyzeReview", mock.Anything, mock.Anything, mock.Anything).
				Return(&ReviewAnalysis{Sentiment: tt.raw}, nil)

			var applied repositories.EnrichmentUpdate
			f.reviews.On("ApplyEnrichment", mock.Anything, "r-1", mock.AnythingOfType("repositories.EnrichmentUpdate")).
				Run(func(args mock.Arguments) {
					applied = args.Get(2).(repositories.EnrichmentUpdate)
				}).
				Return(nil)
			f.insights.On("RefreshProductSummary", mock.Anything, "prod-1", "brand-1").Return()

			report := f.svc.ProcessBatch(context.Background(), []events.ReviewCreatedEvent{createdEvent("r-1")})

			assert.Equal(t, 1, report.Processed)
			assert.Equal(t, tt.want, applied.Sentiment)
			assert.NotNil(t, applied.Topics)
			assert.NotNil(t, applied.Pros)
		})
	}
}

func TestProcessBatch_RedeliveryReappliesEnrichment(t *testing.T) {
	f := newEnrichmentFixture()

	// An already-enriched review is analyzed again on redelivery; the last
	// write wins and the outcome stays consistent.
	enriched := pendingReview("dup-1", "Still a great product.")
	enriched.Sentiment = db_models.SentimentPositive

	f.reviews.On("GetReviewByID", mock.Anything, "dup-1").Return(enriched, nil)
	f.analysis.On("AnalyzeReview", mock.Anything, mock.Anything, mock.Anything).
		Return(&ReviewAnalysis{Sentiment: "positive"}, nil)
	f.reviews.On("ApplyEnrichment", mock.Anything, "dup-1", mock.Anything).Return(nil)
	f.insights.On("RefreshProductSummary", mock.Anything, "prod-1", "brand-1").Return()

	first := f.svc.ProcessBatch(context.Background(), []events.ReviewCreatedEvent{createdEvent("dup-1")})
	second := f.svc.ProcessBatch(context.Background(), []events.ReviewCreatedEvent{createdEvent("dup-1")})

	assert.Equal(t, 1, first.Processed)
	assert.Equal(t, 1, second.Processed)
	f.reviews.AssertNumberOfCalls(t, "ApplyEnrichment", 2)
}
