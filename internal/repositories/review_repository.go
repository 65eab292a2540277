package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"reviewpulse/internal/models/db_models"
)

// EnrichmentUpdate is the one-shot write the orchestrator applies after a
// successful analysis.
type EnrichmentUpdate struct {
	Sentiment       string
	Topics          []string
	Summary         string
	Pros            []string
	Cons            []string
	FeatureRequests []string
	Confidence      float64
	EnrichedAt      time.Time
}

type ReviewRepositoryInterface interface {
	CreateReview(ctx context.Context, review *db_models.Review) error
	// GetReviewByID returns (nil, nil) when the review does not exist.
	GetReviewByID(ctx context.Context, feedbackID string) (*db_models.Review, error)
	// ListReviews filters by brand and/or product; empty strings mean no filter.
	ListReviews(ctx context.Context, brandID, productID string) ([]db_models.Review, error)
	ApplyEnrichment(ctx context.Context, feedbackID string, upd EnrichmentUpdate) error
	MarkUnprocessed(ctx context.Context, feedbackID, errMsg string) error
}

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) CreateReview(ctx context.Context, review *db_models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *ReviewRepository) GetReviewByID(ctx context.Context, feedbackID string) (*db_models.Review, error) {
	var review db_models.Review
	err := r.db.WithContext(ctx).First(&review, "feedback_id = ?", feedbackID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) ListReviews(ctx context.Context, brandID, productID string) ([]db_models.Review, error) {
	q := r.db.WithContext(ctx).Model(&db_models.Review{})
	if brandID != "" {
		q = q.Where("brand_id = ?", brandID)
	}
	if productID != "" {
		q = q.Where("product_id = ?", productID)
	}

	var reviews []db_models.Review
	err := q.Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepository) ApplyEnrichment(ctx context.Context, feedbackID string, upd EnrichmentUpdate) error {
	enrichedAt := upd.EnrichedAt
	return r.db.WithContext(ctx).
		Model(&db_models.Review{}).
		Where("feedback_id = ?", feedbackID).
		Select("sentiment", "topics", "summary", "pros", "cons", "feature_requests", "confidence", "enriched_at", "enrich_error").
		Updates(&db_models.Review{
			Sentiment:       upd.Sentiment,
			Topics:          upd.Topics,
			Summary:         upd.Summary,
			Pros:            upd.Pros,
			Cons:            upd.Cons,
			FeatureRequests: upd.FeatureRequests,
			Confidence:      upd.Confidence,
			EnrichedAt:      &enrichedAt,
		}).Error
}

func (r *ReviewRepository) MarkUnprocessed(ctx context.Context, feedbackID, errMsg string) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&db_models.Review{}).
		Where("feedback_id = ?", feedbackID).
		Select("sentiment", "enrich_error", "enriched_at").
		Updates(&db_models.Review{
			Sentiment:   db_models.SentimentUnprocessed,
			EnrichError: errMsg,
			EnrichedAt:  &now,
		}).Error
}
