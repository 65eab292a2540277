package services

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"reviewpulse/internal/events"
	"reviewpulse/internal/models/db_models"
	"reviewpulse/internal/models/request_models"
	"reviewpulse/internal/models/response_models"
	"reviewpulse/internal/repositories"
	"reviewpulse/pkg/metrics"
	"reviewpulse/pkg/utils"
)

const (
	minReviewTextLen = 10
	maxReviewTextLen = 500
)

type ReviewServiceInterface interface {
	// Submit validates the payload, consumes the token, persists a pending
	// review and publishes a creation event. This is the only write path
	// that creates a Review; enrichment never runs synchronously here.
	Submit(ctx context.Context, req request_models.SubmitReviewRequest) (string, error)
	// GetPrefill classifies the token and returns form prefill data.
	GetPrefill(ctx context.Context, token string) (*response_models.ReviewPrefill, error)
}

type ReviewService struct {
	linkService LinkServiceInterface
	reviews     repositories.ReviewRepositoryInterface
	products    repositories.ProductRepositoryInterface
	publisher   events.ReviewEventPublisherInterface
	logger      *zap.SugaredLogger
}

func NewReviewService(
	linkService LinkServiceInterface,
	reviews repositories.ReviewRepositoryInterface,
	products repositories.ProductRepositoryInterface,
	publisher events.ReviewEventPublisherInterface,
	logger *zap.SugaredLogger,
) ReviewServiceInterface {
	return &ReviewService{
		linkService: linkService,
		reviews:     reviews,
		products:    products,
		publisher:   publisher,
		logger:      logger,
	}
}

func (s *ReviewService) Submit(ctx context.Context, req request_models.SubmitReviewRequest) (string, error) {
	// Validation happens before any store access so invalid input leaves the
	// token untouched.
	if req.Token == "" {
		return "", fmt.Errorf("%w: token is required", utils.ErrValidation)
	}
	if req.Rating < 1 || req.Rating > 5 {
		return "", fmt.Errorf("%w: rating must be between 1 and 5", utils.ErrValidation)
	}
	if n := utf8.RuneCountInString(req.ReviewText); n < minReviewTextLen || n > maxReviewTextLen {
		return "", fmt.Errorf("%w: reviewText must be between %d and %d characters", utils.ErrValidation, minReviewTextLen, maxReviewTextLen)
	}

	link, err := s.linkService.Consume(ctx, req.Token)
	if err != nil {
		return "", err
	}

	review := &db_models.Review{
		FeedbackID:      uuid.NewString(),
		BrandID:         link.BrandID,
		ProductID:       link.ProductID,
		OrderID:         link.OrderID,
		CustomerName:    defaultString(req.CustomerName, link.CustomerName),
		CustomerEmail:   defaultString(req.CustomerEmail, link.CustomerEmail),
		CustomerPhone:   defaultString(req.CustomerPhone, link.CustomerPhone),
		Rating:          req.Rating,
		ReviewText:      req.ReviewText,
		Sentiment:       db_models.SentimentPending,
		Topics:          []string{},
		Pros:            []string{},
		Cons:            []string{},
		FeatureRequests: []string{},
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.reviews.CreateReview(ctx, review); err != nil {
		return "", err
	}
	metrics.ReviewsSubmitted.Inc()

	event := events.ReviewCreatedEvent{
		EventType:  events.EventTypeCreated,
		FeedbackID: review.FeedbackID,
		BrandID:    review.BrandID,
		ProductID:  review.ProductID,
		CreatedAt:  review.CreatedAt.Format(time.RFC3339),
	}
	if err := s.publisher.PublishReviewCreated(ctx, event); err != nil {
		// The review is already durable; the broker redelivers nothing here,
		// so log loudly and leave the review pending for later sweeps.
		s.logger.Errorw("publish review.created failed",
			"feedback_id", review.FeedbackID,
			"error", err,
		)
	}

	return review.FeedbackID, nil
}

func (s *ReviewService) GetPrefill(ctx context.Context, token string) (*response_models.ReviewPrefill, error) {
	link, err := s.linkService.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	// Product name is display-only; the form still works without it.
	productName := ""
	if link.ProductID != "" && link.BrandID != "" {
		if product, err := s.products.GetProduct(ctx, link.ProductID, link.BrandID); err != nil {
			s.logger.Warnw("product lookup failed", "product_id", link.ProductID, "error", err)
		} else if product != nil {
			productName = product.ProductName
		}
	}

	return &response_models.ReviewPrefill{
		OrderID:       link.OrderID,
		ProductID:     link.ProductID,
		BrandID:       link.BrandID,
		CustomerName:  link.CustomerName,
		CustomerEmail: link.CustomerEmail,
		CustomerPhone: link.CustomerPhone,
		ProductName:   productName,
	}, nil
}

func defaultString(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
