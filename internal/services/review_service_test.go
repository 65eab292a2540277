package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"reviewpulse/internal/events"
	"reviewpulse/internal/models/db_models"
	"reviewpulse/internal/models/request_models"
	"reviewpulse/pkg/utils"
)

type reviewServiceFixture struct {
	linkService *MockLinkService
	reviews     *MockReviewRepository
	products    *MockProductRepository
	publisher   *MockPublisher
	svc         ReviewServiceInterface
}

func newReviewServiceFixture() *reviewServiceFixture {
	f := &reviewServiceFixture{
		linkService: new(MockLinkService),
		reviews:     new(MockReviewRepository),
		products:    new(MockProductRepository),
		publisher:   new(MockPublisher),
	}
	f.svc = NewReviewService(f.linkService, f.reviews, f.products, f.publisher, zap.NewNop().Sugar())
	return f
}

func validSubmitRequest() request_models.SubmitReviewRequest {
	return request_models.SubmitReviewRequest{
		Token:      "tok-1",
		Rating:     5,
		ReviewText: "Great shoes, very comfortable on long runs.",
	}
}

func TestSubmit_ValidationPrecedesTokenConsumption(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*request_models.SubmitReviewRequest)
	}{
		{"missing token", func(r *request_models.SubmitReviewRequest) { r.Token = "" }},
		{"rating too low", func(r *request_models.SubmitReviewRequest) { r.Rating = 0 }},
		{"rating too high", func(r *request_models.SubmitReviewRequest) { r.Rating = 6 }},
		{"text too short", func(r *request_models.SubmitReviewRequest) { r.ReviewText = "meh" }},
		{"text too long", func(r *request_models.SubmitReviewRequest) { r.ReviewText = strings.Repeat("a", 501) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReviewServiceFixture()
			req := validSubmitRequest()
			tt.mutate(&req)

			_, err := f.svc.Submit(context.Background(), req)

			assert.ErrorIs(t, err, utils.ErrValidation)
			f.linkService.AssertNotCalled(t, "Consume", mock.Anything, mock.Anything)
			f.reviews.AssertNotCalled(t, "CreateReview", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmit_PersistsReviewAndPublishesEvent(t *testing.T) {
	f := newReviewServiceFixture()

	link := &db_models.ReviewLink{
		Token:         "tok-1",
		OrderID:       "order-9",
		ProductID:     "prod-1",
		BrandID:       "brand-1",
		CustomerName:  "Jo",
		CustomerEmail: "jo@example.com",
		ExpiresAt:     time.Now().Add(time.Hour).Unix(),
	}
	f.linkService.On("Consume", mock.Anything, "tok-1").Return(link, nil)

	var stored *db_models.Review
	f.reviews.On("CreateReview", mock.Anything, mock.AnythingOfType("*db_models.Review")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*db_models.Review)
		}).
		Return(nil)

	var published events.ReviewCreatedEvent
	f.publisher.On("PublishReviewCreated", mock.Anything, mock.AnythingOfType("events.ReviewCreatedEvent")).
		Run(func(args mock.Arguments) {
			published = args.Get(1).(events.ReviewCreatedEvent)
		}).
		Return(nil)

	feedbackID, err := f.svc.Submit(context.Background(), validSubmitRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, feedbackID)
	require.NotNil(t, stored)
	assert.Equal(t, feedbackID, stored.FeedbackID)
	assert.Equal(t, db_models.SentimentPending, stored.Sentiment)
	assert.Equal(t, "brand-1", stored.BrandID)
	assert.Equal(t, "order-9", stored.OrderID)

	// Identity defaults to what the link carries when the form omits it.
	assert.Equal(t, "Jo", stored.CustomerName)
	assert.Equal(t, "jo@example.com", stored.CustomerEmail)

	assert.Equal(t, events.EventTypeCreated, published.EventType)
	assert.Equal(t, feedbackID, published.FeedbackID)
	assert.Equal(t, "prod-1", published.ProductID)
}

func TestSubmit_FormIdentityOverridesLink(t *testing.T) {
	f := newReviewServiceFixture()

	link := &db_models.ReviewLink{Token: "tok-1", BrandID: "brand-1", CustomerName: "Jo"}
	f.linkService.On("Consume", mock.Anything, "tok-1").Return(link, nil)

	var stored *db_models.Review
	f.reviews.On("CreateReview", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*db_models.Review) }).
		Return(nil)
	f.publisher.On("PublishReviewCreated", mock.Anything, mock.Anything).Return(nil)

	req := validSubmitRequest()
	req.CustomerName = "Joanna"

	_, err := f.svc.Submit(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "Joanna", stored.CustomerName)
}

func TestSubmit_ConsumedTokenErrorPropagates(t *testing.T) {
	f := newReviewServiceFixture()
	f.linkService.On("Consume", mock.Anything, "tok-1").Return(nil, utils.ErrLinkAlreadyUsed)

	_, err := f.svc.Submit(context.Background(), validSubmitRequest())

	assert.ErrorIs(t, err, utils.ErrLinkAlreadyUsed)
	f.reviews.AssertNotCalled(t, "CreateReview", mock.Anything, mock.Anything)
}

func TestSubmit_PublishFailureDoesNotFailSubmission(t *testing.T) {
	f := newReviewServiceFixture()

	link := &db_models.ReviewLink{Token: "tok-1", BrandID: "brand-1"}
	f.linkService.On("Consume", mock.Anything, "tok-1").Return(link, nil)
	f.reviews.On("CreateReview", mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("PublishReviewCreated", mock.Anything, mock.Anything).
		Return(errors.New("broker unavailable"))

	feedbackID, err := f.svc.Submit(context.Background(), validSubmitRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, feedbackID)
}

func TestGetPrefill_ReturnsLinkDataWithProductName(t *testing.T) {
	f := newReviewServiceFixture()

	link := &db_models.ReviewLink{
		Token:         "tok-1",
		OrderID:       "order-9",
		ProductID:     "prod-1",
		BrandID:       "brand-1",
		CustomerName:  "Jo",
		CustomerEmail: "jo@example.com",
	}
	f.linkService.On("Resolve", mock.Anything, "tok-1").Return(link, nil)
	f.products.On("GetProduct", mock.Anything, "prod-1", "brand-1").
		Return(&db_models.Product{ProductID: "prod-1", BrandID: "brand-1", ProductName: "Trail Shoes"}, nil)

	prefill, err := f.svc.GetPrefill(context.Background(), "tok-1")

	require.NoError(t, err)
	assert.Equal(t, "Trail Shoes", prefill.ProductName)
	assert.Equal(t, "order-9", prefill.OrderID)
	assert.Equal(t, "Jo", prefill.CustomerName)
}

func TestGetPrefill_ProductLookupFailureIsNonFatal(t *testing.T) {
	f := newReviewServiceFixture()

	link := &db_models.ReviewLink{Token: "tok-1", ProductID: "prod-1", BrandID: "brand-1"}
	f.linkService.On("Resolve", mock.Anything, "tok-1").Return(link, nil)
	f.products.On("GetProduct", mock.Anything, "prod-1", "brand-1").
		Return(nil, errors.New("db timeout"))

	prefill, err := f.svc.GetPrefill(context.Background(), "tok-1")

	require.NoError(t, err)
	assert.Empty(t, prefill.ProductName)
}

func TestGetPrefill_InvalidTokenPropagates(t *testing.T) {
	f := newReviewServiceFixture()
	f.linkService.On("Resolve", mock.Anything, "gone").Return(nil, utils.ErrLinkExpired)

	_, err := f.svc.GetPrefill(context.Background(), "gone")

	assert.ErrorIs(t, err, utils.ErrLinkExpired)
}
