package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"reviewpulse/internal/events"
	"reviewpulse/internal/models/db_models"
	"reviewpulse/internal/repositories"
)

type MockLinkRepository struct {
	mock.Mock
}

func (m *MockLinkRepository) CreateLink(ctx context.Context, link *db_models.ReviewLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockLinkRepository) GetLinkByToken(ctx context.Context, token string) (*db_models.ReviewLink, error) {
	args := m.Called(ctx, token)
	if v := args.Get(0); v != nil {
		return v.(*db_models.ReviewLink), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLinkRepository) ConsumeIfUnused(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockLinkRepository) ListLinks(ctx context.Context, brandID, productID string) ([]db_models.ReviewLink, error) {
	args := m.Called(ctx, brandID, productID)
	if v := args.Get(0); v != nil {
		return v.([]db_models.ReviewLink), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) CreateReview(ctx context.Context, review *db_models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) GetReviewByID(ctx context.Context, feedbackID string) (*db_models.Review, error) {
	args := m.Called(ctx, feedbackID)
	if v := args.Get(0); v != nil {
		return v.(*db_models.Review), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReviewRepository) ListReviews(ctx context.Context, brandID, productID string) ([]db_models.Review, error) {
	args := m.Called(ctx, brandID, productID)
	if v := args.Get(0); v != nil {
		return v.([]db_models.Review), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReviewRepository) ApplyEnrichment(ctx context.Context, feedbackID string, upd repositories.EnrichmentUpdate) error {
	args := m.Called(ctx, feedbackID, upd)
	return args.Error(0)
}

func (m *MockReviewRepository) MarkUnprocessed(ctx context.Context, feedbackID, errMsg string) error {
	args := m.Called(ctx, feedbackID, errMsg)
	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetProduct(ctx context.Context, productID, brandID string) (*db_models.Product, error) {
	args := m.Called(ctx, productID, brandID)
	if v := args.Get(0); v != nil {
		return v.(*db_models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, brandID string) ([]db_models.Product, error) {
	args := m.Called(ctx, brandID)
	if v := args.Get(0); v != nil {
		return v.([]db_models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) UpdateAISummary(ctx context.Context, productID, brandID string, upd repositories.AISummaryUpdate) error {
	args := m.Called(ctx, productID, brandID, upd)
	return args.Error(0)
}

type MockBrandRepository struct {
	mock.Mock
}

func (m *MockBrandRepository) GetBrand(ctx context.Context, brandID string) (*db_models.Brand, error) {
	args := m.Called(ctx, brandID)
	if v := args.Get(0); v != nil {
		return v.(*db_models.Brand), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBrandRepository) ListBrands(ctx context.Context) ([]db_models.Brand, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]db_models.Brand), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockMailService struct {
	mock.Mock
}

func (m *MockMailService) SendReviewInvitation(to, customerName, productName, reviewURL string) error {
	args := m.Called(to, customerName, productName, reviewURL)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishReviewCreated(ctx context.Context, event events.ReviewCreatedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockAIClient struct {
	mock.Mock
}

func (m *MockAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) AnalyzeReview(ctx context.Context, reviewText string, rating int) (*ReviewAnalysis, error) {
	args := m.Called(ctx, reviewText, rating)
	if v := args.Get(0); v != nil {
		return v.(*ReviewAnalysis), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAnalysisService) SummarizeProduct(ctx context.Context, reviews []db_models.Review, productName string) (*ProductSummaryAnalysis, error) {
	args := m.Called(ctx, reviews, productName)
	if v := args.Get(0); v != nil {
		return v.(*ProductSummaryAnalysis), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockInsightsRefresher struct {
	mock.Mock
}

func (m *MockInsightsRefresher) RefreshProductSummary(ctx context.Context, productID, brandID string) {
	m.Called(ctx, productID, brandID)
}

type MockLinkService struct {
	mock.Mock
}

func (m *MockLinkService) Issue(ctx context.Context, req IssueLinkRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockLinkService) Resolve(ctx context.Context, token string) (*db_models.ReviewLink, error) {
	args := m.Called(ctx, token)
	if v := args.Get(0); v != nil {
		return v.(*db_models.ReviewLink), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLinkService) Consume(ctx context.Context, token string) (*db_models.ReviewLink, error) {
	args := m.Called(ctx, token)
	if v := args.Get(0); v != nil {
		return v.(*db_models.ReviewLink), args.Error(1)
	}
	return nil, args.Error(1)
}
