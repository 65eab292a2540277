package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"reviewpulse/internal/models/db_models"
)

type AISummaryUpdate struct {
	Summary           string
	Strengths         []string
	Weaknesses        []string
	Recommendations   []string
	SentimentOverview string
	ReviewCount       int
	UpdatedAt         time.Time
}

type ProductRepositoryInterface interface {
	// GetProduct returns (nil, nil) when the product does not exist.
	GetProduct(ctx context.Context, productID, brandID string) (*db_models.Product, error)
	// ListProducts filters by brand; an empty string means all brands.
	ListProducts(ctx context.Context, brandID string) ([]db_models.Product, error)
	UpdateAISummary(ctx context.Context, productID, brandID string, upd AISummaryUpdate) error
}

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) GetProduct(ctx context.Context, productID, brandID string) (*db_models.Product, error) {
	var product db_models.Product
	err := r.db.WithContext(ctx).First(&product, "product_id = ? AND brand_id = ?", productID, brandID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) ListProducts(ctx context.Context, brandID string) ([]db_models.Product, error) {
	q := r.db.WithContext(ctx).Model(&db_models.Product{})
	if brandID != "" {
		q = q.Where("brand_id = ?", brandID)
	}

	var products []db_models.Product
	err := q.Find(&products).Error
	return products, err
}

func (r *ProductRepository) UpdateAISummary(ctx context.Context, productID, brandID string, upd AISummaryUpdate) error {
	updatedAt := upd.UpdatedAt
	return r.db.WithContext(ctx).
		Model(&db_models.Product{}).
		Where("product_id = ? AND brand_id = ?", productID, brandID).
		Select("ai_summary", "ai_strengths", "ai_weaknesses", "ai_recommendations", "ai_sentiment_overview", "ai_summary_updated_at", "ai_summary_review_count").
		Updates(&db_models.Product{
			AISummary:            upd.Summary,
			AIStrengths:          upd.Strengths,
			AIWeaknesses:         upd.Weaknesses,
			AIRecommendations:    upd.Recommendations,
			AISentimentOverview:  upd.SentimentOverview,
			AISummaryUpdatedAt:   &updatedAt,
			AISummaryReviewCount: upd.ReviewCount,
		}).Error
}
