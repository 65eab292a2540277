package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"reviewpulse/internal/models/db_models"
)

type LinkRepositoryInterface interface {
	CreateLink(ctx context.Context, link *db_models.ReviewLink) error
	// GetLinkByToken returns (nil, nil) when the token does not exist.
	GetLinkByToken(ctx context.Context, token string) (*db_models.ReviewLink, error)
	// ConsumeIfUnused flips used to true with a single conditional update.
	// Returns false when the link was already consumed by a concurrent call.
	ConsumeIfUnused(ctx context.Context, token string) (bool, error)
	// ListLinks filters by brand and/or product; empty strings mean no filter.
	ListLinks(ctx context.Context, brandID, productID string) ([]db_models.ReviewLink, error)
}

type LinkRepository struct {
	db *gorm.DB
}

func NewLinkRepository(db *gorm.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

func (r *LinkRepository) CreateLink(ctx context.Context, link *db_models.ReviewLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *LinkRepository) GetLinkByToken(ctx context.Context, token string) (*db_models.ReviewLink, error) {
	var link db_models.ReviewLink
	err := r.db.WithContext(ctx).First(&link, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *LinkRepository) ConsumeIfUnused(ctx context.Context, token string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&db_models.ReviewLink{}).
		Where("token = ? AND used = ?", token, false).
		Update("used", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *LinkRepository) ListLinks(ctx context.Context, brandID, productID string) ([]db_models.ReviewLink, error) {
	q := r.db.WithContext(ctx).Model(&db_models.ReviewLink{})
	if brandID != "" {
		q = q.Where("brand_id = ?", brandID)
	}
	if productID != "" {
		q = q.Where("product_id = ?", productID)
	}

	var links []db_models.ReviewLink
	err := q.Find(&links).Error
	return links, err
}
