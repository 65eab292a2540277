package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"reviewpulse/internal/models/db_models"
)

type BrandRepositoryInterface interface {
	// GetBrand returns (nil, nil) when the brand does not exist.
	GetBrand(ctx context.Context, brandID string) (*db_models.Brand, error)
	ListBrands(ctx context.Context) ([]db_models.Brand, error)
}

type BrandRepository struct {
	db *gorm.DB
}

func NewBrandRepository(db *gorm.DB) *BrandRepository {
	return &BrandRepository{db: db}
}

func (r *BrandRepository) GetBrand(ctx context.Context, brandID string) (*db_models.Brand, error) {
	var brand db_models.Brand
	err := r.db.WithContext(ctx).First(&brand, "brand_id = ?", brandID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *BrandRepository) ListBrands(ctx context.Context) ([]db_models.Brand, error) {
	var brands []db_models.Brand
	err := r.db.WithContext(ctx).Find(&brands).Error
	return brands, err
}
