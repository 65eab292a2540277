package db_models

import "time"

// Brand is the tenant boundary; callers are scoped to brands by attribute
// filtering, not a stronger isolation mechanism.
type Brand struct {
	BrandID   string    `gorm:"primaryKey;type:varchar(64)" json:"brandId"`
	BrandName string    `json:"brandName"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
