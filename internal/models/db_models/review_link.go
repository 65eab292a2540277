package db_models

import "time"

// ReviewLink is a single-use, time-bounded permission to submit one review.
// Links are never deleted; consumed and expired rows feed the link usage
// stats in insights.
type ReviewLink struct {
	Token         string    `gorm:"primaryKey;type:varchar(64)" json:"token"`
	OrderID       string    `gorm:"type:varchar(64)" json:"orderId"`
	ProductID     string    `gorm:"type:varchar(64);index:idx_review_links_brand_product" json:"productId"`
	BrandID       string    `gorm:"type:varchar(64);index:idx_review_links_brand_product,priority:1" json:"brandId"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	CustomerPhone string    `json:"customerPhone"`
	Used          bool      `gorm:"not null;default:false" json:"used"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	// ExpiresAt is absolute epoch seconds.
	ExpiresAt int64 `gorm:"not null" json:"expiresAt"`
}
