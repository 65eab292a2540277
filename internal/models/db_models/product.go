package db_models

import "time"

// Product is the aggregation target. The ai* fields are a cached rollup
// recomputed when a new enriched review arrives; they are not authoritative
// and may be absent.
type Product struct {
	ProductID   string `gorm:"primaryKey;type:varchar(64)" json:"productId"`
	BrandID     string `gorm:"primaryKey;type:varchar(64)" json:"brandId"`
	ProductName string `json:"productName"`

	AISummary            string     `gorm:"type:text" json:"aiSummary,omitempty"`
	AIStrengths          []string   `gorm:"serializer:json" json:"aiStrengths,omitempty"`
	AIWeaknesses         []string   `gorm:"serializer:json" json:"aiWeaknesses,omitempty"`
	AIRecommendations    []string   `gorm:"serializer:json" json:"aiRecommendations,omitempty"`
	AISentimentOverview  string     `gorm:"type:text" json:"aiSentimentOverview,omitempty"`
	AISummaryUpdatedAt   *time.Time `json:"aiSummaryUpdatedAt,omitempty"`
	AISummaryReviewCount int        `json:"aiSummaryReviewCount,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
