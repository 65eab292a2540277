package db_models

import "time"

const (
	SentimentPending     = "pending"
	SentimentPositive    = "positive"
	SentimentNeutral     = "neutral"
	SentimentNegative    = "negative"
	SentimentUnprocessed = "unprocessed"
)

// Review is one customer submission. Sentiment starts at pending and moves
// exactly once to positive/neutral/negative, or to unprocessed when
// enrichment fails; it never reverts to pending.
type Review struct {
	FeedbackID    string `gorm:"primaryKey;type:varchar(64)" json:"feedbackId"`
	BrandID       string `gorm:"type:varchar(64);index:idx_reviews_brand_product,priority:1" json:"brandId"`
	ProductID     string `gorm:"type:varchar(64);index:idx_reviews_brand_product" json:"productId"`
	OrderID       string `gorm:"type:varchar(64)" json:"orderId"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`

	Rating     int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	ReviewText string `gorm:"type:text;not null" json:"reviewText"`

	Sentiment       string   `gorm:"type:varchar(16);not null;default:pending" json:"sentiment"`
	Topics          []string `gorm:"serializer:json" json:"topics"`
	Summary         string   `gorm:"type:text" json:"summary"`
	Pros            []string `gorm:"serializer:json" json:"pros"`
	Cons            []string `gorm:"serializer:json" json:"cons"`
	FeatureRequests []string `gorm:"serializer:json" json:"featureRequests"`
	Confidence      float64  `json:"confidence"`

	EnrichedAt  *time.Time `json:"enrichedAt,omitempty"`
	EnrichError string     `gorm:"type:text" json:"error,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// Enriched reports whether the review carries a real sentiment (left the
// pending/unprocessed states).
func (r *Review) Enriched() bool {
	switch r.Sentiment {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}
