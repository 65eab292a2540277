package response_models

type SentimentDistribution struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// TrendBucket is one calendar month of sentiment counts; the trend is a
// fixed-length sequence of 7 buckets, most recent month last.
type TrendBucket struct {
	Month    string `json:"month"`
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
	Neutral  int    `json:"neutral"`
}

type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

type LinkStats struct {
	TotalSent int     `json:"total_sent"`
	TotalUsed int     `json:"total_used"`
	UsageRate float64 `json:"usage_rate"`
}

// AIInsights is the cached product rollup, present only once a summary has
// been generated.
type AIInsights struct {
	Summary           string   `json:"ai_summary"`
	Strengths         []string `json:"ai_strengths"`
	Weaknesses        []string `json:"ai_weaknesses"`
	Recommendations   []string `json:"ai_recommendations"`
	SentimentOverview string   `json:"ai_sentiment_overview"`
	UpdatedAt         string   `json:"ai_summary_updated_at,omitempty"`
	ReviewCount       int      `json:"ai_summary_review_count"`
}

type RecentReview struct {
	FeedbackID   string   `json:"feedbackId,omitempty"`
	CustomerName string   `json:"customerName"`
	Rating       int      `json:"rating"`
	ReviewText   string   `json:"reviewText"`
	Sentiment    string   `json:"sentiment"`
	Summary      string   `json:"summary,omitempty"`
	Topics       []string `json:"topics,omitempty"`
	ProductID    string   `json:"productId,omitempty"`
	ProductName  string   `json:"productName,omitempty"`
	BrandID      string   `json:"brandId,omitempty"`
	BrandName    string   `json:"brandName,omitempty"`
	Timestamp    string   `json:"timestamp"`
}

type ProductInsights struct {
	ProductName           string                `json:"product_name"`
	TotalReviews          int                   `json:"total_reviews"`
	AvgRating             float64               `json:"avg_rating"`
	SentimentDistribution SentimentDistribution `json:"sentiment_distribution"`
	SentimentTrend        []TrendBucket         `json:"sentiment_trend"`
	RecentReviews         []RecentReview        `json:"recent_reviews"`
	TopTopics             []TopicCount          `json:"top_topics"`
	LinkStats             LinkStats             `json:"link_stats"`
	AIInsights            *AIInsights           `json:"ai_insights,omitempty"`
}

// ProductSummaryEntry is one product's line in a brand or global rollup.
// SentimentScore is the percentage of positive reviews.
type ProductSummaryEntry struct {
	ProductID      string      `json:"productId"`
	ProductName    string      `json:"productName"`
	TotalReviews   int         `json:"total_reviews"`
	AvgRating      float64     `json:"avg_rating"`
	SentimentScore float64     `json:"sentiment_score"`
	AIInsights     *AIInsights `json:"ai_insights,omitempty"`
}

type BrandInsights struct {
	BrandName             string                `json:"brand_name"`
	TotalReviews          int                   `json:"total_reviews"`
	AvgRating             float64               `json:"avg_rating"`
	Products              []ProductSummaryEntry `json:"products"`
	TotalProducts         int                   `json:"total_products"`
	SentimentDistribution SentimentDistribution `json:"overall_sentiment_distribution"`
	RecentActivity        []RecentReview        `json:"recent_activity"`
	LinkStats             LinkStats             `json:"link_stats"`
}

type BrandSummaryEntry struct {
	BrandID               string                `json:"brandId"`
	BrandName             string                `json:"brandName"`
	TotalReviews          int                   `json:"total_reviews"`
	AvgRating             float64               `json:"avg_rating"`
	SentimentScore        float64               `json:"sentiment_score"`
	SentimentDistribution SentimentDistribution `json:"sentiment_distribution"`
	TotalProducts         int                   `json:"total_products"`
	Products              []ProductSummaryEntry `json:"products"`
	LinksSent             int                   `json:"links_sent"`
	ResponseRate          float64               `json:"response_rate"`
	RecentReviews         []RecentReview        `json:"recent_reviews"`
	SentimentTrend        []TrendBucket         `json:"sentiment_trend"`
}

type GlobalInsights struct {
	TotalBrands           int                   `json:"total_brands"`
	TotalReviews          int                   `json:"total_reviews_all_brands"`
	OverallAvgRating      float64               `json:"overall_avg_rating"`
	OverallSentimentScore float64               `json:"overall_sentiment_score"`
	SentimentDistribution SentimentDistribution `json:"overall_sentiment_distribution"`
	SentimentTrend        []TrendBucket         `json:"overall_sentiment_trend"`
	TotalProducts         int                   `json:"total_products_all"`
	TotalLinksSent        int                   `json:"total_links_sent"`
	OverallResponseRate   float64               `json:"overall_response_rate"`
	Brands                []BrandSummaryEntry   `json:"brands"`
	RecentActivity        []RecentReview        `json:"recent_activity"`
}
