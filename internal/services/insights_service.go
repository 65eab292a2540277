package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"reviewpulse/internal/models/db_models"
	"reviewpulse/internal/models/response_models"
	"reviewpulse/internal/repositories"
	"reviewpulse/pkg/utils"
)

const (
	trendMonths    = 7
	topTopicsLimit = 5

	// productRecentLimit bounds the recent-review list on product insights;
	// activityRecentLimit bounds brand and global recent activity, and
	// perBrandRecentLimit the recent list inside each global brand entry.
	productRecentLimit  = 10
	activityRecentLimit = 20
	perBrandRecentLimit = 5

	// activityTextLimit caps review text in global recent activity.
	activityTextLimit = 120

	// RoleSuperadmin is the only role allowed on the global rollup.
	RoleSuperadmin = "superadmin"
)

type InsightsServiceInterface interface {
	ComputeProductInsights(ctx context.Context, productID, brandID string) (*response_models.ProductInsights, error)
	ComputeBrandInsights(ctx context.Context, brandID string) (*response_models.BrandInsights, error)
	// ComputeGlobalInsights spans all brands and is restricted to superadmin.
	ComputeGlobalInsights(ctx context.Context, role string) (*response_models.GlobalInsights, error)
	// RefreshProductSummary recomputes the cached AI rollup for a product.
	// It never returns an error; failures are logged and the previous rollup
	// stays in place.
	RefreshProductSummary(ctx context.Context, productID, brandID string)
}

type InsightsService struct {
	reviews  repositories.ReviewRepositoryInterface
	products repositories.ProductRepositoryInterface
	brands   repositories.BrandRepositoryInterface
	links    repositories.LinkRepositoryInterface
	analysis AnalysisServiceInterface
	cache    InsightsCacheInterface
	cacheTTL time.Duration
	logger   *zap.SugaredLogger
}

var _ InsightsRefresher = (*InsightsService)(nil)

func NewInsightsService(
	reviews repositories.ReviewRepositoryInterface,
	products repositories.ProductRepositoryInterface,
	brands repositories.BrandRepositoryInterface,
	links repositories.LinkRepositoryInterface,
	analysis AnalysisServiceInterface,
	cache InsightsCacheInterface,
	cacheTTL time.Duration,
	logger *zap.SugaredLogger,
) *InsightsService {
	return &InsightsService{
		reviews:  reviews,
		products: products,
		brands:   brands,
		links:    links,
		analysis: analysis,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

func productCacheKey(productID, brandID string) string {
	return fmt.Sprintf("insights:product:%s:%s", brandID, productID)
}

func brandCacheKey(brandID string) string {
	return fmt.Sprintf("insights:brand:%s", brandID)
}

const globalCacheKey = "insights:global"

func (s *InsightsService) ComputeProductInsights(ctx context.Context, productID, brandID string) (*response_models.ProductInsights, error) {
	key := productCacheKey(productID, brandID)
	if raw, ok := s.cache.Get(ctx, key); ok {
		var cached response_models.ProductInsights
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
	}

	reviews, err := s.reviews.ListReviews(ctx, brandID, productID)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, utils.ErrNoReviews
	}

	links, err := s.links.ListLinks(ctx, brandID, productID)
	if err != nil {
		return nil, err
	}

	productName := productID
	var aiInsights *response_models.AIInsights
	if product, err := s.products.GetProduct(ctx, productID, brandID); err != nil {
		s.logger.Warnw("product lookup failed", "product_id", productID, "error", err)
	} else if product != nil {
		if product.ProductName != "" {
			productName = product.ProductName
		}
		aiInsights = productAIInsights(product)
	}

	insights := &response_models.ProductInsights{
		ProductName:           productName,
		TotalReviews:          len(reviews),
		AvgRating:             avgRating(reviews),
		SentimentDistribution: sentimentDistribution(reviews),
		SentimentTrend:        sentimentTrend(reviews, time.Now()),
		RecentReviews:         recentReviews(reviews, productRecentLimit),
		TopTopics:             topTopics(reviews),
		LinkStats:             linkStats(links),
		AIInsights:            aiInsights,
	}

	s.cacheSet(ctx, key, insights)
	return insights, nil
}

func (s *InsightsService) ComputeBrandInsights(ctx context.Context, brandID string) (*response_models.BrandInsights, error) {
	key := brandCacheKey(brandID)
	if raw, ok := s.cache.Get(ctx, key); ok {
		var cached response_models.BrandInsights
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
	}

	reviews, err := s.reviews.ListReviews(ctx, brandID, "")
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, utils.ErrNoReviews
	}

	links, err := s.links.ListLinks(ctx, brandID, "")
	if err != nil {
		return nil, err
	}

	products, err := s.products.ListProducts(ctx, brandID)
	if err != nil {
		return nil, err
	}

	brandName := brandID
	if brand, err := s.brands.GetBrand(ctx, brandID); err != nil {
		s.logger.Warnw("brand lookup failed", "brand_id", brandID, "error", err)
	} else if brand != nil && brand.BrandName != "" {
		brandName = brand.BrandName
	}

	productNames := make(map[string]string, len(products))
	for _, p := range products {
		productNames[p.ProductID] = p.ProductName
	}
	activity := recentReviews(reviews, activityRecentLimit)
	for i := range activity {
		activity[i].ProductName = productNames[activity[i].ProductID]
	}

	insights := &response_models.BrandInsights{
		BrandName:             brandName,
		TotalReviews:          len(reviews),
		AvgRating:             avgRating(reviews),
		Products:              productEntries(reviews, products, false),
		TotalProducts:         len(products),
		SentimentDistribution: sentimentDistribution(reviews),
		RecentActivity:        activity,
		LinkStats:             linkStats(links),
	}

	s.cacheSet(ctx, key, insights)
	return insights, nil
}

func (s *InsightsService) ComputeGlobalInsights(ctx context.Context, role string) (*response_models.GlobalInsights, error) {
	if role != RoleSuperadmin {
		return nil, utils.ErrForbidden
	}

	if raw, ok := s.cache.Get(ctx, globalCacheKey); ok {
		var cached response_models.GlobalInsights
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
	}

	allReviews, err := s.reviews.ListReviews(ctx, "", "")
	if err != nil {
		return nil, err
	}
	allLinks, err := s.links.ListLinks(ctx, "", "")
	if err != nil {
		return nil, err
	}
	allProducts, err := s.products.ListProducts(ctx, "")
	if err != nil {
		return nil, err
	}
	brands, err := s.brands.ListBrands(ctx)
	if err != nil {
		return nil, err
	}

	brandEntries := make([]response_models.BrandSummaryEntry, 0, len(brands))
	for _, brand := range brands {
		var (
			brandReviews  []db_models.Review
			brandProducts []db_models.Product
			brandLinks    int
		)
		for _, r := range allReviews {
			if r.BrandID == brand.BrandID {
				brandReviews = append(brandReviews, r)
			}
		}
		for _, p := range allProducts {
			if p.BrandID == brand.BrandID {
				brandProducts = append(brandProducts, p)
			}
		}
		for _, l := range allLinks {
			if l.BrandID == brand.BrandID {
				brandLinks++
			}
		}

		responseRate := 0.0
		if brandLinks > 0 {
			responseRate = round1(float64(len(brandReviews)) / float64(brandLinks) * 100)
		}

		brandEntries = append(brandEntries, response_models.BrandSummaryEntry{
			BrandID:               brand.BrandID,
			BrandName:             brand.BrandName,
			TotalReviews:          len(brandReviews),
			AvgRating:             avgRating(brandReviews),
			SentimentScore:        sentimentScore(brandReviews),
			SentimentDistribution: sentimentDistribution(brandReviews),
			TotalProducts:         len(brandProducts),
			Products:              productEntries(brandReviews, brandProducts, true),
			LinksSent:             brandLinks,
			ResponseRate:          responseRate,
			RecentReviews:         recentReviews(brandReviews, perBrandRecentLimit),
			SentimentTrend:        sentimentTrend(brandReviews, time.Now()),
		})
	}

	overallResponseRate := 0.0
	if len(allLinks) > 0 {
		overallResponseRate = round1(float64(len(allReviews)) / float64(len(allLinks)) * 100)
	}

	brandNames := make(map[string]string, len(brands))
	for _, b := range brands {
		brandNames[b.BrandID] = b.BrandName
	}
	activity := recentReviews(allReviews, activityRecentLimit)
	for i := range activity {
		activity[i].BrandName = brandNames[activity[i].BrandID]
		activity[i].ReviewText = utils.Truncate(activity[i].ReviewText, activityTextLimit)
	}

	insights := &response_models.GlobalInsights{
		TotalBrands:           len(brands),
		TotalReviews:          len(allReviews),
		OverallAvgRating:      avgRating(allReviews),
		OverallSentimentScore: sentimentScore(allReviews),
		SentimentDistribution: sentimentDistribution(allReviews),
		SentimentTrend:        sentimentTrend(allReviews, time.Now()),
		TotalProducts:         len(allProducts),
		TotalLinksSent:        len(allLinks),
		OverallResponseRate:   overallResponseRate,
		Brands:                brandEntries,
		RecentActivity:        activity,
	}

	s.cacheSet(ctx, globalCacheKey, insights)
	return insights, nil
}

func (s *InsightsService) RefreshProductSummary(ctx context.Context, productID, brandID string) {
	reviews, err := s.reviews.ListReviews(ctx, brandID, productID)
	if err != nil {
		s.logger.Errorw("summary refresh: list reviews failed",
			"product_id", productID, "brand_id", brandID, "error", err)
		return
	}

	// Only reviews that completed enrichment feed the rollup.
	qualifying := reviews[:0:0]
	for _, r := range reviews {
		if r.Enriched() {
			qualifying = append(qualifying, r)
		}
	}
	if len(qualifying) == 0 {
		return
	}

	productName := productID
	if product, err := s.products.GetProduct(ctx, productID, brandID); err == nil && product != nil && product.ProductName != "" {
		productName = product.ProductName
	}

	summary, err := s.analysis.SummarizeProduct(ctx, qualifying, productName)
	if err != nil {
		s.logger.Errorw("summary refresh: analysis failed",
			"product_id", productID, "brand_id", brandID, "error", err)
		return
	}

	upd := repositories.AISummaryUpdate{
		Summary:           summary.OverallSummary,
		Strengths:         emptyIfNil(summary.KeyStrengths),
		Weaknesses:        emptyIfNil(summary.KeyWeaknesses),
		Recommendations:   emptyIfNil(summary.Recommendations),
		SentimentOverview: summary.CustomerSentimentOverview,
		ReviewCount:       len(qualifying),
		UpdatedAt:         time.Now().UTC(),
	}
	if err := s.products.UpdateAISummary(ctx, productID, brandID, upd); err != nil {
		s.logger.Errorw("summary refresh: persist failed",
			"product_id", productID, "brand_id", brandID, "error", err)
		return
	}

	s.cache.Delete(ctx, productCacheKey(productID, brandID), brandCacheKey(brandID), globalCacheKey)
}

func (s *InsightsService) cacheSet(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.cache.Set(ctx, key, raw, s.cacheTTL)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func avgRating(reviews []db_models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return round1(float64(sum) / float64(len(reviews)))
}

// sentimentDistribution buckets by stored sentiment; anything that is not
// positive or negative (including pending and unprocessed rows) counts as
// neutral so the three buckets always sum to the review total.
func sentimentDistribution(reviews []db_models.Review) response_models.SentimentDistribution {
	var dist response_models.SentimentDistribution
	for _, r := range reviews {
		switch r.Sentiment {
		case db_models.SentimentPositive:
			dist.Positive++
		case db_models.SentimentNegative:
			dist.Negative++
		default:
			dist.Neutral++
		}
	}
	return dist
}

// sentimentScore is the percentage of positive reviews, one decimal.
func sentimentScore(reviews []db_models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	positive := 0
	for _, r := range reviews {
		if r.Sentiment == db_models.SentimentPositive {
			positive++
		}
	}
	return round1(float64(positive) / float64(len(reviews)) * 100)
}

var monthLabels = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// sentimentTrend builds a fixed window of monthly buckets ending at the
// current month. Bucket boundaries are approximated by stepping back 30 days
// at a time, which matches how the window is presented on dashboards. Reviews
// with a zero timestamp are left out of the trend only.
func sentimentTrend(reviews []db_models.Review, now time.Time) []response_models.TrendBucket {
	buckets := make([]response_models.TrendBucket, 0, trendMonths)
	index := make(map[string]int, trendMonths)

	for i := trendMonths - 1; i >= 0; i-- {
		t := now.AddDate(0, 0, -30*i)
		key := t.Format("2006-01")
		if _, dup := index[key]; dup {
			continue
		}
		index[key] = len(buckets)
		buckets = append(buckets, response_models.TrendBucket{
			Month: monthLabels[t.Month()-1],
		})
	}

	keyed := make(map[string]*response_models.TrendBucket, len(buckets))
	for key, i := range index {
		keyed[key] = &buckets[i]
	}

	for _, r := range reviews {
		if r.CreatedAt.IsZero() {
			continue
		}
		bucket, ok := keyed[r.CreatedAt.Format("2006-01")]
		if !ok {
			continue
		}
		switch r.Sentiment {
		case db_models.SentimentPositive:
			bucket.Positive++
		case db_models.SentimentNegative:
			bucket.Negative++
		default:
			bucket.Neutral++
		}
	}

	return buckets
}

// topTopics counts trimmed topic strings across reviews and returns the five
// most frequent. Ties keep first-seen order.
func topTopics(reviews []db_models.Review) []response_models.TopicCount {
	counts := make(map[string]int)
	var order []string
	for _, r := range reviews {
		for _, topic := range r.Topics {
			topic = strings.TrimSpace(topic)
			if topic == "" {
				continue
			}
			if _, seen := counts[topic]; !seen {
				order = append(order, topic)
			}
			counts[topic]++
		}
	}

	result := make([]response_models.TopicCount, 0, len(order))
	for _, topic := range order {
		result = append(result, response_models.TopicCount{Topic: topic, Count: counts[topic]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	if len(result) > topTopicsLimit {
		result = result[:topTopicsLimit]
	}
	return result
}

func linkStats(links []db_models.ReviewLink) response_models.LinkStats {
	stats := response_models.LinkStats{TotalSent: len(links)}
	for _, l := range links {
		if l.Used {
			stats.TotalUsed++
		}
	}
	if stats.TotalSent > 0 {
		stats.UsageRate = round1(float64(stats.TotalUsed) / float64(stats.TotalSent) * 100)
	}
	return stats
}

func recentReviews(reviews []db_models.Review, limit int) []response_models.RecentReview {
	sorted := make([]db_models.Review, len(reviews))
	copy(sorted, reviews)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	result := make([]response_models.RecentReview, 0, len(sorted))
	for _, r := range sorted {
		timestamp := ""
		if !r.CreatedAt.IsZero() {
			timestamp = r.CreatedAt.UTC().Format(time.RFC3339)
		}
		result = append(result, response_models.RecentReview{
			FeedbackID:   r.FeedbackID,
			CustomerName: r.CustomerName,
			Rating:       r.Rating,
			ReviewText:   r.ReviewText,
			Sentiment:    r.Sentiment,
			Summary:      r.Summary,
			Topics:       r.Topics,
			ProductID:    r.ProductID,
			BrandID:      r.BrandID,
			Timestamp:    timestamp,
		})
	}
	return result
}

// productEntries builds the per-product rollup lines. Brand views list only
// products with at least one review; the global view keeps the full catalog
// (includeEmpty), so a brand's unreviewed products are still visible there.
func productEntries(reviews []db_models.Review, products []db_models.Product, includeEmpty bool) []response_models.ProductSummaryEntry {
	byProduct := make(map[string][]db_models.Review)
	for _, r := range reviews {
		byProduct[r.ProductID] = append(byProduct[r.ProductID], r)
	}

	entries := make([]response_models.ProductSummaryEntry, 0, len(products))
	seen := make(map[string]bool, len(products))
	for _, p := range products {
		rs := byProduct[p.ProductID]
		seen[p.ProductID] = true
		if len(rs) == 0 && !includeEmpty {
			continue
		}
		entries = append(entries, response_models.ProductSummaryEntry{
			ProductID:      p.ProductID,
			ProductName:    p.ProductName,
			TotalReviews:   len(rs),
			AvgRating:      avgRating(rs),
			SentimentScore: sentimentScore(rs),
			AIInsights:     productAIInsights(&p),
		})
	}

	// Reviews can reference products missing from the catalog; keep them
	// visible under their raw ID.
	for productID, rs := range byProduct {
		if seen[productID] {
			continue
		}
		entries = append(entries, response_models.ProductSummaryEntry{
			ProductID:      productID,
			ProductName:    productID,
			TotalReviews:   len(rs),
			AvgRating:      avgRating(rs),
			SentimentScore: sentimentScore(rs),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalReviews > entries[j].TotalReviews
	})
	return entries
}

func productAIInsights(p *db_models.Product) *response_models.AIInsights {
	if p == nil || p.AISummary == "" {
		return nil
	}
	updatedAt := ""
	if p.AISummaryUpdatedAt != nil {
		updatedAt = p.AISummaryUpdatedAt.UTC().Format(time.RFC3339)
	}
	return &response_models.AIInsights{
		Summary:           p.AISummary,
		Strengths:         emptyIfNil(p.AIStrengths),
		Weaknesses:        emptyIfNil(p.AIWeaknesses),
		Recommendations:   emptyIfNil(p.AIRecommendations),
		SentimentOverview: p.AISentimentOverview,
		UpdatedAt:         updatedAt,
		ReviewCount:       p.AISummaryReviewCount,
	}
}
