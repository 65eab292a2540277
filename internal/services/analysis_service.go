package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"reviewpulse/internal/models/db_models"
	"reviewpulse/pkg/utils"
)

// summaryReviewLimit caps how many reviews feed a product summary prompt.
const summaryReviewLimit = 30

type ReviewAnalysis struct {
	Sentiment       string   `json:"sentiment"`
	Confidence      float64  `json:"confidence"`
	Topics          []string `json:"topics"`
	Summary         string   `json:"summary"`
	Pros            []string `json:"pros"`
	Cons            []string `json:"cons"`
	FeatureRequests []string `json:"feature_requests"`
}

type ProductSummaryAnalysis struct {
	OverallSummary            string   `json:"overall_summary"`
	KeyStrengths              []string `json:"key_strengths"`
	KeyWeaknesses             []string `json:"key_weaknesses"`
	Recommendations           []string `json:"recommendations"`
	CustomerSentimentOverview string   `json:"customer_sentiment_overview"`
}

// AnalysisServiceInterface owns prompt construction and response parsing for
// the enrichment collaborator. A malformed response comes back as an error
// carrying a raw-text prefix, never a panic.
type AnalysisServiceInterface interface {
	AnalyzeReview(ctx context.Context, reviewText string, rating int) (*ReviewAnalysis, error)
	SummarizeProduct(ctx context.Context, reviews []db_models.Review, productName string) (*ProductSummaryAnalysis, error)
}

type AnalysisService struct {
	client  utils.AIClientInterface
	timeout time.Duration
}

func NewAnalysisService(client utils.AIClientInterface, timeout time.Duration) AnalysisServiceInterface {
	return &AnalysisService{client: client, timeout: timeout}
}

func (s *AnalysisService) AnalyzeReview(ctx context.Context, reviewText string, rating int) (*ReviewAnalysis, error) {
	prompt := buildAnalysisPrompt(reviewText, rating)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.client.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	payload, err := utils.ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var analysis ReviewAnalysis
	if err := json.Unmarshal([]byte(payload), &analysis); err != nil {
		return nil, fmt.Errorf("unmarshal analysis: %w: %s", err, utils.Truncate(payload, 200))
	}
	return &analysis, nil
}

func (s *AnalysisService) SummarizeProduct(ctx context.Context, reviews []db_models.Review, productName string) (*ProductSummaryAnalysis, error) {
	prompt := buildSummaryPrompt(reviews, productName)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.client.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	payload, err := utils.ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var summary ProductSummaryAnalysis
	if err := json.Unmarshal([]byte(payload), &summary); err != nil {
		return nil, fmt.Errorf("unmarshal summary: %w: %s", err, utils.Truncate(payload, 200))
	}
	return &summary, nil
}

func buildAnalysisPrompt(reviewText string, rating int) string {
	return fmt.Sprintf(`Analyze this product review and respond ONLY with valid JSON.

Review: %q
Star Rating: %d/5

Respond with this exact JSON structure:
{
  "sentiment": "positive" or "neutral" or "negative",
  "confidence": 0.0 to 1.0,
  "topics": ["topic1", "topic2", "topic3"],
  "summary": "One sentence summary of the review",
  "pros": ["pro1", "pro2"],
  "cons": ["con1", "con2"],
  "feature_requests": ["any feature requests mentioned or empty array"]
}

Rules:
- sentiment: positive if rating 4-5, negative if 1-2, neutral if 3
- topics: extract 2-5 key themes (quality, delivery, packaging, etc.)
- summary: max 20 words, objective
- Respond ONLY with JSON, no other text`, reviewText, rating)
}

func buildSummaryPrompt(reviews []db_models.Review, productName string) string {
	// Most recent reviews first, capped.
	sorted := make([]db_models.Review, len(reviews))
	copy(sorted, reviews)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > summaryReviewLimit {
		sorted = sorted[:summaryReviewLimit]
	}

	var lines []string
	for i, r := range sorted {
		lines = append(lines, fmt.Sprintf("Review %d (Rating: %d/5, Sentiment: %s): %q", i+1, r.Rating, r.Sentiment, r.ReviewText))
	}

	total := len(reviews)
	avg := 0.0
	if total > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		avg = round1(float64(sum) / float64(total))
	}

	return fmt.Sprintf(`You are a product analytics expert. Analyze ALL %d customer reviews for the product %q and provide a comprehensive summary.

Product: %s
Total Reviews: %d
Average Rating: %.1f/5

Reviews:
%s

Respond ONLY with valid JSON using this exact structure:
{
  "overall_summary": "A 2-3 sentence summary of what customers overall think about this product",
  "key_strengths": ["strength1", "strength2", "strength3"],
  "key_weaknesses": ["weakness1", "weakness2"],
  "recommendations": ["actionable recommendation 1", "actionable recommendation 2", "actionable recommendation 3"],
  "customer_sentiment_overview": "One sentence describing the overall customer mood/satisfaction"
}

Rules:
- overall_summary: objective, data-driven, 2-3 sentences max
- key_strengths: top 2-4 things customers love
- key_weaknesses: top 1-3 things customers dislike (empty array if none)
- recommendations: 2-4 actionable suggestions for the business to improve
- customer_sentiment_overview: one concise sentence
- Respond ONLY with JSON, no other text`,
		total, productName, productName, total, avg, strings.Join(lines, "\n"))
}
