package review

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motoworld/storefront/internal/domain/shared"
)

// MaxSummaryReviews caps how many recent reviews feed a summary
const MaxSummaryReviews = 50

// MaxPromptReviews caps how many of those are sent to the generator
const MaxPromptReviews = 20

// ReviewSummary is the aggregated view of a product's reviews. One row
// exists per product; regeneration overwrites it.
type ReviewSummary struct {
	shared.BaseEntity
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Summary        string          `gorm:"type:text;not null"`
	TotalReviews   int             `gorm:"not null"`
	AverageRating  decimal.Decimal `gorm:"type:decimal(3,2);not null"`
	SentimentScore decimal.Decimal `gorm:"type:decimal(3,2);not null"`
	GeneratedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReviewSummary) TableName() string {
	return "review_summaries"
}

// NewReviewSummary builds a summary row from the aggregate numbers
func NewReviewSummary(productID uuid.UUID, summary string, totalReviews int, averageRating decimal.Decimal) *ReviewSummary {
	return &ReviewSummary{
		BaseEntity:     shared.NewBaseEntity(),
		ProductID:      productID,
		Summary:        summary,
		TotalReviews:   totalReviews,
		AverageRating:  averageRating.Round(2),
		SentimentScore: SentimentFromAverage(averageRating),
		GeneratedAt:    time.Now(),
	}
}

// SentimentFromAverage maps an average rating on the 1..5 scale onto
// [-1, 1]: (avg - 3) / 2, clamped. An average of 3.0 is neutral.
func SentimentFromAverage(avg decimal.Decimal) decimal.Decimal {
	score := avg.Sub(decimal.NewFromInt(3)).Div(decimal.NewFromInt(2))
	one := decimal.NewFromInt(1)
	if score.GreaterThan(one) {
		return one
	}
	if score.LessThan(one.Neg()) {
		return one.Neg()
	}
	return score.Round(2)
}

// AverageRating computes the mean rating of the given reviews
func AverageRating(reviews []Review) decimal.Decimal {
	if len(reviews) == 0 {
		return decimal.Zero
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(len(reviews))))
}

var (
	positiveWords = []string{"great", "excellent", "good", "love", "perfect", "amazing", "comfortable", "recommend", "quality", "fast"}
	negativeWords = []string{"bad", "poor", "terrible", "broken", "disappointed", "waste", "cheap", "slow", "wrong", "defective"}
)

// FallbackSummary builds a deterministic summary from the reviews when
// no text generator is available. It blends a sentiment sentence keyed
// off the average rating with simple keyword counts.
func FallbackSummary(reviews []Review) string {
	if len(reviews) == 0 {
		return ""
	}

	avg := AverageRating(reviews)

	var combined strings.Builder
	for _, r := range reviews {
		combined.WriteString(strings.ToLower(r.Title))
		combined.WriteByte(' ')
		combined.WriteString(strings.ToLower(r.Comment))
		combined.WriteByte(' ')
	}
	text := combined.String()

	positives := 0
	for _, w := range positiveWords {
		positives += strings.Count(text, w)
	}
	negatives := 0
	for _, w := range negativeWords {
		negatives += strings.Count(text, w)
	}

	var tone string
	switch {
	case avg.GreaterThanOrEqual(decimal.NewFromInt(4)):
		tone = "Customers are very satisfied with this product"
	case avg.GreaterThanOrEqual(decimal.NewFromInt(3)):
		tone = "Customers have mixed opinions about this product"
	default:
		tone = "Customers report significant issues with this product"
	}

	summary := fmt.Sprintf("%s, rating it %s out of 5 across %d reviews.", tone, avg.Round(1), len(reviews))
	switch {
	case positives > negatives:
		summary += " Positive mentions outweigh complaints."
	case negatives > positives:
		summary += " Complaints outweigh positive mentions."
	}

	return summary
}
