package review

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motoworld/storefront/internal/domain/review"
)

// SubmitReviewRequest represents a request to review a product
type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Title   string `json:"title" binding:"max=200"`
	Comment string `json:"comment" binding:"required,notblank,min=10,max=2000"`
}

// ReviewListFilter represents filter options for review lists
type ReviewListFilter struct {
	Rating   int    `form:"rating" binding:"omitempty,min=1,max=5"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID                 uuid.UUID `json:"id"`
	ProductID          uuid.UUID `json:"product_id"`
	UserID             uuid.UUID `json:"user_id"`
	Rating             int       `json:"rating"`
	Title              string    `json:"title,omitempty"`
	Comment            string    `json:"comment"`
	IsApproved         bool      `json:"is_approved"`
	IsVerifiedPurchase bool      `json:"is_verified_purchase"`
	CreatedAt          time.Time `json:"created_at"`
}

// SummaryResponse represents the aggregated review summary
type SummaryResponse struct {
	ProductID      uuid.UUID       `json:"product_id"`
	Summary        string          `json:"summary"`
	TotalReviews   int             `json:"total_reviews"`
	AverageRating  decimal.Decimal `json:"average_rating"`
	SentimentScore decimal.Decimal `json:"sentiment_score"`
	GeneratedAt    time.Time       `json:"generated_at"`
}

// ToReviewResponse converts a domain Review to ReviewResponse
func ToReviewResponse(r *review.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:                 r.ID,
		ProductID:          r.ProductID,
		UserID:             r.UserID,
		Rating:             r.Rating,
		Title:              r.Title,
		Comment:            r.Comment,
		IsApproved:         r.IsApproved,
		IsVerifiedPurchase: r.IsVerifiedPurchase,
		CreatedAt:          r.CreatedAt,
	}
}

// ToReviewResponses converts a slice of domain Reviews
func ToReviewResponses(reviews []review.Review) []ReviewResponse {
	responses := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		responses[i] = *ToReviewResponse(&reviews[i])
	}
	return responses
}

// ToSummaryResponse converts a domain ReviewSummary to SummaryResponse
func ToSummaryResponse(s *review.ReviewSummary) *SummaryResponse {
	return &SummaryResponse{
		ProductID:      s.ProductID,
		Summary:        s.Summary,
		TotalReviews:   s.TotalReviews,
		AverageRating:  s.AverageRating,
		SentimentScore: s.SentimentScore,
		GeneratedAt:    s.GeneratedAt,
	}
}
