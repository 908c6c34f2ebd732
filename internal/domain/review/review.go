package review

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/motoworld/storefront/internal/domain/shared"
)

// MinCommentLength is the minimum length of a review comment
const MinCommentLength = 10

// Review is a customer review of a product. A user may review a
// product at most once.
type Review struct {
	shared.BaseAggregateRoot
	ProductID          uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_review_product_user,priority:1"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_review_product_user,priority:2"`
	Rating             int       `gorm:"not null"`
	Title              string    `gorm:"type:varchar(200)"`
	Comment            string    `gorm:"type:text;not null"`
	IsApproved         bool      `gorm:"not null;default:true"`
	IsVerifiedPurchase bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "reviews"
}

// NewReview creates an approved review
func NewReview(productID, userID uuid.UUID, rating int, title, comment string) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	if len(strings.TrimSpace(comment)) < MinCommentLength {
		return nil, shared.NewDomainError("INVALID_COMMENT", "Comment must be at least 10 characters")
	}

	return &Review{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		UserID:            userID,
		Rating:            rating,
		Title:             title,
		Comment:           strings.TrimSpace(comment),
		IsApproved:        true,
	}, nil
}

// MarkVerifiedPurchase flags the review as coming from a buyer
func (r *Review) MarkVerifiedPurchase() {
	r.IsVerifiedPurchase = true
	r.UpdatedAt = time.Now()
}

// Approve makes the review publicly visible
func (r *Review) Approve() {
	r.IsApproved = true
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// Reject hides the review from the storefront
func (r *Review) Reject() {
	r.IsApproved = false
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}
