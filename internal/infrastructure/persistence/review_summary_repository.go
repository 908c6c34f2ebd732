package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/motoworld/storefront/internal/domain/review"
	"github.com/motoworld/storefront/internal/domain/shared"
)

// GormReviewSummaryRepository implements SummaryRepository using GORM
type GormReviewSummaryRepository struct {
	db *gorm.DB
}

// NewGormReviewSummaryRepository creates a new GormReviewSummaryRepository
func NewGormReviewSummaryRepository(db *gorm.DB) *GormReviewSummaryRepository {
	return &GormReviewSummaryRepository{db: db}
}

// FindByProduct finds the summary row for a product
func (r *GormReviewSummaryRepository) FindByProduct(ctx context.Context, productID uuid.UUID) (*review.ReviewSummary, error) {
	var summary review.ReviewSummary
	if err := conn(ctx, r.db).First(&summary, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &summary, nil
}

// Upsert writes the summary, replacing any existing row for the product
func (r *GormReviewSummaryRepository) Upsert(ctx context.Context, summary *review.ReviewSummary) error {
	return conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"summary", "total_reviews", "average_rating",
			"sentiment_score", "generated_at", "updated_at",
		}),
	}).Create(summary).Error
}

// DeleteByProduct deletes the summary row for a product, if any
func (r *GormReviewSummaryRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	return conn(ctx, r.db).Delete(&review.ReviewSummary{}, "product_id = ?", productID).Error
}

// Ensure GormReviewSummaryRepository implements SummaryRepository
var _ review.SummaryRepository = (*GormReviewSummaryRepository)(nil)
