package review

import (
	"context"

	"github.com/google/uuid"

	"github.com/motoworld/storefront/internal/domain/shared"
)

// ReviewRepository persists reviews
type ReviewRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]Review, int64, error)
	// FindRecentApproved returns up to limit approved reviews for the
	// product, newest first.
	FindRecentApproved(ctx context.Context, productID uuid.UUID, limit int) ([]Review, error)
	ExistsForProductAndUser(ctx context.Context, productID, userID uuid.UUID) (bool, error)
	Save(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SummaryRepository persists the per-product review summary
type SummaryRepository interface {
	FindByProduct(ctx context.Context, productID uuid.UUID) (*ReviewSummary, error)
	// Upsert writes the summary, replacing any existing row for the
	// same product.
	Upsert(ctx context.Context, summary *ReviewSummary) error
	DeleteByProduct(ctx context.Context, productID uuid.UUID) error
}

// Summarizer produces a natural-language synthesis of review texts.
// Implementations call an external text-generation service; Enabled
// reports whether the service is configured.
type Summarizer interface {
	Enabled() bool
	Summarize(ctx context.Context, productName string, reviews []Review) (string, error)
}
