package review

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/motoworld/storefront/internal/domain/catalog"
	"github.com/motoworld/storefront/internal/domain/review"
	"github.com/motoworld/storefront/internal/domain/shared"
)

// ReviewService handles customer reviews and their aggregated summary.
// Every write that changes the approved review set triggers a summary
// regeneration; regeneration failures are logged but never fail the
// triggering operation.
type ReviewService struct {
	reviewRepo  review.ReviewRepository
	summaryRepo review.SummaryRepository
	productRepo catalog.ProductRepository
	summarizer  review.Summarizer
	logger      *zap.Logger
}

// NewReviewService creates a new review service
func NewReviewService(
	reviewRepo review.ReviewRepository,
	summaryRepo review.SummaryRepository,
	productRepo catalog.ProductRepository,
	summarizer review.Summarizer,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		summaryRepo: summaryRepo,
		productRepo: productRepo,
		summarizer:  summarizer,
		logger:      logger,
	}
}

// Submit creates a review for a product. A user may review a product
// at most once.
func (s *ReviewService) Submit(ctx context.Context, userID, productID uuid.UUID, req SubmitReviewRequest) (*ReviewResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsForProductAndUser(ctx, productID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrDuplicateReview
	}

	rev, err := review.NewReview(productID, userID, req.Rating, req.Title, req.Comment)
	if err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, rev); err != nil {
		return nil, err
	}

	s.logger.Info("Review submitted",
		zap.String("review_id", rev.ID.String()),
		zap.String("product_id", productID.String()),
		zap.Int("rating", req.Rating))

	s.refreshSummary(ctx, product.ID, product.Name)

	return ToReviewResponse(rev), nil
}

// ListByProduct returns a product's reviews. The public view only
// shows approved reviews; the admin view shows all of them.
func (s *ReviewService) ListByProduct(ctx context.Context, productID uuid.UUID, filter ReviewListFilter, publicOnly bool) (*shared.Paginated[ReviewResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		f.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		f.OrderDir = filter.OrderDir
	}
	if filter.Rating > 0 {
		f.Filters["rating"] = filter.Rating
	}
	if publicOnly {
		f.Filters["is_approved"] = true
	}

	reviews, total, err := s.reviewRepo.FindByProduct(ctx, productID, f)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToReviewResponses(reviews), total, f.Page, f.PageSize)
	return &result, nil
}

// GetSummary returns the product's aggregated review summary
func (s *ReviewService) GetSummary(ctx context.Context, productID uuid.UUID) (*SummaryResponse, error) {
	summary, err := s.summaryRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return ToSummaryResponse(summary), nil
}

// Approve makes a review publicly visible
func (s *ReviewService) Approve(ctx context.Context, reviewID uuid.UUID) (*ReviewResponse, error) {
	return s.moderate(ctx, reviewID, func(r *review.Review) { r.Approve() })
}

// Reject hides a review from the storefront
func (s *ReviewService) Reject(ctx context.Context, reviewID uuid.UUID) (*ReviewResponse, error) {
	return s.moderate(ctx, reviewID, func(r *review.Review) { r.Reject() })
}

// Delete removes a review
func (s *ReviewService) Delete(ctx context.Context, reviewID uuid.UUID) error {
	rev, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return err
	}

	if product, err := s.productRepo.FindByID(ctx, rev.ProductID); err == nil {
		s.refreshSummary(ctx, product.ID, product.Name)
	}
	return nil
}

// RegenerateSummary rebuilds a product's summary from its approved
// reviews. With no approved reviews left, the stored summary is
// removed.
func (s *ReviewService) RegenerateSummary(ctx context.Context, productID uuid.UUID) (*SummaryResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	summary, err := s.generateSummary(ctx, product.ID, product.Name)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, shared.ErrNotFound
	}
	return ToSummaryResponse(summary), nil
}

func (s *ReviewService) moderate(ctx context.Context, reviewID uuid.UUID, apply func(*review.Review)) (*ReviewResponse, error) {
	rev, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	apply(rev)
	if err := s.reviewRepo.Save(ctx, rev); err != nil {
		return nil, err
	}

	if product, err := s.productRepo.FindByID(ctx, rev.ProductID); err == nil {
		s.refreshSummary(ctx, product.ID, product.Name)
	}
	return ToReviewResponse(rev), nil
}

// refreshSummary regenerates the summary and logs instead of failing
func (s *ReviewService) refreshSummary(ctx context.Context, productID uuid.UUID, productName string) {
	if _, err := s.generateSummary(ctx, productID, productName); err != nil {
		s.logger.Warn("Review summary regeneration failed",
			zap.String("product_id", productID.String()),
			zap.Error(err))
	}
}

// generateSummary builds and stores the summary row. The external
// generator is used when configured; any generator failure falls back
// to the deterministic keyword summary, so a summary is always
// produced while approved reviews exist.
func (s *ReviewService) generateSummary(ctx context.Context, productID uuid.UUID, productName string) (*review.ReviewSummary, error) {
	recent, err := s.reviewRepo.FindRecentApproved(ctx, productID, review.MaxSummaryReviews)
	if err != nil {
		return nil, err
	}
	if len(recent) == 0 {
		if err := s.summaryRepo.DeleteByProduct(ctx, productID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	text := ""
	if s.summarizer != nil && s.summarizer.Enabled() {
		text, err = s.summarizer.Summarize(ctx, productName, recent)
		if err != nil {
			s.logger.Warn("Summarizer failed, using fallback",
				zap.String("product_id", productID.String()),
				zap.Error(err))
			text = ""
		}
	}
	if text == "" {
		text = review.FallbackSummary(recent)
	}

	summary := review.NewReviewSummary(productID, text, len(recent), review.AverageRating(recent))
	if err := s.summaryRepo.Upsert(ctx, summary); err != nil {
		return nil, err
	}
	return summary, nil
}
