package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/motoworld/storefront/internal/application/catalog"
	reviewapp "github.com/motoworld/storefront/internal/application/review"
)

// ReviewHandler handles product review and summary endpoints
type ReviewHandler struct {
	BaseHandler
	reviewService  *reviewapp.ReviewService
	productService *catalogapp.ProductService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService *reviewapp.ReviewService, productService *catalogapp.ProductService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, productService: productService}
}

// resolveProduct maps the public product slug onto a product id
func (h *ReviewHandler) resolveProduct(c *gin.Context) (uuid.UUID, bool) {
	product, err := h.productService.GetBySlug(c.Request.Context(), c.Param("slug"), true)
	if err != nil {
		h.HandleError(c, err)
		return uuid.Nil, false
	}
	return product.ID, true
}

// ListByProduct returns the approved reviews of a product
func (h *ReviewHandler) ListByProduct(c *gin.Context) {
	productID, ok := h.resolveProduct(c)
	if !ok {
		return
	}

	var filter reviewapp.ReviewListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.reviewService.ListByProduct(c.Request.Context(), productID, filter, true)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Summary returns the AI-generated review summary of a product
func (h *ReviewHandler) Summary(c *gin.Context) {
	productID, ok := h.resolveProduct(c)
	if !ok {
		return
	}

	summary, err := h.reviewService.GetSummary(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// Submit records a review by the authenticated user
func (h *ReviewHandler) Submit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	productID, ok := h.resolveProduct(c)
	if !ok {
		return
	}

	var req reviewapp.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	review, err := h.reviewService.Submit(c.Request.Context(), userID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, review)
}

// ListForModeration returns all reviews of a product, approved or not
func (h *ReviewHandler) ListForModeration(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product id")
		return
	}

	var filter reviewapp.ReviewListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.reviewService.ListByProduct(c.Request.Context(), productID, filter, false)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Approve publishes a review
func (h *ReviewHandler) Approve(c *gin.Context) {
	reviewID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid review id")
		return
	}

	review, err := h.reviewService.Approve(c.Request.Context(), reviewID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, review)
}

// Reject hides a review from the public listing
func (h *ReviewHandler) Reject(c *gin.Context) {
	reviewID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid review id")
		return
	}

	review, err := h.reviewService.Reject(c.Request.Context(), reviewID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, review)
}

// Delete removes a review permanently
func (h *ReviewHandler) Delete(c *gin.Context) {
	reviewID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid review id")
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), reviewID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegenerateSummary rebuilds a product's review summary on demand
func (h *ReviewHandler) RegenerateSummary(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product id")
		return
	}

	summary, err := h.reviewService.RegenerateSummary(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
