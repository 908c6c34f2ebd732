package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/motoworld/storefront/internal/domain/catalog"
	"github.com/motoworld/storefront/internal/domain/shared"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// Create creates a new product in draft status. Slug and SKU are
// derived from the name and category and uniqued on collision.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
		}
		return nil, err
	}

	product, err := catalog.NewProduct(req.Name, req.Description, category.ID, req.Price)
	if err != nil {
		return nil, err
	}

	product.ShortDescription = req.ShortDescription
	product.Brand = req.Brand
	product.Weight = req.Weight

	if req.ComparePrice != nil {
		if err := product.SetComparePrice(req.ComparePrice); err != nil {
			return nil, err
		}
	}
	if req.StockQuantity != nil {
		if err := product.SetStock(*req.StockQuantity); err != nil {
			return nil, err
		}
	}
	if req.MinStockLevel != nil {
		if err := product.SetMinStockLevel(*req.MinStockLevel); err != nil {
			return nil, err
		}
	}
	if req.IsFeatured {
		product.SetFeatured(true)
	}

	slug, err := s.uniqueSlug(ctx, catalog.Slugify(req.Name))
	if err != nil {
		return nil, err
	}
	if err := product.SetSlug(slug); err != nil {
		return nil, err
	}

	sku := req.SKU
	if sku == "" {
		sku, err = s.uniqueSKU(ctx, catalog.BuildSKU(category.Name, req.Name))
		if err != nil {
			return nil, err
		}
	} else {
		exists, err := s.productRepo.SKUExists(ctx, sku)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
		}
	}
	if err := product.SetSKU(sku); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("sku", product.SKU),
		zap.String("slug", product.Slug),
	)

	return ToProductResponse(product), nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetBySlug retrieves a product by slug. With activeOnly, non-active
// products are reported as not found, hiding drafts from the storefront.
func (s *ProductService) GetBySlug(ctx context.Context, slug string, activeOnly bool) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if activeOnly && !product.IsActive() {
		return nil, shared.ErrNotFound
	}
	return ToProductResponse(product), nil
}

// List retrieves products matching the filter with the total count
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductListResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search

	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
		domainFilter.OrderDir = filter.OrderDir
	}

	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Brand != "" {
		domainFilter.Filters["brand"] = filter.Brand
	}
	if filter.IsFeatured != nil {
		domainFilter.Filters["is_featured"] = *filter.IsFeatured
	}
	if filter.MinPrice != nil {
		domainFilter.Filters["min_price"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		domainFilter.Filters["max_price"] = *filter.MaxPrice
	}
	if filter.InStock != nil {
		domainFilter.Filters["in_stock"] = *filter.InStock
	}
	if filter.OnSale != nil {
		domainFilter.Filters["on_sale"] = *filter.OnSale
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductListResponses(products), total, nil
}

// ListFeatured retrieves active featured products for the storefront
func (s *ProductService) ListFeatured(ctx context.Context, limit int) ([]ProductListResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 12
	}
	products, err := s.productRepo.FindFeatured(ctx, limit)
	if err != nil {
		return nil, err
	}
	return ToProductListResponses(products), nil
}

// Update updates an existing product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil || req.ShortDescription != nil || req.Brand != nil {
		name := product.Name
		if req.Name != nil {
			name = *req.Name
		}
		description := product.Description
		if req.Description != nil {
			description = *req.Description
		}
		short := product.ShortDescription
		if req.ShortDescription != nil {
			short = *req.ShortDescription
		}
		brand := product.Brand
		if req.Brand != nil {
			brand = *req.Brand
		}
		if err := product.Update(name, description, short, brand); err != nil {
			return nil, err
		}
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return nil, err
		}
		product.CategoryID = *req.CategoryID
	}

	if req.Price != nil {
		if err := product.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.ClearComparePrice {
		if err := product.SetComparePrice(nil); err != nil {
			return nil, err
		}
	} else if req.ComparePrice != nil {
		if err := product.SetComparePrice(req.ComparePrice); err != nil {
			return nil, err
		}
	}
	if req.StockQuantity != nil {
		if err := product.SetStock(*req.StockQuantity); err != nil {
			return nil, err
		}
	}
	if req.MinStockLevel != nil {
		if err := product.SetMinStockLevel(*req.MinStockLevel); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		if err := product.SetStatus(catalog.ProductStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.IsFeatured != nil {
		product.SetFeatured(*req.IsFeatured)
	}
	if req.Weight != nil {
		product.Weight = req.Weight
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// Delete deletes a product with its variants and images
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	for i := range product.Variants {
		if err := s.productRepo.DeleteVariant(ctx, product.Variants[i].ID); err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
	}
	for i := range product.Images {
		if err := s.productRepo.DeleteImage(ctx, product.Images[i].ID); err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
	}

	return s.productRepo.Delete(ctx, id)
}

// AddVariant adds a variant to a product. Without an explicit SKU the
// variant inherits the product SKU with a suffix from its name.
func (s *ProductService) AddVariant(ctx context.Context, productID uuid.UUID, req CreateVariantRequest) (*VariantResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	for i := range product.Variants {
		if strings.EqualFold(product.Variants[i].Name, req.Name) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Variant with this name already exists")
		}
	}

	sku := req.SKU
	if sku == "" {
		sku = fmt.Sprintf("%s-%s", product.SKU, variantSuffix(req.Name))
	}

	variant, err := catalog.NewProductVariant(product.ID, req.Name, sku, req.PriceAdjustment, req.StockQuantity)
	if err != nil {
		return nil, err
	}
	if req.Attributes != "" {
		if err := variant.SetAttributes(req.Attributes); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.SaveVariant(ctx, variant); err != nil {
		return nil, err
	}

	resp := ToVariantResponse(variant, product.Price)
	return &resp, nil
}

// UpdateVariant updates a product variant
func (s *ProductService) UpdateVariant(ctx context.Context, productID, variantID uuid.UUID, req UpdateVariantRequest) (*VariantResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	variant, err := s.productRepo.FindVariant(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if variant.ProductID != product.ID {
		return nil, shared.ErrNotFound
	}

	if req.Name != nil {
		variant.Name = *req.Name
	}
	if req.PriceAdjustment != nil {
		variant.PriceAdjustment = *req.PriceAdjustment
	}
	if req.StockQuantity != nil {
		if err := variant.SetStock(*req.StockQuantity); err != nil {
			return nil, err
		}
	}
	if req.Attributes != nil {
		if err := variant.SetAttributes(*req.Attributes); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		if *req.IsActive {
			variant.Activate()
		} else {
			variant.Deactivate()
		}
	}

	if err := s.productRepo.SaveVariant(ctx, variant); err != nil {
		return nil, err
	}

	resp := ToVariantResponse(variant, product.Price)
	return &resp, nil
}

// DeleteVariant deletes a product variant
func (s *ProductService) DeleteVariant(ctx context.Context, productID, variantID uuid.UUID) error {
	variant, err := s.productRepo.FindVariant(ctx, variantID)
	if err != nil {
		return err
	}
	if variant.ProductID != productID {
		return shared.ErrNotFound
	}
	return s.productRepo.DeleteVariant(ctx, variantID)
}

// AddImage attaches an image to a product
func (s *ProductService) AddImage(ctx context.Context, productID uuid.UUID, req AddImageRequest) (*ImageResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	image, err := catalog.NewProductImage(product.ID, req.URL, req.AltText, req.IsPrimary)
	if err != nil {
		return nil, err
	}
	image.SortOrder = req.SortOrder

	// the first image of a product becomes primary automatically
	if len(product.Images) == 0 {
		image.IsPrimary = true
	}

	if err := s.productRepo.SaveImage(ctx, image); err != nil {
		return nil, err
	}

	resp := ToImageResponse(image)
	return &resp, nil
}

// DeleteImage removes an image from a product
func (s *ProductService) DeleteImage(ctx context.Context, productID, imageID uuid.UUID) error {
	images, err := s.productRepo.FindImages(ctx, productID)
	if err != nil {
		return err
	}
	for i := range images {
		if images[i].ID == imageID {
			return s.productRepo.DeleteImage(ctx, imageID)
		}
	}
	return shared.ErrNotFound
}

// uniqueSlug appends a numeric suffix until the slug is free
func (s *ProductService) uniqueSlug(ctx context.Context, base string) (string, error) {
	if base == "" {
		base = "product"
	}
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		candidate := catalog.NextSlug(base, attempt)
		exists, err := s.productRepo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", shared.NewDomainError("SLUG_EXHAUSTED", "Could not find a free slug")
}

// uniqueSKU appends a zero-padded counter until the SKU is free
func (s *ProductService) uniqueSKU(ctx context.Context, base string) (string, error) {
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		candidate := catalog.NextSKU(base, attempt)
		exists, err := s.productRepo.SKUExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", shared.NewDomainError("SKU_EXHAUSTED", "Could not find a free SKU")
}

// variantSuffix condenses a variant name into an SKU suffix
func variantSuffix(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() >= 8 {
				break
			}
		}
	}
	if b.Len() == 0 {
		return "VAR"
	}
	return b.String()
}
