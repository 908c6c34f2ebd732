package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motoworld/storefront/internal/domain/catalog"
)

// CreateCategoryRequest represents a request to create a new category
type CreateCategoryRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=100"`
	Description string     `json:"description" binding:"max=2000"`
	ParentID    *uuid.UUID `json:"parent_id"`
	ImageURL    string     `json:"image_url" binding:"omitempty,url,max=500"`
	SortOrder   *int       `json:"sort_order"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	ParentID    *uuid.UUID `json:"parent_id"`
	MoveToRoot  bool       `json:"move_to_root"`
	ImageURL    *string    `json:"image_url" binding:"omitempty,url,max=500"`
	SortOrder   *int       `json:"sort_order"`
	IsActive    *bool      `json:"is_active"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	ParentID    *uuid.UUID `json:"parent_id"`
	ImageURL    string     `json:"image_url"`
	IsActive    bool       `json:"is_active"`
	SortOrder   int        `json:"sort_order"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CategoryTreeNode represents a category with its nested children
type CategoryTreeNode struct {
	CategoryResponse
	Children []CategoryTreeNode `json:"children"`
}

// CategoryListFilter represents filter options for category list
type CategoryListFilter struct {
	Search   string `form:"search"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ParentID:    c.ParentID,
		ImageURL:    c.ImageURL,
		IsActive:    c.IsActive,
		SortOrder:   c.SortOrder,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToCategoryResponses converts a slice of domain Categories
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = *ToCategoryResponse(&categories[i])
	}
	return responses
}

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name             string           `json:"name" binding:"required,min=1,max=200"`
	Description      string           `json:"description"`
	ShortDescription string           `json:"short_description" binding:"max=500"`
	Brand            string           `json:"brand" binding:"max=100"`
	CategoryID       uuid.UUID        `json:"category_id" binding:"required"`
	Price            decimal.Decimal  `json:"price" binding:"required"`
	ComparePrice     *decimal.Decimal `json:"compare_price"`
	SKU              string           `json:"sku" binding:"omitempty,max=50"`
	StockQuantity    *int             `json:"stock_quantity"`
	MinStockLevel    *int             `json:"min_stock_level"`
	IsFeatured       bool             `json:"is_featured"`
	Weight           *decimal.Decimal `json:"weight"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name              *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description       *string          `json:"description"`
	ShortDescription  *string          `json:"short_description" binding:"omitempty,max=500"`
	Brand             *string          `json:"brand" binding:"omitempty,max=100"`
	CategoryID        *uuid.UUID       `json:"category_id"`
	Price             *decimal.Decimal `json:"price"`
	ComparePrice      *decimal.Decimal `json:"compare_price"`
	ClearComparePrice bool             `json:"clear_compare_price"`
	StockQuantity     *int             `json:"stock_quantity"`
	MinStockLevel     *int             `json:"min_stock_level"`
	Status            *string          `json:"status" binding:"omitempty,oneof=draft active inactive out_of_stock"`
	IsFeatured        *bool            `json:"is_featured"`
	Weight            *decimal.Decimal `json:"weight"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search     string     `form:"search"`
	CategoryID *uuid.UUID `form:"category_id"`
	Status     string     `form:"status" binding:"omitempty,oneof=draft active inactive out_of_stock"`
	Brand      string     `form:"brand"`
	IsFeatured *bool      `form:"is_featured"`
	MinPrice   *float64   `form:"min_price"`
	MaxPrice   *float64   `form:"max_price"`
	InStock    *bool      `form:"in_stock"`
	OnSale     *bool      `form:"on_sale"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                 uuid.UUID         `json:"id"`
	Name               string            `json:"name"`
	Slug               string            `json:"slug"`
	SKU                string            `json:"sku"`
	Description        string            `json:"description"`
	ShortDescription   string            `json:"short_description"`
	Brand              string            `json:"brand"`
	CategoryID         uuid.UUID         `json:"category_id"`
	Price              decimal.Decimal   `json:"price"`
	ComparePrice       *decimal.Decimal  `json:"compare_price,omitempty"`
	StockQuantity      int               `json:"stock_quantity"`
	MinStockLevel      int               `json:"min_stock_level"`
	Status             string            `json:"status"`
	IsFeatured         bool              `json:"is_featured"`
	IsOnSale           bool              `json:"is_on_sale"`
	DiscountPercentage int               `json:"discount_percentage"`
	InStock            bool              `json:"in_stock"`
	LowStock           bool              `json:"low_stock"`
	Weight             *decimal.Decimal  `json:"weight,omitempty"`
	Variants           []VariantResponse `json:"variants"`
	Images             []ImageResponse   `json:"images"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// ProductListResponse represents a list item for products
type ProductListResponse struct {
	ID                 uuid.UUID        `json:"id"`
	Name               string           `json:"name"`
	Slug               string           `json:"slug"`
	SKU                string           `json:"sku"`
	Brand              string           `json:"brand"`
	CategoryID         uuid.UUID        `json:"category_id"`
	Price              decimal.Decimal  `json:"price"`
	ComparePrice       *decimal.Decimal `json:"compare_price,omitempty"`
	Status             string           `json:"status"`
	IsFeatured         bool             `json:"is_featured"`
	IsOnSale           bool             `json:"is_on_sale"`
	DiscountPercentage int              `json:"discount_percentage"`
	InStock            bool             `json:"in_stock"`
	PrimaryImage       string           `json:"primary_image,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
}

// CreateVariantRequest represents a request to add a product variant
type CreateVariantRequest struct {
	Name            string          `json:"name" binding:"required,min=1,max=100"`
	SKU             string          `json:"sku" binding:"omitempty,max=50"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
	StockQuantity   int             `json:"stock_quantity" binding:"min=0"`
	Attributes      string          `json:"attributes"`
}

// UpdateVariantRequest represents a request to update a product variant
type UpdateVariantRequest struct {
	Name            *string          `json:"name" binding:"omitempty,min=1,max=100"`
	PriceAdjustment *decimal.Decimal `json:"price_adjustment"`
	StockQuantity   *int             `json:"stock_quantity" binding:"omitempty,min=0"`
	Attributes      *string          `json:"attributes"`
	IsActive        *bool            `json:"is_active"`
}

// VariantResponse represents a product variant in API responses
type VariantResponse struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       uuid.UUID       `json:"product_id"`
	Name            string          `json:"name"`
	SKU             string          `json:"sku"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
	FinalPrice      decimal.Decimal `json:"final_price"`
	StockQuantity   int             `json:"stock_quantity"`
	InStock         bool            `json:"in_stock"`
	Attributes      string          `json:"attributes"`
	IsActive        bool            `json:"is_active"`
}

// AddImageRequest represents a request to attach an image to a product
type AddImageRequest struct {
	URL       string `json:"url" binding:"required,url,max=500"`
	AltText   string `json:"alt_text" binding:"max=200"`
	IsPrimary bool   `json:"is_primary"`
	SortOrder int    `json:"sort_order"`
}

// ImageResponse represents a product image in API responses
type ImageResponse struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	AltText   string    `json:"alt_text"`
	IsPrimary bool      `json:"is_primary"`
	SortOrder int       `json:"sort_order"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) *ProductResponse {
	variants := make([]VariantResponse, len(p.Variants))
	for i := range p.Variants {
		variants[i] = ToVariantResponse(&p.Variants[i], p.Price)
	}
	images := make([]ImageResponse, len(p.Images))
	for i := range p.Images {
		images[i] = ToImageResponse(&p.Images[i])
	}

	return &ProductResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Slug:               p.Slug,
		SKU:                p.SKU,
		Description:        p.Description,
		ShortDescription:   p.ShortDescription,
		Brand:              p.Brand,
		CategoryID:         p.CategoryID,
		Price:              p.Price,
		ComparePrice:       p.ComparePrice,
		StockQuantity:      p.StockQuantity,
		MinStockLevel:      p.MinStockLevel,
		Status:             string(p.Status),
		IsFeatured:         p.IsFeatured,
		IsOnSale:           p.IsOnSale(),
		DiscountPercentage: p.DiscountPercentage(),
		InStock:            p.IsInStock(),
		LowStock:           p.IsLowStock(),
		Weight:             p.Weight,
		Variants:           variants,
		Images:             images,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

// ToProductListResponse converts a domain Product to ProductListResponse
func ToProductListResponse(p *catalog.Product) ProductListResponse {
	resp := ProductListResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Slug:               p.Slug,
		SKU:                p.SKU,
		Brand:              p.Brand,
		CategoryID:         p.CategoryID,
		Price:              p.Price,
		ComparePrice:       p.ComparePrice,
		Status:             string(p.Status),
		IsFeatured:         p.IsFeatured,
		IsOnSale:           p.IsOnSale(),
		DiscountPercentage: p.DiscountPercentage(),
		InStock:            p.IsInStock(),
		CreatedAt:          p.CreatedAt,
	}
	for i := range p.Images {
		if p.Images[i].IsPrimary {
			resp.PrimaryImage = p.Images[i].URL
			break
		}
	}
	if resp.PrimaryImage == "" && len(p.Images) > 0 {
		resp.PrimaryImage = p.Images[0].URL
	}
	return resp
}

// ToProductListResponses converts a slice of domain Products
func ToProductListResponses(products []catalog.Product) []ProductListResponse {
	responses := make([]ProductListResponse, len(products))
	for i := range products {
		responses[i] = ToProductListResponse(&products[i])
	}
	return responses
}

// ToVariantResponse converts a domain ProductVariant to VariantResponse
func ToVariantResponse(v *catalog.ProductVariant, productPrice decimal.Decimal) VariantResponse {
	return VariantResponse{
		ID:              v.ID,
		ProductID:       v.ProductID,
		Name:            v.Name,
		SKU:             v.SKU,
		PriceAdjustment: v.PriceAdjustment,
		FinalPrice:      v.FinalPrice(productPrice),
		StockQuantity:   v.StockQuantity,
		InStock:         v.IsInStock(),
		Attributes:      v.Attributes,
		IsActive:        v.IsActive,
	}
}

// ToImageResponse converts a domain ProductImage to ImageResponse
func ToImageResponse(img *catalog.ProductImage) ImageResponse {
	return ImageResponse{
		ID:        img.ID,
		URL:       img.URL,
		AltText:   img.AltText,
		IsPrimary: img.IsPrimary,
		SortOrder: img.SortOrder,
	}
}
