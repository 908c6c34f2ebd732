package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/motoworld/storefront/internal/domain/shared"
)

// CategoryRepository persists categories
type CategoryRepository interface {
	shared.Repository[Category]
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	FindByNameAndParent(ctx context.Context, name string, parentID *uuid.UUID) (*Category, error)
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]Category, error)
	FindRoots(ctx context.Context) ([]Category, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	HasProducts(ctx context.Context, categoryID uuid.UUID) (bool, error)
}

// ProductRepository persists products and their variants and images
type ProductRepository interface {
	shared.Repository[Product]
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	FindFeatured(ctx context.Context, limit int) ([]Product, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	SKUExists(ctx context.Context, sku string) (bool, error)

	// DecrementStock atomically subtracts quantity from the product-level
	// pool. It fails with shared.ErrInsufficientStock when the pool holds
	// less than quantity.
	DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) error

	FindVariant(ctx context.Context, variantID uuid.UUID) (*ProductVariant, error)
	SaveVariant(ctx context.Context, variant *ProductVariant) error
	DeleteVariant(ctx context.Context, variantID uuid.UUID) error
	DecrementVariantStock(ctx context.Context, variantID uuid.UUID, quantity int) error

	SaveImage(ctx context.Context, image *ProductImage) error
	DeleteImage(ctx context.Context, imageID uuid.UUID) error
	FindImages(ctx context.Context, productID uuid.UUID) ([]ProductImage, error)
}
