package catalog

import (
	"github.com/google/uuid"

	"github.com/motoworld/storefront/internal/domain/shared"
)

// ProductImage is image metadata attached to a product. At most one
// image per product is primary; the repository enforces that on save.
type ProductImage struct {
	shared.BaseEntity
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	URL       string    `gorm:"type:varchar(500);not null"`
	AltText   string    `gorm:"type:varchar(200)"`
	IsPrimary bool      `gorm:"not null;default:false"`
	SortOrder int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductImage) TableName() string {
	return "product_images"
}

// NewProductImage creates image metadata for a product
func NewProductImage(productID uuid.UUID, url, altText string, isPrimary bool) (*ProductImage, error) {
	if url == "" {
		return nil, shared.NewDomainError("INVALID_URL", "Image URL cannot be empty")
	}
	if len(url) > 500 {
		return nil, shared.NewDomainError("INVALID_URL", "Image URL cannot exceed 500 characters")
	}

	return &ProductImage{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		URL:        url,
		AltText:    altText,
		IsPrimary:  isPrimary,
	}, nil
}
