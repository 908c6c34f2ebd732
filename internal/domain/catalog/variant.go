package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motoworld/storefront/internal/domain/shared"
)

// ProductVariant is a purchasable variation of a product (size, color).
// A variant carries its own stock pool and a signed price adjustment
// relative to the parent product's price.
type ProductVariant struct {
	shared.BaseEntity
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_variant_product_name,priority:1"`
	Name            string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_variant_product_name,priority:2"`
	SKU             string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	PriceAdjustment decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	StockQuantity   int             `gorm:"not null;default:0"`
	Attributes      string          `gorm:"type:jsonb"`
	IsActive        bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ProductVariant) TableName() string {
	return "product_variants"
}

// NewProductVariant creates a variant of the given product
func NewProductVariant(productID uuid.UUID, name, sku string, priceAdjustment decimal.Decimal, stock int) (*ProductVariant, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Variant name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Variant name cannot exceed 100 characters")
	}
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "Variant SKU cannot be empty")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock quantity cannot be negative")
	}

	return &ProductVariant{
		BaseEntity:      shared.NewBaseEntity(),
		ProductID:       productID,
		Name:            name,
		SKU:             strings.ToUpper(sku),
		PriceAdjustment: priceAdjustment,
		StockQuantity:   stock,
		Attributes:      "{}",
		IsActive:        true,
	}, nil
}

// FinalPrice returns the effective unit price for this variant
func (v *ProductVariant) FinalPrice(productPrice decimal.Decimal) decimal.Decimal {
	return productPrice.Add(v.PriceAdjustment)
}

// IsInStock returns true if the variant pool has stock
func (v *ProductVariant) IsInStock() bool {
	return v.StockQuantity > 0
}

// SetStock sets the variant stock pool
func (v *ProductVariant) SetStock(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock quantity cannot be negative")
	}

	v.StockQuantity = quantity
	v.UpdatedAt = time.Now()

	return nil
}

// SetAttributes stores the variant attribute set as a JSON object
func (v *ProductVariant) SetAttributes(attributes string) error {
	if attributes == "" {
		attributes = "{}"
	}
	trimmed := strings.TrimSpace(attributes)
	if !strings.HasPrefix(trimmed, "{") || !strings.HasSuffix(trimmed, "}") {
		return shared.NewDomainError("INVALID_ATTRIBUTES", "Attributes must be a JSON object")
	}

	v.Attributes = trimmed
	v.UpdatedAt = time.Now()

	return nil
}

// Deactivate removes the variant from sale without deleting it
func (v *ProductVariant) Deactivate() {
	v.IsActive = false
	v.UpdatedAt = time.Now()
}

// Activate puts the variant back on sale
func (v *ProductVariant) Activate() {
	v.IsActive = true
	v.UpdatedAt = time.Now()
}
