package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motoworld/storefront/internal/domain/shared"
)

// ProductStatus represents the lifecycle status of a product
type ProductStatus string

const (
	ProductStatusDraft      ProductStatus = "draft"
	ProductStatusActive     ProductStatus = "active"
	ProductStatusInactive   ProductStatus = "inactive"
	ProductStatusOutOfStock ProductStatus = "out_of_stock"
)

// IsValid reports whether the status is one of the known values
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusDraft, ProductStatusActive, ProductStatusInactive, ProductStatusOutOfStock:
		return true
	}
	return false
}

// DefaultMinStockLevel is the low-stock alert threshold applied when
// none is given.
const DefaultMinStockLevel = 5

// Product is the aggregate root of the catalog. Stock on the product
// itself is the pool used for lines without a variant; variant lines
// draw from the variant's own stock.
type Product struct {
	shared.BaseAggregateRoot
	Name             string           `gorm:"type:varchar(200);not null"`
	Slug             string           `gorm:"type:varchar(220);not null;uniqueIndex"`
	SKU              string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description      string           `gorm:"type:text"`
	ShortDescription string           `gorm:"type:varchar(500)"`
	Brand            string           `gorm:"type:varchar(100);index"`
	CategoryID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	Price            decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	ComparePrice     *decimal.Decimal `gorm:"type:decimal(10,2)"`
	StockQuantity    int              `gorm:"not null;default:0"`
	MinStockLevel    int              `gorm:"not null;default:5"`
	Status           ProductStatus    `gorm:"type:varchar(20);not null;default:'draft';index"`
	IsFeatured       bool             `gorm:"not null;default:false;index"`
	Weight           *decimal.Decimal `gorm:"type:decimal(8,2)"`

	Variants []ProductVariant `gorm:"foreignKey:ProductID"`
	Images   []ProductImage   `gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product in draft status. Slug and SKU
// assignment is left to the application layer, which owns uniquing.
func NewProduct(name, description string, categoryID uuid.UUID, price decimal.Decimal) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		CategoryID:        categoryID,
		Price:             price,
		MinStockLevel:     DefaultMinStockLevel,
		Status:            ProductStatusDraft,
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description, shortDescription, brand string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.ShortDescription = shortDescription
	p.Brand = brand
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetPrice sets the selling price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	p.Price = price
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetComparePrice sets the strike-through reference price. Nil clears it.
func (p *Product) SetComparePrice(compare *decimal.Decimal) error {
	if compare != nil && compare.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Compare price cannot be negative")
	}

	p.ComparePrice = compare
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetStock sets the product-level stock pool
func (p *Product) SetStock(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock quantity cannot be negative")
	}

	p.StockQuantity = quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetMinStockLevel sets the low-stock alert threshold
func (p *Product) SetMinStockLevel(level int) error {
	if level < 0 {
		return shared.NewDomainError("INVALID_MIN_STOCK", "Minimum stock level cannot be negative")
	}

	p.MinStockLevel = level
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetStatus transitions the product to the given status
func (p *Product) SetStatus(status ProductStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown product status")
	}

	p.Status = status
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetFeatured marks or unmarks the product as featured
func (p *Product) SetFeatured(featured bool) {
	p.IsFeatured = featured
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetSKU sets the unique stock keeping unit code
func (p *Product) SetSKU(sku string) error {
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}

	p.SKU = strings.ToUpper(sku)
	return nil
}

// SetSlug sets the unique slug
func (p *Product) SetSlug(slug string) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot be empty")
	}
	if len(slug) > 220 {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot exceed 220 characters")
	}

	p.Slug = slug
	return nil
}

// IsActive returns true if the product is purchasable
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// IsInStock returns true if the product-level pool has stock
func (p *Product) IsInStock() bool {
	return p.StockQuantity > 0
}

// IsLowStock returns true if stock has fallen to the alert threshold
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.MinStockLevel
}

// IsOnSale returns true when a compare price exists and is strictly
// greater than the selling price
func (p *Product) IsOnSale() bool {
	return p.ComparePrice != nil && p.ComparePrice.GreaterThan(p.Price)
}

// DiscountPercentage returns the discount implied by the compare price,
// rounded to the nearest whole percent. Zero when not on sale.
func (p *Product) DiscountPercentage() int {
	if !p.IsOnSale() {
		return 0
	}
	diff := p.ComparePrice.Sub(p.Price)
	pct := diff.Div(*p.ComparePrice).Mul(decimal.NewFromInt(100))
	return int(pct.Round(0).IntPart())
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
