package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motoworld/storefront/internal/domain/shared"
)

// Cart is a user's open shopping cart. One cart exists per user; it is
// created lazily on first access and survives checkout (only its lines
// are cleared).
type Cart struct {
	shared.BaseAggregateRoot
	UserID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Items  []CartItem `gorm:"foreignKey:CartID"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// NewCart creates an empty cart for the user
func NewCart(userID uuid.UUID) *Cart {
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
	}
}

// IsEmpty returns true when the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalItems returns the summed quantity across all lines
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Subtotal returns the sum of line subtotals
func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range c.Items {
		subtotal = subtotal.Add(item.Subtotal())
	}
	return subtotal
}

// FindItem returns the line matching product and variant, or nil.
// Lines are unique per (product, variant) pair; a nil variant matches
// only lines without a variant.
func (c *Cart) FindItem(productID uuid.UUID, variantID *uuid.UUID) *CartItem {
	for i := range c.Items {
		item := &c.Items[i]
		if item.ProductID != productID {
			continue
		}
		if (item.VariantID == nil) != (variantID == nil) {
			continue
		}
		if item.VariantID == nil || *item.VariantID == *variantID {
			return item
		}
	}
	return nil
}

// CartItem is a cart line. UnitPrice is captured at add time and
// refreshed on update; the authoritative price is recomputed at
// checkout.
type CartItem struct {
	shared.BaseEntity
	CartID    uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_cart_product_variant,priority:1"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_cart_product_variant,priority:2"`
	VariantID *uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_cart_product_variant,priority:3"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// NewCartItem creates a cart line
func NewCartItem(cartID, productID uuid.UUID, variantID *uuid.UUID, quantity int, unitPrice decimal.Decimal) (*CartItem, error) {
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	return &CartItem{
		BaseEntity: shared.NewBaseEntity(),
		CartID:     cartID,
		ProductID:  productID,
		VariantID:  variantID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
	}, nil
}

// SetQuantity overwrites the line quantity
func (i *CartItem) SetQuantity(quantity int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	i.Quantity = quantity
	i.UpdatedAt = time.Now()

	return nil
}

// Subtotal returns unit price times quantity
func (i *CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
