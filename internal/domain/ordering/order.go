package ordering

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motoworld/storefront/internal/domain/shared"
)

// OrderStatus represents the fulfillment status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

// IsValid reports whether the status is one of the known values
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

// IsTerminal reports whether the status ends the fulfillment flow
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled || s == OrderStatusRefunded
}

// PaymentMethod represents how the order will be paid
type PaymentMethod string

const (
	PaymentMethodCOD          PaymentMethod = "cod"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodPayPal       PaymentMethod = "paypal"
)

// IsValid reports whether the payment method is one of the known values
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCOD, PaymentMethodBankTransfer, PaymentMethodCreditCard, PaymentMethodPayPal:
		return true
	}
	return false
}

// ShippingAddress is the delivery snapshot captured at checkout
type ShippingAddress struct {
	Name       string `gorm:"column:shipping_name;type:varchar(200);not null"`
	Email      string `gorm:"column:shipping_email;type:varchar(255);not null"`
	Phone      string `gorm:"column:shipping_phone;type:varchar(30)"`
	Address    string `gorm:"column:shipping_address;type:varchar(500);not null"`
	City       string `gorm:"column:shipping_city;type:varchar(100);not null"`
	State      string `gorm:"column:shipping_state;type:varchar(100)"`
	PostalCode string `gorm:"column:shipping_postal_code;type:varchar(20);not null"`
	Country    string `gorm:"column:shipping_country;type:varchar(100);not null"`
}

// Order is a placed order with its immutable pricing breakdown and
// line snapshots. Catalog edits after checkout never alter an order.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber    string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status         OrderStatus     `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentMethod  PaymentMethod   `gorm:"type:varchar(20);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ShippingCost   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Shipping       ShippingAddress `gorm:"embedded"`
	TrackingNumber string          `gorm:"type:varchar(100)"`
	Notes          string          `gorm:"type:text"`
	ShippedAt      *time.Time
	DeliveredAt    *time.Time

	Items   []OrderItem          `gorm:"foreignKey:OrderID"`
	History []OrderStatusHistory `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a pending order shell. Totals are set by the
// checkout flow after the lines are priced.
func NewOrder(userID uuid.UUID, method PaymentMethod, shipping ShippingAddress) (*Order, error) {
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	if err := validateShippingAddress(shipping); err != nil {
		return nil, err
	}

	base := shared.NewBaseAggregateRoot()
	return &Order{
		BaseAggregateRoot: base,
		OrderNumber:       orderNumberFromID(base.ID),
		UserID:            userID,
		Status:            OrderStatusPending,
		PaymentMethod:     method,
		Subtotal:          decimal.Zero,
		ShippingCost:      decimal.Zero,
		TaxAmount:         decimal.Zero,
		DiscountAmount:    decimal.Zero,
		TotalAmount:       decimal.Zero,
		Shipping:          shipping,
	}, nil
}

// SetTotals stores the pricing breakdown computed at checkout
func (o *Order) SetTotals(t Totals) {
	o.Subtotal = t.Subtotal
	o.ShippingCost = t.ShippingCost
	o.TaxAmount = t.TaxAmount
	o.DiscountAmount = t.DiscountAmount
	o.TotalAmount = t.Total
}

// ChangeStatus moves the order to the given status and returns the
// history entry to append. First entry to shipped or delivered stamps
// the corresponding timestamp; later revisits never overwrite it.
// Any known status may follow any other: correcting mistaken
// transitions is an operator action, recorded in the history trail.
func (o *Order) ChangeStatus(newStatus OrderStatus, notes string, changedBy uuid.UUID) (*OrderStatusHistory, error) {
	if !newStatus.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}

	oldStatus := o.Status
	o.Status = newStatus
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	now := time.Now()
	if newStatus == OrderStatusShipped && o.ShippedAt == nil {
		o.ShippedAt = &now
	}
	if newStatus == OrderStatusDelivered && o.DeliveredAt == nil {
		o.DeliveredAt = &now
	}

	if notes == "" {
		notes = fmt.Sprintf("Status changed from %s to %s", oldStatus, newStatus)
	}

	return NewOrderStatusHistory(o.ID, newStatus, notes, changedBy), nil
}

// SetTrackingNumber sets the carrier tracking reference
func (o *Order) SetTrackingNumber(tracking string) {
	o.TrackingNumber = tracking
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// orderNumberFromID derives the human-facing order number from the
// order's uuid: "MW-" plus its first eight hex characters, uppercased.
func orderNumberFromID(id uuid.UUID) string {
	compact := strings.ReplaceAll(id.String(), "-", "")
	return "MW-" + strings.ToUpper(compact[:8])
}

func validateShippingAddress(s ShippingAddress) error {
	switch {
	case s.Name == "":
		return shared.NewDomainError("INVALID_SHIPPING", "Shipping name is required")
	case s.Email == "":
		return shared.NewDomainError("INVALID_SHIPPING", "Shipping email is required")
	case s.Address == "":
		return shared.NewDomainError("INVALID_SHIPPING", "Shipping address is required")
	case s.City == "":
		return shared.NewDomainError("INVALID_SHIPPING", "Shipping city is required")
	case s.PostalCode == "":
		return shared.NewDomainError("INVALID_SHIPPING", "Shipping postal code is required")
	case s.Country == "":
		return shared.NewDomainError("INVALID_SHIPPING", "Shipping country is required")
	}
	return nil
}

// OrderItem is an order line frozen at checkout time: the product
// name, SKU and unit price are snapshots, immune to later catalog
// edits.
type OrderItem struct {
	shared.BaseEntity
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	VariantID   *uuid.UUID      `gorm:"type:uuid"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	ProductSKU  string          `gorm:"type:varchar(50);not null"`
	VariantName string          `gorm:"type:varchar(100)"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates a frozen order line
func NewOrderItem(orderID, productID uuid.UUID, variantID *uuid.UUID, productName, productSKU, variantName string, quantity int, unitPrice decimal.Decimal) (*OrderItem, error) {
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	return &OrderItem{
		BaseEntity:  shared.NewBaseEntity(),
		OrderID:     orderID,
		ProductID:   productID,
		VariantID:   variantID,
		ProductName: productName,
		ProductSKU:  productSKU,
		VariantName: variantName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalPrice:  unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

// OrderStatusHistory is an append-only audit entry for a status change
type OrderStatusHistory struct {
	shared.BaseEntity
	OrderID   uuid.UUID   `gorm:"type:uuid;not null;index"`
	Status    OrderStatus `gorm:"type:varchar(20);not null"`
	Notes     string      `gorm:"type:text"`
	CreatedBy uuid.UUID   `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (OrderStatusHistory) TableName() string {
	return "order_status_history"
}

// NewOrderStatusHistory creates a history entry
func NewOrderStatusHistory(orderID uuid.UUID, status OrderStatus, notes string, createdBy uuid.UUID) *OrderStatusHistory {
	return &OrderStatusHistory{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    orderID,
		Status:     status,
		Notes:      notes,
		CreatedBy:  createdBy,
	}
}
