package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motoworld/storefront/internal/domain/ordering"
)

// AddCartItemRequest represents a request to add a line to the cart
type AddCartItemRequest struct {
	ProductID uuid.UUID  `json:"product_id" binding:"required"`
	VariantID *uuid.UUID `json:"variant_id"`
	Quantity  int        `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest represents a request to change a line's
// quantity. Zero or negative removes the line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartItemResponse represents a cart line in API responses
type CartItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductSlug string          `json:"product_slug"`
	VariantID   *uuid.UUID      `json:"variant_id,omitempty"`
	VariantName string          `json:"variant_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// CartResponse represents the cart in API responses
type CartResponse struct {
	ID         uuid.UUID          `json:"id"`
	Items      []CartItemResponse `json:"items"`
	TotalItems int                `json:"total_items"`
	Subtotal   decimal.Decimal    `json:"subtotal"`
}

// ShippingAddressRequest carries the delivery address for checkout
type ShippingAddressRequest struct {
	Name       string `json:"name" binding:"required,notblank,max=200"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone" binding:"max=30"`
	Address    string `json:"address" binding:"required,notblank,max=500"`
	City       string `json:"city" binding:"required,notblank,max=100"`
	State      string `json:"state" binding:"max=100"`
	PostalCode string `json:"postal_code" binding:"required,max=20"`
	Country    string `json:"country" binding:"required,max=100"`
}

// CheckoutRequest represents a request to place an order from the cart
type CheckoutRequest struct {
	PaymentMethod string                 `json:"payment_method" binding:"required,oneof=cod bank_transfer credit_card paypal"`
	Shipping      ShippingAddressRequest `json:"shipping" binding:"required"`
	Notes         string                 `json:"notes" binding:"max=2000"`
}

// UpdateOrderStatusRequest represents an admin status change
type UpdateOrderStatusRequest struct {
	Status         string `json:"status" binding:"required,oneof=pending confirmed processing shipped delivered cancelled refunded"`
	Notes          string `json:"notes" binding:"max=2000"`
	TrackingNumber string `json:"tracking_number" binding:"max=100"`
}

// OrderListFilter represents filter options for order lists
type OrderListFilter struct {
	Search        string `form:"search"`
	Status        string `form:"status" binding:"omitempty,oneof=pending confirmed processing shipped delivered cancelled refunded"`
	PaymentMethod string `form:"payment_method" binding:"omitempty,oneof=cod bank_transfer credit_card paypal"`
	Page          int    `form:"page"`
	PageSize      int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy       string `form:"order_by"`
	OrderDir      string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	VariantID   *uuid.UUID      `json:"variant_id,omitempty"`
	ProductName string          `json:"product_name"`
	ProductSKU  string          `json:"product_sku"`
	VariantName string          `json:"variant_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// OrderStatusHistoryResponse represents a status trail entry
type OrderStatusHistoryResponse struct {
	Status    string    `json:"status"`
	Notes     string    `json:"notes"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// ShippingAddressResponse represents the delivery snapshot
type ShippingAddressResponse struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// OrderResponse represents a full order in API responses
type OrderResponse struct {
	ID             uuid.UUID                    `json:"id"`
	OrderNumber    string                       `json:"order_number"`
	UserID         uuid.UUID                    `json:"user_id"`
	Status         string                       `json:"status"`
	PaymentMethod  string                       `json:"payment_method"`
	Subtotal       decimal.Decimal              `json:"subtotal"`
	ShippingCost   decimal.Decimal              `json:"shipping_cost"`
	TaxAmount      decimal.Decimal              `json:"tax_amount"`
	DiscountAmount decimal.Decimal              `json:"discount_amount"`
	TotalAmount    decimal.Decimal              `json:"total_amount"`
	Shipping       ShippingAddressResponse      `json:"shipping"`
	TrackingNumber string                       `json:"tracking_number,omitempty"`
	Notes          string                       `json:"notes,omitempty"`
	Items          []OrderItemResponse          `json:"items"`
	History        []OrderStatusHistoryResponse `json:"history,omitempty"`
	ShippedAt      *time.Time                   `json:"shipped_at,omitempty"`
	DeliveredAt    *time.Time                   `json:"delivered_at,omitempty"`
	CreatedAt      time.Time                    `json:"created_at"`
	UpdatedAt      time.Time                    `json:"updated_at"`
}

// OrderListResponse represents an order list item
type OrderListResponse struct {
	ID            uuid.UUID       `json:"id"`
	OrderNumber   string          `json:"order_number"`
	UserID        uuid.UUID       `json:"user_id"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	ItemCount     int             `json:"item_count"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *ordering.Order) *OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i := range o.Items {
		items[i] = ToOrderItemResponse(&o.Items[i])
	}
	history := make([]OrderStatusHistoryResponse, len(o.History))
	for i := range o.History {
		history[i] = OrderStatusHistoryResponse{
			Status:    string(o.History[i].Status),
			Notes:     o.History[i].Notes,
			CreatedBy: o.History[i].CreatedBy,
			CreatedAt: o.History[i].CreatedAt,
		}
	}

	return &OrderResponse{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		UserID:         o.UserID,
		Status:         string(o.Status),
		PaymentMethod:  string(o.PaymentMethod),
		Subtotal:       o.Subtotal,
		ShippingCost:   o.ShippingCost,
		TaxAmount:      o.TaxAmount,
		DiscountAmount: o.DiscountAmount,
		TotalAmount:    o.TotalAmount,
		Shipping: ShippingAddressResponse{
			Name:       o.Shipping.Name,
			Email:      o.Shipping.Email,
			Phone:      o.Shipping.Phone,
			Address:    o.Shipping.Address,
			City:       o.Shipping.City,
			State:      o.Shipping.State,
			PostalCode: o.Shipping.PostalCode,
			Country:    o.Shipping.Country,
		},
		TrackingNumber: o.TrackingNumber,
		Notes:          o.Notes,
		Items:          items,
		History:        history,
		ShippedAt:      o.ShippedAt,
		DeliveredAt:    o.DeliveredAt,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

// ToOrderItemResponse converts a domain OrderItem
func ToOrderItemResponse(item *ordering.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:          item.ID,
		ProductID:   item.ProductID,
		VariantID:   item.VariantID,
		ProductName: item.ProductName,
		ProductSKU:  item.ProductSKU,
		VariantName: item.VariantName,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		TotalPrice:  item.TotalPrice,
	}
}

// ToOrderListResponses converts a slice of domain Orders
func ToOrderListResponses(orders []ordering.Order) []OrderListResponse {
	responses := make([]OrderListResponse, len(orders))
	for i := range orders {
		o := &orders[i]
		responses[i] = OrderListResponse{
			ID:            o.ID,
			OrderNumber:   o.OrderNumber,
			UserID:        o.UserID,
			Status:        string(o.Status),
			PaymentMethod: string(o.PaymentMethod),
			TotalAmount:   o.TotalAmount,
			ItemCount:     len(o.Items),
			CreatedAt:     o.CreatedAt,
		}
	}
	return responses
}
