package ordering

import (
	"context"

	"github.com/google/uuid"

	"github.com/motoworld/storefront/internal/domain/shared"
)

// CartRepository persists carts and their lines
type CartRepository interface {
	// FindByUser returns the user's cart with its lines preloaded, or
	// shared.ErrNotFound if none exists yet.
	FindByUser(ctx context.Context, userID uuid.UUID) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	SaveItem(ctx context.Context, item *CartItem) error
	FindItem(ctx context.Context, itemID uuid.UUID) (*CartItem, error)
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	// ClearItems deletes every line of the cart; the cart row survives.
	ClearItems(ctx context.Context, cartID uuid.UUID) error
}

// OrderRepository persists orders, their lines and their status trail
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByNumber(ctx context.Context, orderNumber string) (*Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, int64, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, int64, error)
	Save(ctx context.Context, order *Order) error
	SaveItems(ctx context.Context, items []OrderItem) error
	AppendHistory(ctx context.Context, entry *OrderStatusHistory) error
}
