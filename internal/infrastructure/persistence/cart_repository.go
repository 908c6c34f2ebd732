package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/motoworld/storefront/internal/domain/ordering"
	"github.com/motoworld/storefront/internal/domain/shared"
)

// GormCartRepository implements CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByUser finds the user's cart with its lines preloaded
func (r *GormCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*ordering.Cart, error) {
	var cart ordering.Cart
	if err := conn(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&cart, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cart, nil
}

// Save creates or updates a cart. Lines are saved through SaveItem.
func (r *GormCartRepository) Save(ctx context.Context, cart *ordering.Cart) error {
	return conn(ctx, r.db).Omit("Items").Save(cart).Error
}

// SaveItem creates or updates a cart line
func (r *GormCartRepository) SaveItem(ctx context.Context, item *ordering.CartItem) error {
	return conn(ctx, r.db).Save(item).Error
}

// FindItem finds a cart line by its ID
func (r *GormCartRepository) FindItem(ctx context.Context, itemID uuid.UUID) (*ordering.CartItem, error) {
	var item ordering.CartItem
	if err := conn(ctx, r.db).First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// DeleteItem deletes a cart line
func (r *GormCartRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&ordering.CartItem{}, "id = ?", itemID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ClearItems deletes every line of the cart; the cart row survives
func (r *GormCartRepository) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	return conn(ctx, r.db).Delete(&ordering.CartItem{}, "cart_id = ?", cartID).Error
}

// Ensure GormCartRepository implements CartRepository
var _ ordering.CartRepository = (*GormCartRepository)(nil)
