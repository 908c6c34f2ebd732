package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/motoworld/storefront/internal/domain/ordering"
	"github.com/motoworld/storefront/internal/domain/shared"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its lines and status trail preloaded
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.preloaded(conn(ctx, r.db)).
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByNumber finds an order by its human-facing order number
func (r *GormOrderRepository) FindByNumber(ctx context.Context, orderNumber string) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.preloaded(conn(ctx, r.db)).
		First(&order, "order_number = ?", strings.ToUpper(orderNumber)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByUser finds a page of the user's orders, newest first by default,
// along with the total count
func (r *GormOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]ordering.Order, int64, error) {
	base := conn(ctx, r.db).Model(&ordering.Order{}).Where("user_id = ?", userID)
	return r.page(base, filter)
}

// FindAll finds a page of all orders along with the total count
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ordering.Order, int64, error) {
	base := conn(ctx, r.db).Model(&ordering.Order{})
	return r.page(base, filter)
}

// Save creates or updates an order. Lines and history go through
// SaveItems and AppendHistory.
func (r *GormOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	return conn(ctx, r.db).Omit("Items", "History").Save(order).Error
}

// SaveItems inserts order lines in one batch
func (r *GormOrderRepository) SaveItems(ctx context.Context, items []ordering.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return conn(ctx, r.db).Create(&items).Error
}

// AppendHistory appends a status history entry
func (r *GormOrderRepository) AppendHistory(ctx context.Context, entry *ordering.OrderStatusHistory) error {
	return conn(ctx, r.db).Create(entry).Error
}

// page counts the filtered set, then loads one page with lines preloaded
func (r *GormOrderRepository) page(base *gorm.DB, filter shared.Filter) ([]ordering.Order, int64, error) {
	filtered := r.applyFilterWithoutPagination(base, filter)

	var total int64
	if err := filtered.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := filtered
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	var orders []ordering.Order
	if err := query.
		Preload("Items").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("order_number LIKE ?", "%"+strings.ToUpper(filter.Search)+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "payment_method":
			query = query.Where("payment_method = ?", value)
		case "user_id":
			query = query.Where("user_id = ?", value)
		}
	}

	return query
}

// preloaded attaches the standard preloads for a single-order read
func (r *GormOrderRepository) preloaded(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
}

// Ensure GormOrderRepository implements OrderRepository
var _ ordering.OrderRepository = (*GormOrderRepository)(nil)
