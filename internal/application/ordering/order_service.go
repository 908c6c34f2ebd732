package ordering

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/motoworld/storefront/internal/domain/catalog"
	"github.com/motoworld/storefront/internal/domain/ordering"
	"github.com/motoworld/storefront/internal/domain/shared"
)

// OrderService handles checkout and order management
type OrderService struct {
	orderRepo   ordering.OrderRepository
	cartRepo    ordering.CartRepository
	productRepo catalog.ProductRepository
	txManager   shared.TransactionManager
	pricing     ordering.PricingPolicy
	logger      *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo ordering.OrderRepository,
	cartRepo ordering.CartRepository,
	productRepo catalog.ProductRepository,
	txManager shared.TransactionManager,
	pricing ordering.PricingPolicy,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		txManager:   txManager,
		pricing:     pricing,
		logger:      logger,
	}
}

// Checkout converts the user's cart into an order. The whole flow runs
// in one transaction: stock decrements, the order, its lines, the
// initial history entry and the cart clearing either all commit or all
// roll back. A line whose stock ran out since it was added aborts the
// checkout.
func (s *OrderService) Checkout(ctx context.Context, userID uuid.UUID, req CheckoutRequest) (*OrderResponse, error) {
	var order *ordering.Order

	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		cart, err := s.cartRepo.FindByUser(txCtx, userID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.ErrEmptyCart
			}
			return err
		}
		if cart.IsEmpty() {
			return shared.ErrEmptyCart
		}

		order, err = ordering.NewOrder(userID, ordering.PaymentMethod(req.PaymentMethod), ordering.ShippingAddress{
			Name:       req.Shipping.Name,
			Email:      req.Shipping.Email,
			Phone:      req.Shipping.Phone,
			Address:    req.Shipping.Address,
			City:       req.Shipping.City,
			State:      req.Shipping.State,
			PostalCode: req.Shipping.PostalCode,
			Country:    req.Shipping.Country,
		})
		if err != nil {
			return err
		}
		order.Notes = req.Notes

		subtotal := decimal.Zero
		items := make([]ordering.OrderItem, 0, len(cart.Items))

		for i := range cart.Items {
			line := &cart.Items[i]

			product, err := s.productRepo.FindByID(txCtx, line.ProductID)
			if err != nil {
				return err
			}
			if !product.IsActive() {
				return shared.NewDomainError("PRODUCT_UNAVAILABLE", "Product "+product.Name+" is no longer available")
			}

			variant, unitPrice, _, err := resolveLine(product, line.VariantID)
			if err != nil {
				return err
			}

			if variant != nil {
				err = s.productRepo.DecrementVariantStock(txCtx, variant.ID, line.Quantity)
			} else {
				err = s.productRepo.DecrementStock(txCtx, product.ID, line.Quantity)
			}
			if err != nil {
				return err
			}

			variantName := ""
			if variant != nil {
				variantName = variant.Name
			}
			item, err := ordering.NewOrderItem(order.ID, product.ID, line.VariantID,
				product.Name, product.SKU, variantName, line.Quantity, unitPrice)
			if err != nil {
				return err
			}

			items = append(items, *item)
			subtotal = subtotal.Add(item.TotalPrice)
		}

		order.SetTotals(s.pricing.Compute(subtotal))

		if err := s.orderRepo.Save(txCtx, order); err != nil {
			return err
		}
		if err := s.orderRepo.SaveItems(txCtx, items); err != nil {
			return err
		}

		entry := ordering.NewOrderStatusHistory(order.ID, ordering.OrderStatusPending, "Order created", userID)
		if err := s.orderRepo.AppendHistory(txCtx, entry); err != nil {
			return err
		}

		if err := s.cartRepo.ClearItems(txCtx, cart.ID); err != nil {
			return err
		}

		order.Items = items
		order.History = []ordering.OrderStatusHistory{*entry}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("user_id", userID.String()),
		zap.String("total", order.TotalAmount.String()))

	return ToOrderResponse(order), nil
}

// Get returns any order by id (admin view)
func (s *OrderService) Get(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// GetByNumber returns any order by its human-facing number (admin view)
func (s *OrderService) GetByNumber(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// GetForUser returns the user's own order. Orders of other users are
// reported as not found, never as forbidden.
func (s *OrderService) GetForUser(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return ToOrderResponse(order), nil
}

// ListForUser returns the user's order history
func (s *OrderService) ListForUser(ctx context.Context, userID uuid.UUID, filter OrderListFilter) (*shared.Paginated[OrderListResponse], error) {
	f := toOrderFilter(filter)
	orders, total, err := s.orderRepo.FindByUser(ctx, userID, f)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToOrderListResponses(orders), total, f.Page, f.PageSize)
	return &result, nil
}

// List returns orders across all users (admin view)
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) (*shared.Paginated[OrderListResponse], error) {
	f := toOrderFilter(filter)
	orders, total, err := s.orderRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToOrderListResponses(orders), total, f.Page, f.PageSize)
	return &result, nil
}

// UpdateStatus moves an order to a new status and appends the change
// to the status trail. Both writes share a transaction so a status can
// never land without its history row.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, changedBy uuid.UUID, req UpdateOrderStatusRequest) (*OrderResponse, error) {
	var order *ordering.Order

	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		order, err = s.orderRepo.FindByID(txCtx, orderID)
		if err != nil {
			return err
		}

		entry, err := order.ChangeStatus(ordering.OrderStatus(req.Status), req.Notes, changedBy)
		if err != nil {
			return err
		}
		if req.TrackingNumber != "" {
			order.SetTrackingNumber(req.TrackingNumber)
		}

		if err := s.orderRepo.Save(txCtx, order); err != nil {
			return err
		}
		if err := s.orderRepo.AppendHistory(txCtx, entry); err != nil {
			return err
		}
		order.History = append(order.History, *entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order status changed",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("status", req.Status))

	return ToOrderResponse(order), nil
}

// toOrderFilter maps the API filter onto the repository filter
func toOrderFilter(filter OrderListFilter) shared.Filter {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		f.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		f.OrderDir = filter.OrderDir
	}
	f.Search = filter.Search
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}
	if filter.PaymentMethod != "" {
		f.Filters["payment_method"] = filter.PaymentMethod
	}
	return f
}
