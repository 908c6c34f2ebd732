package ordering

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/motoworld/storefront/internal/domain/catalog"
	"github.com/motoworld/storefront/internal/domain/ordering"
	"github.com/motoworld/storefront/internal/domain/shared"
)

func newOrderService(orderRepo *MockOrderRepository, cartRepo *MockCartRepository, productRepo *MockProductRepository) *OrderService {
	return NewOrderService(orderRepo, cartRepo, productRepo, stubTxManager{}, ordering.DefaultPricingPolicy(), zap.NewNop())
}

func checkoutRequest() CheckoutRequest {
	return CheckoutRequest{
		PaymentMethod: "credit_card",
		Shipping: ShippingAddressRequest{
			Name:       "Marta Ruiz",
			Email:      "marta@example.com",
			Address:    "Calle Mayor 12",
			City:       "Madrid",
			PostalCode: "28001",
			Country:    "ES",
		},
	}
}

func TestOrderService_Checkout(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects an empty cart without writing anything", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		cartRepo := new(MockCartRepository)
		svc := newOrderService(orderRepo, cartRepo, new(MockProductRepository))

		userID := uuid.New()
		cartRepo.On("FindByUser", ctx, userID).Return(ordering.NewCart(userID), nil)

		_, err := svc.Checkout(ctx, userID, checkoutRequest())
		assert.ErrorIs(t, err, shared.ErrEmptyCart)
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		cartRepo.AssertNotCalled(t, "ClearItems", mock.Anything, mock.Anything)
	})

	t.Run("prices the order and clears the cart", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := newOrderService(orderRepo, cartRepo, productRepo)

		userID := uuid.New()
		product := mustActiveProduct(t, "Integral Pro", "integral-pro", "CAS-INTEGR", 99.99, 10)
		cart := cartWithLine(t, userID, product, nil, 1, product.Price)

		cartRepo.On("FindByUser", ctx, userID).Return(cart, nil)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("DecrementStock", ctx, product.ID, 1).Return(nil)
		orderRepo.On("Save", ctx, mock.AnythingOfType("*ordering.Order")).Return(nil)
		orderRepo.On("SaveItems", ctx, mock.AnythingOfType("[]ordering.OrderItem")).Return(nil)
		orderRepo.On("AppendHistory", ctx, mock.AnythingOfType("*ordering.OrderStatusHistory")).Return(nil)
		cartRepo.On("ClearItems", ctx, cart.ID).Return(nil)

		resp, err := svc.Checkout(ctx, userID, checkoutRequest())
		require.NoError(t, err)
		assert.True(t, resp.Subtotal.Equal(decimal.NewFromFloat(99.99)), "subtotal %s", resp.Subtotal)
		assert.True(t, resp.ShippingCost.Equal(decimal.NewFromInt(10)), "shipping %s", resp.ShippingCost)
		assert.True(t, resp.TaxAmount.Equal(decimal.NewFromInt(8)), "tax %s", resp.TaxAmount)
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromFloat(117.99)), "total %s", resp.TotalAmount)
		assert.Equal(t, "pending", resp.Status)
		assert.Regexp(t, `^MW-[0-9A-F]{8}$`, resp.OrderNumber)
		require.Len(t, resp.History, 1)
		assert.Equal(t, "Order created", resp.History[0].Notes)
		cartRepo.AssertExpectations(t)
		orderRepo.AssertExpectations(t)
	})

	t.Run("orders at or above the threshold ship free", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := newOrderService(orderRepo, cartRepo, productRepo)

		userID := uuid.New()
		product := mustActiveProduct(t, "Adventure Boots", "adventure-boots", "BOO-ADVENT", 150, 5)
		cart := cartWithLine(t, userID, product, nil, 1, product.Price)

		cartRepo.On("FindByUser", ctx, userID).Return(cart, nil)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("DecrementStock", ctx, product.ID, 1).Return(nil)
		orderRepo.On("Save", ctx, mock.Anything).Return(nil)
		orderRepo.On("SaveItems", ctx, mock.Anything).Return(nil)
		orderRepo.On("AppendHistory", ctx, mock.Anything).Return(nil)
		cartRepo.On("ClearItems", ctx, cart.ID).Return(nil)

		resp, err := svc.Checkout(ctx, userID, checkoutRequest())
		require.NoError(t, err)
		assert.True(t, resp.ShippingCost.IsZero())
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(162)), "total %s", resp.TotalAmount)
	})

	t.Run("insufficient stock aborts the checkout", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := newOrderService(orderRepo, cartRepo, productRepo)

		userID := uuid.New()
		product := mustActiveProduct(t, "Integral Pro", "integral-pro", "CAS-INTEGR", 199, 10)
		cart := cartWithLine(t, userID, product, nil, 3, product.Price)

		cartRepo.On("FindByUser", ctx, userID).Return(cart, nil)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("DecrementStock", ctx, product.ID, 3).
			Return(shared.NewInsufficientStockError(product.Name, 2))

		_, err := svc.Checkout(ctx, userID, checkoutRequest())
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.EqualError(t, err, "Insufficient stock for Integral Pro: only 2 available")
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		cartRepo.AssertNotCalled(t, "ClearItems", mock.Anything, mock.Anything)
	})

	t.Run("product deactivated after being carted aborts the checkout", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := newOrderService(orderRepo, cartRepo, productRepo)

		userID := uuid.New()
		product := mustActiveProduct(t, "Integral Pro", "integral-pro", "CAS-INTEGR", 199, 10)
		cart := cartWithLine(t, userID, product, nil, 1, product.Price)
		require.NoError(t, product.SetStatus(catalog.ProductStatusInactive))

		cartRepo.On("FindByUser", ctx, userID).Return(cart, nil)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err := svc.Checkout(ctx, userID, checkoutRequest())
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PRODUCT_UNAVAILABLE", domainErr.Code)
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("variant lines snapshot the variant name and price", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := newOrderService(orderRepo, cartRepo, productRepo)

		userID := uuid.New()
		product := mustActiveProduct(t, "Racing Gloves", "racing-gloves", "GLO-RACING", 80, 0)
		variant, err := catalog.NewProductVariant(product.ID, "Size L", "GLO-RACING-SIZEL", decimal.NewFromInt(5), 4)
		require.NoError(t, err)
		product.Variants = []catalog.ProductVariant{*variant}
		cart := cartWithLine(t, userID, product, &variant.ID, 2, decimal.NewFromInt(85))

		cartRepo.On("FindByUser", ctx, userID).Return(cart, nil)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("DecrementVariantStock", ctx, variant.ID, 2).Return(nil)
		orderRepo.On("Save", ctx, mock.Anything).Return(nil)
		orderRepo.On("SaveItems", ctx, mock.Anything).Return(nil)
		orderRepo.On("AppendHistory", ctx, mock.Anything).Return(nil)
		cartRepo.On("ClearItems", ctx, cart.ID).Return(nil)

		resp, err := svc.Checkout(ctx, userID, checkoutRequest())
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "Size L", resp.Items[0].VariantName)
		assert.True(t, resp.Items[0].UnitPrice.Equal(decimal.NewFromInt(85)))
		assert.True(t, resp.Items[0].TotalPrice.Equal(decimal.NewFromInt(170)))
		productRepo.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestOrderService_GetForUser(t *testing.T) {
	ctx := context.Background()

	orderRepo := new(MockOrderRepository)
	svc := newOrderService(orderRepo, new(MockCartRepository), new(MockProductRepository))

	owner := uuid.New()
	order, err := ordering.NewOrder(owner, ordering.PaymentMethodCOD, ordering.ShippingAddress{
		Name: "Marta Ruiz", Email: "marta@example.com", Address: "Calle Mayor 12",
		City: "Madrid", PostalCode: "28001", Country: "ES",
	})
	require.NoError(t, err)
	orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

	t.Run("owner sees the order", func(t *testing.T) {
		resp, err := svc.GetForUser(ctx, owner, order.ID)
		require.NoError(t, err)
		assert.Equal(t, order.OrderNumber, resp.OrderNumber)
	})

	t.Run("another user gets not found", func(t *testing.T) {
		_, err := svc.GetForUser(ctx, uuid.New(), order.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	orderRepo := new(MockOrderRepository)
	svc := newOrderService(orderRepo, new(MockCartRepository), new(MockProductRepository))

	adminID := uuid.New()
	order, err := ordering.NewOrder(uuid.New(), ordering.PaymentMethodCOD, ordering.ShippingAddress{
		Name: "Marta Ruiz", Email: "marta@example.com", Address: "Calle Mayor 12",
		City: "Madrid", PostalCode: "28001", Country: "ES",
	})
	require.NoError(t, err)

	orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	orderRepo.On("Save", ctx, order).Return(nil)
	orderRepo.On("AppendHistory", ctx, mock.AnythingOfType("*ordering.OrderStatusHistory")).Return(nil)

	resp, err := svc.UpdateStatus(ctx, order.ID, adminID, UpdateOrderStatusRequest{
		Status:         "shipped",
		TrackingNumber: "TRK-123456",
	})
	require.NoError(t, err)
	assert.Equal(t, "shipped", resp.Status)
	assert.Equal(t, "TRK-123456", resp.TrackingNumber)
	assert.NotNil(t, resp.ShippedAt)
	require.Len(t, resp.History, 1)
	assert.Equal(t, "Status changed from pending to shipped", resp.History[0].Notes)
	assert.Equal(t, adminID, resp.History[0].CreatedBy)
}

// recordingTxManager captures the outcome the callback reports, which
// is what decides commit versus rollback in the real manager.
type recordingTxManager struct {
	calls int
	err   error
}

func (m *recordingTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	m.err = fn(ctx)
	return m.err
}

func TestOrderService_UpdateStatus_HistoryFailureAbortsUpdate(t *testing.T) {
	ctx := context.Background()

	orderRepo := new(MockOrderRepository)
	tx := &recordingTxManager{}
	svc := NewOrderService(orderRepo, new(MockCartRepository), new(MockProductRepository),
		tx, ordering.DefaultPricingPolicy(), zap.NewNop())

	order, err := ordering.NewOrder(uuid.New(), ordering.PaymentMethodCOD, ordering.ShippingAddress{
		Name: "Marta Ruiz", Email: "marta@example.com", Address: "Calle Mayor 12",
		City: "Madrid", PostalCode: "28001", Country: "ES",
	})
	require.NoError(t, err)

	appendErr := errors.New("history insert failed")
	orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	orderRepo.On("Save", ctx, order).Return(nil)
	orderRepo.On("AppendHistory", ctx, mock.Anything).Return(appendErr)

	_, err = svc.UpdateStatus(ctx, order.ID, uuid.New(), UpdateOrderStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, appendErr)

	// The failure surfaces inside the transaction boundary, so the
	// status write rolls back together with the missing history row.
	assert.Equal(t, 1, tx.calls)
	assert.ErrorIs(t, tx.err, appendErr)
}
