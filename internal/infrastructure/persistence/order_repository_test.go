package persistence

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motoworld/storefront/internal/domain/ordering"
	"github.com/motoworld/storefront/internal/domain/shared"
)

func testShippingAddress() ordering.ShippingAddress {
	return ordering.ShippingAddress{
		Name:       "Marta Ruiz",
		Email:      "marta@example.com",
		Address:    "Calle Mayor 1",
		City:       "Madrid",
		PostalCode: "28001",
		Country:    "Spain",
	}
}

func seedOrder(t *testing.T, repo *GormOrderRepository, userID uuid.UUID) *ordering.Order {
	t.Helper()
	ctx := context.Background()

	order, err := ordering.NewOrder(userID, ordering.PaymentMethodCOD, testShippingAddress())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, order))

	item, err := ordering.NewOrderItem(order.ID, uuid.New(), nil, "Touring Jacket", "JAC-TOURIN", "", 1, decimal.NewFromInt(250))
	require.NoError(t, err)
	require.NoError(t, repo.SaveItems(ctx, []ordering.OrderItem{*item}))

	return order
}

func TestGormOrderRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	order := seedOrder(t, repo, userID)

	t.Run("FindByID preloads lines and history", func(t *testing.T) {
		entry, err := order.ChangeStatus(ordering.OrderStatusConfirmed, "", userID)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, order))
		require.NoError(t, repo.AppendHistory(ctx, entry))

		found, err := repo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		require.Len(t, found.Items, 1)
		require.Len(t, found.History, 1)
		assert.Equal(t, ordering.OrderStatusConfirmed, found.Status)
		assert.Equal(t, "Status changed from pending to confirmed", found.History[0].Notes)
	})

	t.Run("FindByNumber matches regardless of input case", func(t *testing.T) {
		found, err := repo.FindByNumber(ctx, strings.ToLower(order.OrderNumber))
		require.NoError(t, err)
		assert.Equal(t, order.ID, found.ID)

		_, err = repo.FindByNumber(ctx, "MW-00000000")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("FindByUser only returns the user's orders with total", func(t *testing.T) {
		otherUser := uuid.New()
		seedOrder(t, repo, otherUser)

		orders, total, err := repo.FindByUser(ctx, userID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, orders, 1)
		assert.Equal(t, order.ID, orders[0].ID)
	})

	t.Run("FindAll filters by status", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["status"] = ordering.OrderStatusConfirmed

		orders, total, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, orders, 1)
		assert.Equal(t, order.ID, orders[0].ID)
	})

	t.Run("FindAll paginates", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.PageSize = 1

		orders, total, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, orders, 1)
	})
}
