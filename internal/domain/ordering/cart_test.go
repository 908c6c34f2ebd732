package ordering

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartSubtotal(t *testing.T) {
	cart := NewCart(uuid.New())
	assert.True(t, cart.IsEmpty())

	itemA, err := NewCartItem(cart.ID, uuid.New(), nil, 2, decimal.NewFromFloat(19.99))
	require.NoError(t, err)
	itemB, err := NewCartItem(cart.ID, uuid.New(), nil, 1, decimal.NewFromFloat(5.50))
	require.NoError(t, err)
	cart.Items = []CartItem{*itemA, *itemB}

	assert.False(t, cart.IsEmpty())
	assert.Equal(t, 3, cart.TotalItems())
	assert.True(t, cart.Subtotal().Equal(decimal.NewFromFloat(45.48)))
}

func TestCartFindItem(t *testing.T) {
	cart := NewCart(uuid.New())
	productID := uuid.New()
	variantID := uuid.New()

	plain, err := NewCartItem(cart.ID, productID, nil, 1, decimal.NewFromInt(10))
	require.NoError(t, err)
	withVariant, err := NewCartItem(cart.ID, productID, &variantID, 1, decimal.NewFromInt(12))
	require.NoError(t, err)
	cart.Items = []CartItem{*plain, *withVariant}

	t.Run("nil variant matches only variant-less line", func(t *testing.T) {
		found := cart.FindItem(productID, nil)
		require.NotNil(t, found)
		assert.Nil(t, found.VariantID)
	})

	t.Run("variant id matches the variant line", func(t *testing.T) {
		found := cart.FindItem(productID, &variantID)
		require.NotNil(t, found)
		require.NotNil(t, found.VariantID)
		assert.Equal(t, variantID, *found.VariantID)
	})

	t.Run("other variant id matches nothing", func(t *testing.T) {
		other := uuid.New()
		assert.Nil(t, cart.FindItem(productID, &other))
	})
}

func TestCartItemQuantity(t *testing.T) {
	item, err := NewCartItem(uuid.New(), uuid.New(), nil, 1, decimal.NewFromInt(10))
	require.NoError(t, err)

	require.NoError(t, item.SetQuantity(4))
	assert.True(t, item.Subtotal().Equal(decimal.NewFromInt(40)))

	assert.Error(t, item.SetQuantity(0))

	_, err = NewCartItem(uuid.New(), uuid.New(), nil, 0, decimal.NewFromInt(10))
	assert.Error(t, err)
}
