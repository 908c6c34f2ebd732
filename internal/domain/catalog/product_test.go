package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	categoryID := uuid.New()

	t.Run("creates product in draft status", func(t *testing.T) {
		p, err := NewProduct("Integral Pro Helmet", "Full face helmet", categoryID, decimal.NewFromFloat(199.99))
		require.NoError(t, err)

		assert.Equal(t, ProductStatusDraft, p.Status)
		assert.Equal(t, DefaultMinStockLevel, p.MinStockLevel)
		assert.Equal(t, categoryID, p.CategoryID)
		assert.False(t, p.IsActive())
		assert.NotEqual(t, uuid.Nil, p.ID)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct("", "desc", categoryID, decimal.NewFromInt(10))
		require.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct("Helmet", "desc", categoryID, decimal.NewFromInt(-1))
		require.Error(t, err)
	})
}

func TestProductOnSale(t *testing.T) {
	newProduct := func(t *testing.T, price float64) *Product {
		t.Helper()
		p, err := NewProduct("Helmet", "", uuid.New(), decimal.NewFromFloat(price))
		require.NoError(t, err)
		return p
	}

	t.Run("no compare price means not on sale", func(t *testing.T) {
		p := newProduct(t, 100)
		assert.False(t, p.IsOnSale())
		assert.Equal(t, 0, p.DiscountPercentage())
	})

	t.Run("compare price above selling price means on sale", func(t *testing.T) {
		p := newProduct(t, 80)
		compare := decimal.NewFromInt(100)
		require.NoError(t, p.SetComparePrice(&compare))

		assert.True(t, p.IsOnSale())
		assert.Equal(t, 20, p.DiscountPercentage())
	})

	t.Run("compare price equal to selling price is not a sale", func(t *testing.T) {
		p := newProduct(t, 100)
		compare := decimal.NewFromInt(100)
		require.NoError(t, p.SetComparePrice(&compare))

		assert.False(t, p.IsOnSale())
	})

	t.Run("compare price below selling price is not a sale", func(t *testing.T) {
		p := newProduct(t, 100)
		compare := decimal.NewFromInt(90)
		require.NoError(t, p.SetComparePrice(&compare))

		assert.False(t, p.IsOnSale())
		assert.Equal(t, 0, p.DiscountPercentage())
	})
}

func TestProductStock(t *testing.T) {
	p, err := NewProduct("Helmet", "", uuid.New(), decimal.NewFromInt(50))
	require.NoError(t, err)

	t.Run("low stock at threshold", func(t *testing.T) {
		require.NoError(t, p.SetStock(5))
		assert.True(t, p.IsInStock())
		assert.True(t, p.IsLowStock())

		require.NoError(t, p.SetStock(6))
		assert.False(t, p.IsLowStock())
	})

	t.Run("zero stock", func(t *testing.T) {
		require.NoError(t, p.SetStock(0))
		assert.False(t, p.IsInStock())
		assert.True(t, p.IsLowStock())
	})

	t.Run("negative stock rejected", func(t *testing.T) {
		assert.Error(t, p.SetStock(-1))
	})
}

func TestProductStatus(t *testing.T) {
	p, err := NewProduct("Helmet", "", uuid.New(), decimal.NewFromInt(50))
	require.NoError(t, err)

	require.NoError(t, p.SetStatus(ProductStatusActive))
	assert.True(t, p.IsActive())

	assert.Error(t, p.SetStatus(ProductStatus("retired")))
	assert.Equal(t, ProductStatusActive, p.Status)
}

func TestProductVariant(t *testing.T) {
	productID := uuid.New()

	t.Run("final price applies adjustment", func(t *testing.T) {
		v, err := NewProductVariant(productID, "XL", "HEL-XL", decimal.NewFromFloat(15.50), 10)
		require.NoError(t, err)

		price := v.FinalPrice(decimal.NewFromFloat(199.99))
		assert.True(t, price.Equal(decimal.NewFromFloat(215.49)))
	})

	t.Run("negative adjustment lowers price", func(t *testing.T) {
		v, err := NewProductVariant(productID, "Outlet", "HEL-OUT", decimal.NewFromInt(-20), 3)
		require.NoError(t, err)

		price := v.FinalPrice(decimal.NewFromInt(100))
		assert.True(t, price.Equal(decimal.NewFromInt(80)))
	})

	t.Run("rejects empty name and negative stock", func(t *testing.T) {
		_, err := NewProductVariant(productID, "", "SKU1", decimal.Zero, 0)
		assert.Error(t, err)

		_, err = NewProductVariant(productID, "M", "SKU2", decimal.Zero, -1)
		assert.Error(t, err)
	})

	t.Run("uppercases SKU", func(t *testing.T) {
		v, err := NewProductVariant(productID, "M", "hel-m", decimal.Zero, 1)
		require.NoError(t, err)
		assert.Equal(t, "HEL-M", v.SKU)
	})
}
