package persistence

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/motoworld/storefront/internal/domain/catalog"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps the in-memory database alive across the pool
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, AutoMigrate(db))
	return db
}

// seedCategory inserts a category and returns it
func seedCategory(t *testing.T, db *gorm.DB, name, slug string) *catalog.Category {
	t.Helper()

	category, err := catalog.NewCategory(name, "", nil)
	require.NoError(t, err)
	require.NoError(t, category.SetSlug(slug))
	require.NoError(t, db.Save(category).Error)
	return category
}

// seedProduct inserts an active product with stock and returns it
func seedProduct(t *testing.T, db *gorm.DB, categoryID uuid.UUID, name, slug, sku string, price decimal.Decimal, stock int) *catalog.Product {
	t.Helper()

	product, err := catalog.NewProduct(name, "", categoryID, price)
	require.NoError(t, err)
	require.NoError(t, product.SetSlug(slug))
	require.NoError(t, product.SetSKU(sku))
	require.NoError(t, product.SetStock(stock))
	require.NoError(t, product.SetStatus(catalog.ProductStatusActive))
	require.NoError(t, db.Omit("Variants", "Images").Save(product).Error)
	return product
}
