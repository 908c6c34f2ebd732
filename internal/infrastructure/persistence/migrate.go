package persistence

import (
	"gorm.io/gorm"

	"github.com/motoworld/storefront/internal/domain/catalog"
	"github.com/motoworld/storefront/internal/domain/identity"
	"github.com/motoworld/storefront/internal/domain/ordering"
	"github.com/motoworld/storefront/internal/domain/review"
)

// AutoMigrate creates or updates the schema for every aggregate in the
// store. Production deployments run the SQL migrations instead; this is
// for development setups and tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&identity.User{},
		&catalog.Category{},
		&catalog.Product{},
		&catalog.ProductVariant{},
		&catalog.ProductImage{},
		&ordering.Cart{},
		&ordering.CartItem{},
		&ordering.Order{},
		&ordering.OrderItem{},
		&ordering.OrderStatusHistory{},
		&review.Review{},
		&review.ReviewSummary{},
	)
}
