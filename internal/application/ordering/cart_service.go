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

// CartService handles cart operations. Each user owns a single cart,
// created lazily on first access.
type CartService struct {
	cartRepo    ordering.CartRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(
	cartRepo ordering.CartRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// GetCart returns the user's cart, creating an empty one if none exists
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildCartResponse(ctx, cart)
}

// AddItem adds a product (optionally a specific variant) to the cart.
// Adding a product already in the cart merges quantities into the
// existing line.
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req AddCartItemRequest) (*CartResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive() {
		return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", "Product is not available for purchase")
	}

	variant, unitPrice, available, err := resolveLine(product, req.VariantID)
	if err != nil {
		return nil, err
	}

	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if existing := cart.FindItem(req.ProductID, req.VariantID); existing != nil {
		newQuantity := existing.Quantity + req.Quantity
		if newQuantity > available {
			return nil, shared.NewInsufficientStockError(lineName(product, variant), available)
		}
		if err := existing.SetQuantity(newQuantity); err != nil {
			return nil, err
		}
		existing.UnitPrice = unitPrice
		if err := s.cartRepo.SaveItem(ctx, existing); err != nil {
			return nil, err
		}
	} else {
		if req.Quantity > available {
			return nil, shared.NewInsufficientStockError(lineName(product, variant), available)
		}
		item, err := ordering.NewCartItem(cart.ID, req.ProductID, req.VariantID, req.Quantity, unitPrice)
		if err != nil {
			return nil, err
		}
		if err := s.cartRepo.SaveItem(ctx, item); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Cart item added",
		zap.String("user_id", userID.String()),
		zap.String("product_id", req.ProductID.String()),
		zap.Int("quantity", req.Quantity))

	cart, err = s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildCartResponse(ctx, cart)
}

// UpdateItem overwrites a line's quantity. A quantity of zero or less
// removes the line.
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req UpdateCartItemRequest) (*CartResponse, error) {
	cart, item, err := s.findOwnedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Quantity <= 0 {
		if err := s.cartRepo.DeleteItem(ctx, item.ID); err != nil {
			return nil, err
		}
		cart, err = s.cartRepo.FindByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		return s.buildCartResponse(ctx, cart)
	}

	product, err := s.productRepo.FindByID(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive() {
		return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", "Product is not available for purchase")
	}

	variant, unitPrice, available, err := resolveLine(product, item.VariantID)
	if err != nil {
		return nil, err
	}
	if req.Quantity > available {
		return nil, shared.NewInsufficientStockError(lineName(product, variant), available)
	}

	if err := item.SetQuantity(req.Quantity); err != nil {
		return nil, err
	}
	item.UnitPrice = unitPrice
	if err := s.cartRepo.SaveItem(ctx, item); err != nil {
		return nil, err
	}

	cart, err = s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildCartResponse(ctx, cart)
}

// RemoveItem deletes a line from the cart
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*CartResponse, error) {
	_, item, err := s.findOwnedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.DeleteItem(ctx, item.ID); err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildCartResponse(ctx, cart)
}

// Clear removes every line from the user's cart
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	return s.cartRepo.ClearItems(ctx, cart.ID)
}

// getOrCreateCart loads the user's cart, creating it on first access
func (s *CartService) getOrCreateCart(ctx context.Context, userID uuid.UUID) (*ordering.Cart, error) {
	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	cart = ordering.NewCart(userID)
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// findOwnedItem loads a cart line and verifies it belongs to the
// user's cart. Lines of other users are reported as not found.
func (s *CartService) findOwnedItem(ctx context.Context, userID, itemID uuid.UUID) (*ordering.Cart, *ordering.CartItem, error) {
	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	item, err := s.cartRepo.FindItem(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	if item.CartID != cart.ID {
		return nil, nil, shared.ErrNotFound
	}
	return cart, item, nil
}

// lineName names a cart line for error messages, appending the variant
// name when the line targets one.
func lineName(product *catalog.Product, variant *catalog.ProductVariant) string {
	if variant != nil {
		return product.Name + " " + variant.Name
	}
	return product.Name
}

// resolveLine resolves the unit price and available stock for a
// product/variant pair. Variant lines draw from the variant's stock
// pool; plain lines draw from the product's.
func resolveLine(product *catalog.Product, variantID *uuid.UUID) (*catalog.ProductVariant, decimal.Decimal, int, error) {
	if variantID == nil {
		return nil, product.Price, product.StockQuantity, nil
	}

	for i := range product.Variants {
		v := &product.Variants[i]
		if v.ID != *variantID {
			continue
		}
		if !v.IsActive {
			return nil, decimal.Zero, 0, shared.NewDomainError("VARIANT_UNAVAILABLE", "Variant is not available for purchase")
		}
		return v, v.FinalPrice(product.Price), v.StockQuantity, nil
	}
	return nil, decimal.Zero, 0, shared.NewDomainError("INVALID_VARIANT", "Variant does not belong to this product")
}

func (s *CartService) buildCartResponse(ctx context.Context, cart *ordering.Cart) (*CartResponse, error) {
	items := make([]CartItemResponse, 0, len(cart.Items))
	subtotal := decimal.Zero

	for i := range cart.Items {
		item := &cart.Items[i]

		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				// Product removed from the catalog; skip the stale line.
				continue
			}
			return nil, err
		}

		variantName := ""
		if item.VariantID != nil {
			for j := range product.Variants {
				if product.Variants[j].ID == *item.VariantID {
					variantName = product.Variants[j].Name
					break
				}
			}
		}

		lineSubtotal := item.Subtotal()
		subtotal = subtotal.Add(lineSubtotal)
		items = append(items, CartItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: product.Name,
			ProductSlug: product.Slug,
			VariantID:   item.VariantID,
			VariantName: variantName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    lineSubtotal,
		})
	}

	totalItems := 0
	for _, it := range items {
		totalItems += it.Quantity
	}

	return &CartResponse{
		ID:         cart.ID,
		Items:      items,
		TotalItems: totalItems,
		Subtotal:   subtotal,
	}, nil
}
