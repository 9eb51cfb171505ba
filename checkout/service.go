package checkout

import (
	"context"
	"time"

	"storefront/apperrors"
	"storefront/cart"
	"storefront/logger"
	"storefront/models"
	"storefront/pricing"

	"go.uber.org/zap"
)

// OrderPlacer persists a new order, filling in its stored id.
type OrderPlacer interface {
	Create(ctx context.Context, order *models.Order) error
}

// Service places orders from server-side carts.
type Service struct {
	carts  cart.Store
	orders OrderPlacer
	now    func() time.Time
	newIDs func(time.Time) IDs
}

// NewService creates a checkout Service.
func NewService(carts cart.Store, orders OrderPlacer) *Service {
	return &Service{
		carts:  carts,
		orders: orders,
		now:    func() time.Time { return time.Now().UTC() },
		newIDs: NewIDs,
	}
}

// PlaceOrder converts the cart into a pending order. The cart is cleared
// only once the order is stored.
func (s *Service) PlaceOrder(ctx context.Context, cartID string, shipping ShippingInfo) (*models.Order, error) {
	if cartID == "" {
		return nil, apperrors.Validation("Cart ID is required")
	}

	c, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return nil, apperrors.Backend("Failed to load cart", err)
	}
	if len(c.Items) == 0 {
		return nil, apperrors.Validation("Your cart is empty")
	}

	shipping = shipping.Normalize()
	if err := shipping.Validate(); err != nil {
		return nil, err
	}

	totals := cart.Totals(c)
	if !pricing.MeetsMinimum(totals.Subtotal) {
		return nil, apperrors.Validationf(
			"Minimum order amount is Rs %s. Your current cart total is Rs %.2f",
			pricing.MinimumOrder.String(), totals.Subtotal)
	}

	now := s.now()
	order := Assemble(c, shipping, totals, now, s.newIDs(now))
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if err := s.carts.Delete(ctx, cartID); err != nil {
		logger.Error(ctx, "Failed to clear cart after checkout", err,
			zap.String("cart_id", cartID), zap.String("order_id", order.OrderID))
	}
	return order, nil
}
