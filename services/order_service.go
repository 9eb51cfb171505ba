package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"storefront/apperrors"
	"storefront/events"
	"storefront/logger"
	"storefront/models"
	"storefront/pricing"
	"storefront/reference"
	"storefront/repository"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// MinTrackingTokenLength is the shortest token Track will look up.
const MinTrackingTokenLength = 10

const notifyTimeout = 30 * time.Second

// Notifier sends order emails.
type Notifier interface {
	OrderPlaced(ctx context.Context, order *models.Order) error
	StatusUpdated(ctx context.Context, order *models.Order) error
}

// OrderList is the admin order listing.
type OrderList struct {
	Orders        []models.Order `json:"orders"`
	TotalOrders   int            `json:"totalOrders"`
	PendingOrders int            `json:"pendingOrders"`
}

// OrderService handles order business logic
type OrderService struct {
	repo      repository.OrderRepository
	notifier  Notifier
	publisher events.Publisher
	placed    prometheus.Counter
	pending   sync.WaitGroup
}

// NewOrderService creates a new OrderService. notifier and publisher may be nil.
func NewOrderService(repo repository.OrderRepository, notifier Notifier, publisher events.Publisher) *OrderService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &OrderService{repo: repo, notifier: notifier, publisher: publisher}
}

// CountPlaced makes Create increment c for every stored order.
func (s *OrderService) CountPlaced(c prometheus.Counter) {
	s.placed = c
}

// Create validates and stores a new order. Subtotal, delivery charge and
// total are always derived from the items; totals sent by the caller are
// overwritten. A missing tracking token is generated.
func (s *OrderService) Create(ctx context.Context, order *models.Order) error {
	if order == nil || strings.TrimSpace(order.OrderID) == "" || order.Customer == nil || len(order.Items) == 0 {
		return apperrors.Validation("Missing required order information")
	}
	if strings.TrimSpace(order.Customer.FullName) == "" || strings.TrimSpace(order.Customer.Email) == "" {
		return apperrors.Validation("Customer name and email are required")
	}
	if order.Status == "" {
		order.Status = models.StatusPending
	} else if !models.IsValidStatus(order.Status) {
		return apperrors.Validationf("Invalid status %q", order.Status)
	}
	for _, item := range order.Items {
		if item.Quantity < 1 {
			return apperrors.Validationf("Invalid quantity for %s", item.Name)
		}
		if item.Price < 0 {
			return apperrors.Validationf("Invalid price for %s", item.Name)
		}
	}
	if order.Tax < 0 {
		return apperrors.Validation("Tax cannot be negative")
	}
	order.TrackingToken = strings.TrimSpace(order.TrackingToken)
	if order.TrackingToken == "" {
		order.TrackingToken = reference.TrackingToken()
	} else if len(order.TrackingToken) < MinTrackingTokenLength {
		return apperrors.Validationf("Tracking token must be at least %d characters", MinTrackingTokenLength)
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = models.PaymentCashOnDelivery
	}

	totals := pricing.Calculate(order.Items, pricing.DefaultTiers)
	order.Subtotal = totals.Subtotal
	order.DeliveryCharge = totals.DeliveryCharge
	order.Total = pricing.Sum(totals.Total, order.Tax)

	now := time.Now().UTC()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now

	if err := s.repo.Create(ctx, order); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return apperrors.Validationf("Order %s already exists", order.OrderID)
		}
		return apperrors.Backend("Failed to process order", err)
	}

	if s.placed != nil {
		s.placed.Inc()
	}
	logger.Info(ctx, "Order created",
		zap.String("order_id", order.OrderID), zap.Float64("total", order.Total), zap.Int("items", len(order.Items)))
	s.afterChange(ctx, events.OrderPlaced, order)
	return nil
}

// List returns every order newest first with counts.
func (s *OrderService) List(ctx context.Context) (*OrderList, error) {
	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Backend("Failed to fetch orders", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}

	list := &OrderList{Orders: orders, TotalOrders: len(orders)}
	for _, o := range orders {
		if o.Status == models.StatusPending {
			list.PendingOrders++
		}
	}
	return list, nil
}

// GetByOrderID returns the order with the given public id.
func (s *OrderService) GetByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.repo.FindByOrderID(ctx, orderID)
	return order, lookupError(err, "Failed to fetch order")
}

// GetByTrackingToken returns the order carrying token.
func (s *OrderService) GetByTrackingToken(ctx context.Context, token string) (*models.Order, error) {
	order, err := s.repo.FindByTrackingToken(ctx, token)
	return order, lookupError(err, "Failed to fetch order")
}

// Track looks up an order for a customer holding both its id and token.
func (s *OrderService) Track(ctx context.Context, orderID, token string) (*models.Order, error) {
	if orderID == "" || token == "" {
		return nil, apperrors.Validation("Order ID and tracking token are required")
	}
	if len(token) < MinTrackingTokenLength {
		return nil, apperrors.Unauthorized("Invalid tracking token")
	}

	order, err := s.repo.FindByTrackingToken(ctx, token)
	if err != nil {
		return nil, lookupError(err, "Failed to fetch order")
	}
	if order.OrderID != orderID {
		return nil, apperrors.NotFound("Order not found")
	}
	return order, nil
}

// UpdateStatus moves an order to status. Any transition between known
// statuses is allowed.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	if orderID == "" || status == "" {
		return nil, apperrors.Validation("Order ID and status are required")
	}
	if !models.IsValidStatus(status) {
		return nil, apperrors.Validationf("Invalid status %q", status)
	}

	order, err := s.repo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, lookupError(err, "Failed to update order status")
	}

	logger.Info(ctx, "Order status updated", zap.String("order_id", orderID), zap.String("status", status))
	s.afterChange(ctx, events.OrderStatusUpdated, order)
	return order, nil
}

// Delete removes an order and returns what was removed.
func (s *OrderService) Delete(ctx context.Context, orderID string) (*models.Order, error) {
	if orderID == "" {
		return nil, apperrors.Validation("Order ID is required")
	}

	order, err := s.repo.Delete(ctx, orderID)
	if err != nil {
		return nil, lookupError(err, "Failed to delete order")
	}

	logger.Info(ctx, "Order deleted", zap.String("order_id", orderID))
	s.afterChange(ctx, events.OrderDeleted, order)
	return order, nil
}

// Wait blocks until in-flight notifications finish.
func (s *OrderService) Wait() {
	s.pending.Wait()
}

// afterChange fires emails and events in the background. Failures are logged only.
func (s *OrderService) afterChange(ctx context.Context, kind string, order *models.Order) {
	snapshot := *order
	requestID := logger.RequestID(ctx)

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		bg, cancel := context.WithTimeout(logger.WithRequestID(context.Background(), requestID), notifyTimeout)
		defer cancel()

		if err := s.publisher.Publish(bg, events.NewOrderEvent(kind, &snapshot)); err != nil {
			logger.Warn(bg, "Failed to publish order event", zap.String("order_id", snapshot.OrderID), zap.Error(err))
		}
		if s.notifier == nil {
			return
		}

		var err error
		switch kind {
		case events.OrderPlaced:
			err = s.notifier.OrderPlaced(bg, &snapshot)
		case events.OrderStatusUpdated:
			err = s.notifier.StatusUpdated(bg, &snapshot)
		}
		if err != nil {
			logger.Warn(bg, "Failed to send order email", zap.String("order_id", snapshot.OrderID), zap.Error(err))
		}
	}()
}

func lookupError(err error, failure string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound("Order not found")
	default:
		return apperrors.Backend(failure, err)
	}
}
