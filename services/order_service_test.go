package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/apperrors"
	"storefront/events"
	"storefront/models"
	"storefront/repository"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) OrderPlaced(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockNotifier) StatusUpdated(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event events.OrderEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockPublisher) Close() error { return nil }

func eventOfType(kind string) interface{} {
	return mock.MatchedBy(func(e events.OrderEvent) bool { return e.Type == kind })
}

func sampleOrder(orderID string) *models.Order {
	return &models.Order{
		OrderID:       orderID,
		TrackingToken: "TOKEN-" + orderID,
		Customer:      &models.Customer{FullName: "Ayesha Khan", Email: "ayesha@example.com", Phone: "+923001234567"},
		Items:         []models.OrderItem{{ProductID: 4, Name: "Pure Desi Ghee", Price: 1200, Quantity: 2}},
	}
}

func TestOrderService_CreateValidation(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewOrderService(store.Orders, nil, nil)
	ctx := context.Background()

	noID := sampleOrder("")
	noCustomer := sampleOrder("ORD-2")
	noCustomer.Customer = nil
	noItems := sampleOrder("ORD-3")
	noItems.Items = nil
	noEmail := sampleOrder("ORD-4")
	noEmail.Customer.Email = ""
	badStatus := sampleOrder("ORD-5")
	badStatus.Status = "lost"

	for _, order := range []*models.Order{noID, noCustomer, noItems, noEmail, badStatus} {
		err := svc.Create(ctx, order)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation), "order %q: %v", order.OrderID, err)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Zero(t, list.TotalOrders)
}

func TestOrderService_CreateComputesTotalsAndDefaults(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewOrderService(store.Orders, nil, nil)

	order := sampleOrder("ORD-1")
	require.NoError(t, svc.Create(context.Background(), order))

	assert.Equal(t, 1, order.ID)
	assert.Equal(t, 2400.0, order.Subtotal)
	assert.Equal(t, 350.0, order.DeliveryCharge)
	assert.Equal(t, 2750.0, order.Total)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, models.PaymentCashOnDelivery, order.PaymentMethod)
	assert.False(t, order.CreatedAt.IsZero())
}

func TestOrderService_CreateRecomputesClientTotals(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewOrderService(store.Orders, nil, nil)
	ctx := context.Background()

	order := sampleOrder("ORD-1")
	order.Subtotal, order.DeliveryCharge, order.Total = 2400, 0, 1
	require.NoError(t, svc.Create(ctx, order))

	stored, err := svc.GetByOrderID(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, 2400.0, stored.Subtotal)
	assert.Equal(t, 350.0, stored.DeliveryCharge)
	assert.Equal(t, 2750.0, stored.Total)
	assert.Equal(t, stored.Subtotal+stored.DeliveryCharge+stored.Tax, stored.Total)
}

func TestOrderService_CreateAddsTaxToTotal(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewOrderService(store.Orders, nil, nil)

	order := sampleOrder("ORD-1")
	order.Tax = 120
	require.NoError(t, svc.Create(context.Background(), order))
	assert.Equal(t, 2870.0, order.Total)
	assert.Equal(t, order.Subtotal+order.DeliveryCharge+order.Tax, order.Total)
}

func TestOrderService_CreateRejectsBadItems(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewOrderService(store.Orders, nil, nil)
	ctx := context.Background()

	zeroQty := sampleOrder("ORD-1")
	zeroQty.Items[0].Quantity = 0
	negativePrice := sampleOrder("ORD-2")
	negativePrice.Items[0].Price = -1200
	negativeTax := sampleOrder("ORD-3")
	negativeTax.Tax = -5
	shortToken := sampleOrder("ORD-4")
	shortToken.TrackingToken = "ABC"

	for _, order := range []*models.Order{zeroQty, negativePrice, negativeTax, shortToken} {
		err := svc.Create(ctx, order)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation), "order %q: %v", order.OrderID, err)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Zero(t, list.TotalOrders)
}

func TestOrderService_CreateGeneratesTrackingToken(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewOrderService(store.Orders, nil, nil)
	ctx := context.Background()

	a := sampleOrder("ORD-A")
	a.TrackingToken = ""
	b := sampleOrder("ORD-B")
	b.TrackingToken = ""
	require.NoError(t, svc.Create(ctx, a))
	require.NoError(t, svc.Create(ctx, b))

	assert.GreaterOrEqual(t, len(a.TrackingToken), MinTrackingTokenLength)
	assert.GreaterOrEqual(t, len(b.TrackingToken), MinTrackingTokenLength)
	assert.NotEqual(t, a.TrackingToken, b.TrackingToken)

	tracked, err := svc.Track(ctx, "ORD-B", b.TrackingToken)
	require.NoError(t, err)
	assert.Equal(t, "ORD-B", tracked.OrderID)
}

func TestOrderService_CreateThenGetRoundTrip(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewOrderService(store.Orders, nil, nil)
	ctx := context.Background()

	order := sampleOrder("ORD-1")
	order.ShippingAddress = models.Address{Address: "House 12, Street 4", City: "Lahore", State: "Punjab"}
	order.Items = append(order.Items, models.OrderItem{ProductID: 2, Name: "Organic Honey", Price: 850, Quantity: 1, Size: "500g"})
	require.NoError(t, svc.Create(ctx, order))

	stored, err := svc.GetByOrderID(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, order.Items, stored.Items)
	assert.Equal(t, order.Customer, stored.Customer)
	assert.Equal(t, order.ShippingAddress, stored.ShippingAddress)
	assert.Equal(t, 3250.0, stored.Subtotal)
	assert.Equal(t, 500.0, stored.DeliveryCharge)
	assert.Equal(t, 3750.0, stored.Total)
	assert.Equal(t, order.TrackingToken, stored.TrackingToken)
}

func TestOrderService_CreateDuplicate(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewOrderService(store.Orders, nil, nil)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, sampleOrder("ORD-1")))
	dup := sampleOrder("ORD-1")
	dup.TrackingToken = "OTHERTOKEN12"
	err := svc.Create(ctx, dup)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestOrderService_CreateNotifiesAndPublishes(t *testing.T) {
	store := repository.NewMemoryStore()
	notifier := new(MockNotifier)
	publisher := new(MockPublisher)
	notifier.On("OrderPlaced", mock.Anything, mock.AnythingOfType("*models.Order")).Return(errors.New("mail down"))
	publisher.On("Publish", mock.Anything, eventOfType(events.OrderPlaced)).Return(errors.New("kafka down"))

	svc := NewOrderService(store.Orders, notifier, publisher)
	require.NoError(t, svc.Create(context.Background(), sampleOrder("ORD-1")))
	svc.Wait()

	notifier.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestOrderService_ListCounts(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewOrderService(store.Orders, nil, nil)
	ctx := context.Background()

	first := sampleOrder("ORD-1")
	first.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, svc.Create(ctx, first))
	second := sampleOrder("ORD-2")
	second.Status = models.StatusShipped
	require.NoError(t, svc.Create(ctx, second))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, list.TotalOrders)
	assert.Equal(t, 1, list.PendingOrders)
	assert.Equal(t, "ORD-2", list.Orders[0].OrderID)
}

func TestOrderService_ListEmptyIsNotNil(t *testing.T) {
	svc := NewOrderService(repository.NewMemoryStore().Orders, nil, nil)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list.Orders)
}

func TestOrderService_Lookups(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewOrderService(store.Orders, nil, nil)
	ctx := context.Background()
	require.NoError(t, svc.Create(ctx, sampleOrder("ORD-1")))

	got, err := svc.GetByOrderID(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, "TOKEN-ORD-1", got.TrackingToken)

	got, err = svc.GetByTrackingToken(ctx, "TOKEN-ORD-1")
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", got.OrderID)

	_, err = svc.GetByOrderID(ctx, "ORD-404")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestOrderService_Track(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewOrderService(store.Orders, nil, nil)
	ctx := context.Background()
	order := sampleOrder("ORD-1")
	order.TrackingToken = "ABCDEF123456"
	require.NoError(t, svc.Create(ctx, order))

	got, err := svc.Track(ctx, "ORD-1", "ABCDEF123456")
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", got.OrderID)

	_, err = svc.Track(ctx, "ORD-1", "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = svc.Track(ctx, "ORD-1", "short")
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))

	_, err = svc.Track(ctx, "ORD-2", "ABCDEF123456")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	_, err = svc.Track(ctx, "ORD-1", "ZZZZZZZZZZZZ")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestOrderService_UpdateStatus(t *testing.T) {
	store := repository.NewMemoryStore()
	notifier := new(MockNotifier)
	notifier.On("OrderPlaced", mock.Anything, mock.Anything).Return(nil)
	notifier.On("StatusUpdated", mock.Anything, mock.MatchedBy(func(o *models.Order) bool {
		return o.Status == models.StatusDelivered
	})).Return(nil)
	svc := NewOrderService(store.Orders, notifier, nil)
	ctx := context.Background()
	require.NoError(t, svc.Create(ctx, sampleOrder("ORD-1")))

	// pending straight to delivered is allowed
	updated, err := svc.UpdateStatus(ctx, "ORD-1", models.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, updated.Status)

	_, err = svc.UpdateStatus(ctx, "ORD-1", "teleported")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = svc.UpdateStatus(ctx, "", models.StatusShipped)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = svc.UpdateStatus(ctx, "ORD-404", models.StatusShipped)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	got, err := svc.GetByOrderID(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, got.Status)

	svc.Wait()
	notifier.AssertExpectations(t)
}

func TestOrderService_Delete(t *testing.T) {
	store := repository.NewMemoryStore()
	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, eventOfType(events.OrderPlaced)).Return(nil)
	publisher.On("Publish", mock.Anything, eventOfType(events.OrderDeleted)).Return(nil)
	svc := NewOrderService(store.Orders, nil, publisher)
	ctx := context.Background()
	require.NoError(t, svc.Create(ctx, sampleOrder("ORD-1")))

	deleted, err := svc.Delete(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", deleted.OrderID)

	_, err = svc.Delete(ctx, "ORD-1")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	_, err = svc.Delete(ctx, "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	svc.Wait()
	publisher.AssertExpectations(t)
}

func TestOrderService_CountsPlacedOrders(t *testing.T) {
	svc := NewOrderService(repository.NewMemoryStore().Orders, nil, nil)
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "orders_placed_total"})
	svc.CountPlaced(counter)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, sampleOrder("ORD-1")))
	require.Error(t, svc.Create(ctx, sampleOrder("")))

	assert.Equal(t, 1.0, testutil.ToFloat64(counter))
}
