package checkout

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"storefront/apperrors"
	"storefront/cart"
	"storefront/models"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockOrderPlacer struct {
	err    error
	placed []*models.Order
}

func (m *mockOrderPlacer) Create(_ context.Context, order *models.Order) error {
	if m.err != nil {
		return m.err
	}
	order.ID = len(m.placed) + 1
	m.placed = append(m.placed, order)
	return nil
}

func validShipping() ShippingInfo {
	return ShippingInfo{
		FirstName: "Ayesha",
		LastName:  "Khan",
		Email:     "Ayesha@Example.com",
		Phone:     "300 123 4567",
		Address:   "12 Mall Road",
		City:      "Lahore",
		State:     "Punjab",
	}
}

func setupService(t *testing.T, placer OrderPlacer, items ...models.CartItem) (*Service, cart.Store) {
	t.Helper()
	store := cart.NewMemoryStore()
	c := cart.New("cart-1")
	for _, item := range items {
		require.NoError(t, cart.Add(c, item))
	}
	require.NoError(t, store.Save(context.Background(), c))

	svc := NewService(store, placer)
	svc.now = func() time.Time { return time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC) }
	svc.newIDs = func(time.Time) IDs { return IDs{OrderID: "ORD-1", TrackingToken: "ABCDEF123456"} }
	return svc, store
}

func TestShippingValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ShippingInfo)
		wantErr string
	}{
		{name: "valid", mutate: func(*ShippingInfo) {}},
		{name: "zip optional", mutate: func(s *ShippingInfo) { s.Zip = "" }},
		{name: "missing city", mutate: func(s *ShippingInfo) { s.City = "  " }, wantErr: "Please fill in all required fields"},
		{name: "bad email", mutate: func(s *ShippingInfo) { s.Email = "ayesha@example" }, wantErr: "valid email"},
		{name: "short phone", mutate: func(s *ShippingInfo) { s.Phone = "30012345" }, wantErr: "10-digit"},
		{name: "phone with letters", mutate: func(s *ShippingInfo) { s.Phone = "300123456x" }, wantErr: "10-digit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validShipping()
			tt.mutate(&s)
			err := s.Normalize().Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewValidatorRegistrationErrors(t *testing.T) {
	_, err := newValidator(map[string]validator.Func{"": func(validator.FieldLevel) bool { return true }})
	assert.Error(t, err)

	assert.Panics(t, func() {
		mustValidator(map[string]validator.Func{"localphone": nil})
	})
	assert.NotPanics(t, func() { mustValidator(shippingRules) })
}

func TestAssemble(t *testing.T) {
	c := cart.New("cart-1")
	require.NoError(t, cart.Add(c, models.CartItem{ProductID: 4, Name: "Pure Desi Ghee", Price: 1200, Quantity: 2}))
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	order := Assemble(c, validShipping().Normalize(), cart.Totals(c), now, IDs{OrderID: "ORD-1", TrackingToken: "ABCDEF123456"})

	assert.Equal(t, "ORD-1", order.OrderID)
	assert.Equal(t, "ABCDEF123456", order.TrackingToken)
	assert.Equal(t, "Ayesha Khan", order.Customer.FullName)
	assert.Equal(t, "ayesha@example.com", order.Customer.Email)
	assert.Equal(t, "+923001234567", order.Customer.Phone)
	assert.Equal(t, Country, order.ShippingAddress.Country)
	assert.Equal(t, 2400.0, order.Subtotal)
	assert.Equal(t, 350.0, order.DeliveryCharge)
	assert.Equal(t, 2750.0, order.Total)
	assert.Equal(t, models.PaymentCashOnDelivery, order.PaymentMethod)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, now, order.CreatedAt)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
}

func TestNewIDs(t *testing.T) {
	now := time.UnixMilli(1767225600000)
	ids := NewIDs(now)

	assert.Regexp(t, regexp.MustCompile(`^ORD-1767225600000-[0-9A-F]{6}$`), ids.OrderID)
	assert.Regexp(t, regexp.MustCompile(`^[0-9A-F]{12}$`), ids.TrackingToken)
	assert.NotEqual(t, ids.TrackingToken, NewIDs(now).TrackingToken)
}

func TestPlaceOrder_Success(t *testing.T) {
	placer := &mockOrderPlacer{}
	svc, store := setupService(t, placer, models.CartItem{ProductID: 1, Name: "Premium Attar", Price: 1200, Quantity: 2})

	order, err := svc.PlaceOrder(context.Background(), "cart-1", validShipping())
	require.NoError(t, err)
	assert.Equal(t, 1, order.ID)
	assert.Equal(t, 2750.0, order.Total)
	require.Len(t, placer.placed, 1)

	c, err := store.Get(context.Background(), "cart-1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	placer := &mockOrderPlacer{}
	svc, _ := setupService(t, placer)

	_, err := svc.PlaceOrder(context.Background(), "cart-1", validShipping())
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Empty(t, placer.placed)
}

func TestPlaceOrder_InvalidShippingNotPersisted(t *testing.T) {
	placer := &mockOrderPlacer{}
	svc, _ := setupService(t, placer, models.CartItem{ProductID: 1, Price: 1200, Quantity: 1})

	s := validShipping()
	s.Phone = "12345"
	_, err := svc.PlaceOrder(context.Background(), "cart-1", s)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Empty(t, placer.placed)
}

func TestPlaceOrder_BelowMinimum(t *testing.T) {
	placer := &mockOrderPlacer{}
	svc, _ := setupService(t, placer, models.CartItem{ProductID: 1, Price: 499.99, Quantity: 1})

	_, err := svc.PlaceOrder(context.Background(), "cart-1", validShipping())
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Contains(t, err.Error(), "Minimum order amount is Rs 500")
	assert.Empty(t, placer.placed)
}

func TestPlaceOrder_StoreFailureKeepsCart(t *testing.T) {
	placer := &mockOrderPlacer{err: apperrors.Backend("Failed to create order", errors.New("connection refused"))}
	svc, store := setupService(t, placer, models.CartItem{ProductID: 1, Price: 1200, Quantity: 1})

	_, err := svc.PlaceOrder(context.Background(), "cart-1", validShipping())
	assert.True(t, apperrors.IsKind(err, apperrors.KindBackend))

	c, err := store.Get(context.Background(), "cart-1")
	require.NoError(t, err)
	assert.Len(t, c.Items, 1)
}
