package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.GenerateJWT("owner@example.com", models.RoleAdmin)
	require.NoError(t, err)

	claims, err := tm.ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestTokenManager_Rejects(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	other := NewTokenManager("other-secret", time.Hour)
	expired := NewTokenManager("test-secret", -time.Minute)

	foreign, err := other.GenerateJWT("owner@example.com", models.RoleAdmin)
	require.NoError(t, err)
	stale, err := expired.GenerateJWT("owner@example.com", models.RoleAdmin)
	require.NoError(t, err)

	for _, token := range []string{"", "not-a-token", foreign, stale} {
		_, err := tm.ParseJWT(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	assert.NotEqual(t, "correct-horse", hash)
	assert.True(t, CheckPassword(hash, "correct-horse"))
	assert.False(t, CheckPassword(hash, "wrong-horse"))
}

type sentEmail struct {
	to, subject, html string
}

type mockMailer struct {
	sent []sentEmail
	err  error
}

func (m *mockMailer) Send(to, subject, html string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentEmail{to, subject, html})
	return nil
}

func testOrder() *models.Order {
	return &models.Order{
		OrderID:       "ORD-1",
		TrackingToken: "ABCDEF123456",
		Customer:      &models.Customer{FullName: "Ayesha Khan", Email: "ayesha@example.com", Phone: "+923001234567"},
		Items:         []models.OrderItem{{ProductID: 1, Name: "Designer Kurta", Price: 2499, Quantity: 1, Size: "M"}},
		Subtotal:      2499,
		Total:         2849,
		Status:        models.StatusShipped,
	}
}

func TestEmailService_OrderPlaced(t *testing.T) {
	mailer := &mockMailer{}
	es := NewEmailService(mailer, "Shop", "owner@example.com", "https://shop.example/track")

	require.NoError(t, es.OrderPlaced(context.Background(), testOrder()))

	require.Len(t, mailer.sent, 2)
	assert.Equal(t, "ayesha@example.com", mailer.sent[0].to)
	assert.Contains(t, mailer.sent[0].html, "Designer Kurta (M)")
	assert.Contains(t, mailer.sent[0].html, "https://shop.example/track?orderId=ORD-1&amp;token=ABCDEF123456")
	assert.Equal(t, "owner@example.com", mailer.sent[1].to)
	assert.Contains(t, mailer.sent[1].subject, "ORD-1")
}

func TestEmailService_EscapesCustomerText(t *testing.T) {
	mailer := &mockMailer{}
	es := NewEmailService(mailer, "Shop", "owner@example.com", "https://shop.example/track")

	order := testOrder()
	order.Customer.FullName = `<script>alert("x")</script>`
	order.ShippingAddress = models.Address{Address: `<img src=x onerror=alert(1)>`, City: "Lahore & Co", State: "Punjab"}
	order.Items[0].Name = "<b>Kurta</b>"
	order.Items[0].Size = `"L"`

	require.NoError(t, es.OrderPlaced(context.Background(), order))
	require.NoError(t, es.StatusUpdated(context.Background(), order))
	require.Len(t, mailer.sent, 3)

	for _, email := range mailer.sent {
		assert.NotContains(t, email.html, "<script>")
		assert.NotContains(t, email.html, "<b>Kurta</b>")
	}
	assert.Contains(t, mailer.sent[0].html, "&lt;script&gt;")
	assert.Contains(t, mailer.sent[0].html, "&lt;b&gt;Kurta&lt;/b&gt; (&#34;L&#34;)")
	assert.NotContains(t, mailer.sent[1].html, "<img")
	assert.Contains(t, mailer.sent[1].html, "Lahore &amp; Co")
}

func TestEmailService_ReportsFailures(t *testing.T) {
	es := NewEmailService(&mockMailer{err: errors.New("smtp down")}, "Shop", "owner@example.com", "")

	err := es.OrderPlaced(context.Background(), testOrder())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")
}

func TestEmailService_StatusUpdatedSkipsMissingEmail(t *testing.T) {
	mailer := &mockMailer{}
	es := NewEmailService(mailer, "Shop", "", "")

	order := testOrder()
	require.NoError(t, es.StatusUpdated(context.Background(), order))
	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].subject, "shipped")

	order.Customer = nil
	require.NoError(t, es.StatusUpdated(context.Background(), order))
	assert.Len(t, mailer.sent, 1)
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "Hello\nWorld", stripTags("<strong>Hello</strong><br>World"))
	assert.Equal(t, "Fish & <Chips>", stripTags("<td>Fish &amp; &lt;Chips&gt;</td>"))
}
