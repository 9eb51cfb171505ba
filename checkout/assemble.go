package checkout

import (
	"time"

	"storefront/models"
	"storefront/pricing"
	"storefront/reference"
)

// TrackingTokenLength is the length of generated tracking tokens.
const TrackingTokenLength = reference.TrackingTokenLength

// IDs are the public identifiers of a new order.
type IDs struct {
	OrderID       string
	TrackingToken string
}

// NewIDs generates an order id stamped with now and a random tracking token.
func NewIDs(now time.Time) IDs {
	return IDs{
		OrderID:       reference.OrderID(now),
		TrackingToken: reference.TrackingToken(),
	}
}

// Assemble builds a pending cash-on-delivery order from a cart.
func Assemble(c *models.Cart, shipping ShippingInfo, totals pricing.Totals, now time.Time, ids IDs) *models.Order {
	items := make([]models.OrderItem, 0, len(c.Items))
	for _, item := range c.Items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  qty,
			Size:      item.Size,
			Image:     item.Image,
		})
	}

	return &models.Order{
		OrderID:         ids.OrderID,
		TrackingToken:   ids.TrackingToken,
		Customer:        shipping.Customer(),
		ShippingAddress: shipping.ShippingAddress(),
		Items:           items,
		Subtotal:        totals.Subtotal,
		DeliveryCharge:  totals.DeliveryCharge,
		Total:           totals.Total,
		PaymentMethod:   models.PaymentCashOnDelivery,
		Status:          models.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
