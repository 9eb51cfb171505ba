package models

import "time"

// Order statuses
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// OrderStatuses lists every status an order may hold.
var OrderStatuses = []string{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

// IsValidStatus reports whether s is a known order status.
func IsValidStatus(s string) bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Customer identifies who placed an order
type Customer struct {
	FullName string `bson:"fullName" json:"fullName"`
	Email    string `bson:"email" json:"email"`
	Phone    string `bson:"phone" json:"phone"`
}

// Address represents a delivery address
type Address struct {
	Address string `bson:"address" json:"address"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	Zip     string `bson:"zip" json:"zip"`
	Country string `bson:"country" json:"country"`
}

// OrderItem is a purchased line
type OrderItem struct {
	ProductID int     `bson:"productId" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Size      string  `bson:"size,omitempty" json:"size,omitempty"`
	Image     string  `bson:"image,omitempty" json:"image,omitempty"`
}

// Order represents a placed order
type Order struct {
	ID              int         `bson:"id" json:"id"`
	OrderID         string      `bson:"orderId" json:"orderId"`
	TrackingToken   string      `bson:"trackingToken,omitempty" json:"trackingToken"`
	Customer        *Customer   `bson:"customer" json:"customer"`
	ShippingAddress Address     `bson:"shippingAddress" json:"shippingAddress"`
	Items           []OrderItem `bson:"items" json:"items"`
	Subtotal        float64     `bson:"subtotal" json:"subtotal"`
	DeliveryCharge  float64     `bson:"deliveryCharge" json:"deliveryCharge"`
	Tax             float64     `bson:"tax" json:"tax"`
	Total           float64     `bson:"total" json:"total"`
	PaymentMethod   string      `bson:"paymentMethod" json:"paymentMethod"`
	Status          string      `bson:"status" json:"status"`
	CreatedAt       time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// CustomerName returns the customer's name, or "Guest".
func (o *Order) CustomerName() string {
	if o.Customer == nil || o.Customer.FullName == "" {
		return "Guest"
	}
	return o.Customer.FullName
}

// UnitPrice returns the item's unit price.
func (i OrderItem) UnitPrice() float64 { return i.Price }

// Units returns the item's quantity.
func (i OrderItem) Units() int { return i.Quantity }
