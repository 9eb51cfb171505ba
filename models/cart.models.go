package models

import "time"

// CartItem represents an item in the cart
type CartItem struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size,omitempty"`
	Image     string  `json:"image,omitempty"`
}

// Cart represents a shopping cart
type Cart struct {
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// UnitPrice returns the item's unit price.
func (i CartItem) UnitPrice() float64 { return i.Price }

// Units returns the item's quantity.
func (i CartItem) Units() int { return i.Quantity }
