// Package cart holds shopping-cart line operations and cart persistence.
package cart

import (
	"storefront/apperrors"
	"storefront/models"
	"storefront/pricing"
)

// ErrItemNotFound is returned when a line is not in the cart.
var ErrItemNotFound = apperrors.NotFound("Item not in cart")

// New returns an empty cart with the given id.
func New(id string) *models.Cart {
	return &models.Cart{ID: id, Items: []models.CartItem{}}
}

func indexOf(c *models.Cart, productID int, size string) int {
	for i, item := range c.Items {
		if item.ProductID == productID && item.Size == size {
			return i
		}
	}
	return -1
}

// Add puts item in the cart, merging with an existing line of the same
// product and size. A zero quantity means one.
func Add(c *models.Cart, item models.CartItem) error {
	if item.ProductID <= 0 {
		return apperrors.Validation("Product ID is required")
	}
	if item.Quantity < 0 {
		return apperrors.Validation("Quantity must be positive")
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}

	if i := indexOf(c, item.ProductID, item.Size); i >= 0 {
		c.Items[i].Quantity += item.Quantity
		c.Items[i].Price = item.Price
		return nil
	}
	c.Items = append(c.Items, item)
	return nil
}

// SetQuantity changes a line's quantity; zero or less removes the line.
func SetQuantity(c *models.Cart, productID int, size string, quantity int) error {
	i := indexOf(c, productID, size)
	if i < 0 {
		return ErrItemNotFound
	}
	if quantity <= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
		return nil
	}
	c.Items[i].Quantity = quantity
	return nil
}

// Remove drops a line from the cart.
func Remove(c *models.Cart, productID int, size string) error {
	i := indexOf(c, productID, size)
	if i < 0 {
		return ErrItemNotFound
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return nil
}

// Clear empties the cart.
func Clear(c *models.Cart) {
	c.Items = []models.CartItem{}
}

// Count returns the number of units in the cart.
func Count(c *models.Cart) int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// Totals prices the cart with the store's delivery tiers.
func Totals(c *models.Cart) pricing.Totals {
	return pricing.Calculate(c.Items, pricing.DefaultTiers)
}
