package models

import "time"

// Product statuses
const (
	ProductActive   = "active"
	ProductInactive = "inactive"
)

// LowStockThreshold is the stock level below which a product counts as low stock.
const LowStockThreshold = 10

// Product represents a catalog item
type Product struct {
	ID          int       `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	SKU         string    `bson:"sku" json:"sku"`
	Category    string    `bson:"category" json:"category"`
	Price       float64   `bson:"price" json:"price"`
	Stock       int       `bson:"stock" json:"stock"`
	Status      string    `bson:"status" json:"status"`
	Description string    `bson:"description" json:"description"`
	Image       string    `bson:"image" json:"image"`
	Gallery     []string  `bson:"gallery" json:"gallery"`
	Rating      float64   `bson:"rating" json:"rating"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ProductInput is the admin-editable part of a product
type ProductInput struct {
	Name        string   `json:"name" validate:"required"`
	SKU         string   `json:"sku"`
	Category    string   `json:"category"`
	Price       float64  `json:"price" validate:"gte=0"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Status      string   `json:"status" validate:"omitempty,oneof=active inactive"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Gallery     []string `json:"gallery"`
}

// Category is a static storefront category
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Categories lists the storefront categories
var Categories = []Category{
	{ID: "fragrances", Name: "Fragrances", Description: "Attar & Perfumes"},
	{ID: "clothes", Name: "Clothes", Description: "Male & Female"},
	{ID: "agricultural", Name: "Agricultural Products", Description: "Desi Ghee, Honey, Eggs"},
	{ID: "home-textiles", Name: "Home Textiles", Description: "Blankets, Prayer Mats"},
}
